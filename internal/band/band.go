// Package band sets up the region plan of the configured region.
package band

import (
	"math"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/brocaar/chirpstack-device-region/internal/config"
	"github.com/brocaar/chirpstack-device-region/internal/region"
)

var plan *region.Plan

// ErrInvalidMaxEIRP is returned when the configured uplink max EIRP is
// outside the 0 - 127 dBm range.
var ErrInvalidMaxEIRP = errors.New("invalid uplink max eirp")

// Setup sets up the region plan with the given configuration. Extra
// channels are installed after the default channels of the region.
func Setup(c config.Config) error {
	constants, err := region.GetConstants(c.Region.Name)
	if err != nil {
		return errors.Wrap(err, "get region constants error")
	}

	p := region.NewPlan(constants, time.Now())

	if c.Region.UplinkMaxEIRP != -1 {
		if c.Region.UplinkMaxEIRP < 0 || c.Region.UplinkMaxEIRP > math.MaxInt8 {
			return errors.Wrapf(ErrInvalidMaxEIRP, "uplink_max_eirp %d", c.Region.UplinkMaxEIRP)
		}
		p.SetMaxEIRP(int8(c.Region.UplinkMaxEIRP))
	}

	if c.Region.MaxDutyCycle == region.SilenceDutyCycle {
		return errors.Wrap(region.ErrInvalidDutyCycle, "max_duty_cycle can not silence the device")
	}
	if err := p.DutyCycle().SetMaxDutyCycle(c.Region.MaxDutyCycle); err != nil {
		return errors.Wrap(err, "set max duty-cycle error")
	}

	index := len(constants.DefaultChannels)
	for _, ec := range c.Region.ExtraChannels {
		rng := region.NewRateRange(region.DataRate(ec.MinDR), region.DataRate(ec.MaxDR))
		if err := p.SetupChannel(index, ec.Frequency, rng); err != nil {
			return errors.Wrapf(err, "add channel %d (%d Hz) error", index, ec.Frequency)
		}
		index++
	}

	log.WithFields(log.Fields{
		"region":          p.Name(),
		"extra_channels":  len(c.Region.ExtraChannels),
		"max_duty_cycle":  c.Region.MaxDutyCycle,
		"uplink_max_eirp": c.Region.UplinkMaxEIRP,
	}).Info("band: region plan configured")

	plan = p
	return nil
}

// Plan returns the configured region plan.
func Plan() *region.Plan {
	return plan
}
