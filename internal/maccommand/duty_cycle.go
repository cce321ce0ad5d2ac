package maccommand

import (
	log "github.com/sirupsen/logrus"

	"github.com/brocaar/chirpstack-device-region/internal/region"
	"github.com/brocaar/lorawan"
)

// HandleDutyCycleReq sets the aggregated duty-cycle limit. DutyCycleReq
// has an empty answer, reserved values are ignored.
func HandleDutyCycleReq(p *region.Plan, pl lorawan.DutyCycleReqPayload) {
	if err := p.DutyCycle().SetMaxDutyCycle(pl.MaxDCycle); err != nil {
		answered(lorawan.DutyCycleReq, false).Inc()
		log.WithError(err).WithField("max_dcycle", pl.MaxDCycle).Warning("maccommand: duty_cycle request ignored")
		return
	}

	answered(lorawan.DutyCycleReq, true).Inc()
	if pl.MaxDCycle == region.SilenceDutyCycle {
		log.Warning("maccommand: transmissions silenced by network")
		return
	}
	log.WithField("max_dcycle", pl.MaxDCycle).Info("maccommand: aggregated duty-cycle updated")
}
