package region

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// RegionPlan defines the regional parameters used by the MAC layer.
type RegionPlan interface {
	// Name returns the name of the region.
	Name() string

	// ValidFrequencyRange returns the frequency bounds of the region.
	ValidFrequencyRange() FrequencyRange

	// ValidRX1DROffset returns true when the RX1 data-rate offset is
	// supported by the region.
	ValidRX1DROffset(offset uint8) bool

	// RawRadioParams returns the radio parameters for the given data-rate.
	RawRadioParams(dr DataRate) (RPS, error)

	// PowerToDBm returns the output power for the given TX power index.
	PowerToDBm(index uint8) (int8, error)

	// DefaultRX2Parameters returns the fixed RX2 fallback parameters.
	DefaultRX2Parameters() RX2Parameters

	// SetupChannel configures the channel at the given index.
	SetupChannel(index int, frequency uint32, rng RateRange) error
}

// RX2Parameters defines the parameters of the RX2 receive window.
type RX2Parameters struct {
	Frequency uint32
	DataRate  DataRate

	// SafetyZone is subtracted from the notional window start to absorb
	// clock drift between device and network.
	SafetyZone time.Duration
}

// WindowOpen returns the time to open the receive window for the given
// notional window start.
func (p RX2Parameters) WindowOpen(notional time.Time) time.Time {
	return notional.Add(-p.SafetyZone)
}

// Constants holds the constants describing a region. Adding a region only
// requires a new Constants value.
type Constants struct {
	Name           string
	FrequencyRange FrequencyRange

	// MaxChannels is the number of channel slots.
	MaxChannels int

	// DefaultChannels holds the frequencies of the mandatory channels,
	// installed on the first slots.
	DefaultChannels []uint32

	// DefaultMinDR and DefaultMaxDR define the default data-rate range of
	// a channel.
	DefaultMinDR DataRate
	DefaultMaxDR DataRate

	Bands     BandPlan
	DataRates RateTable
	MaxEIRP   int8

	// RX1DROffsets is the number of supported RX1 data-rate offsets.
	RX1DROffsets uint8

	RX2Frequency  uint32
	RX2DataRate   DataRate
	RX2SafetyZone time.Duration
}

// TXParams holds the parameters to arm the radio for a transmission.
type TXParams struct {
	Channel   int
	Frequency uint32
	DataRate  DataRate
	RPS       RPS
	PowerDBm  int8
	Band      string
}

// Plan implements RegionPlan for a set of region Constants. It owns the
// ChannelTable and DutyCycleTracker of the device.
type Plan struct {
	constants Constants
	power     PowerTable
	channels  *ChannelTable
	dutyCycle *DutyCycleTracker
}

// NewPlan creates a Plan for the given constants with the default channels
// installed and all bands available at now.
func NewPlan(c Constants, now time.Time) *Plan {
	return &Plan{
		constants: c,
		power:     PowerTable{MaxEIRP: c.MaxEIRP},
		channels:  NewChannelTable(c),
		dutyCycle: NewDutyCycleTracker(c.Bands, now),
	}
}

// Name returns the region name.
func (p *Plan) Name() string {
	return p.constants.Name
}

// Constants returns the region constants.
func (p *Plan) Constants() Constants {
	return p.constants
}

// Channels returns the channel table.
func (p *Plan) Channels() *ChannelTable {
	return p.channels
}

// DutyCycle returns the duty-cycle tracker.
func (p *Plan) DutyCycle() *DutyCycleTracker {
	return p.dutyCycle
}

// SetMaxEIRP overrides the maximum EIRP used as TX power index 0.
func (p *Plan) SetMaxEIRP(dBm int8) {
	p.power.MaxEIRP = dBm
}

// ValidFrequencyRange returns the frequency bounds of the region.
func (p *Plan) ValidFrequencyRange() FrequencyRange {
	return p.constants.FrequencyRange
}

// ValidRX1DROffset returns true when the offset is lower than the number
// of RX1 data-rate offsets of the region.
func (p *Plan) ValidRX1DROffset(offset uint8) bool {
	return offset < p.constants.RX1DROffsets
}

// RX1DataRate returns the RX1 data-rate for the given uplink data-rate and
// RX1 data-rate offset.
func (p *Plan) RX1DataRate(uplink DataRate, offset uint8) (DataRate, error) {
	if !p.ValidRX1DROffset(offset) {
		return 0, ErrInvalidDROffset
	}
	if !p.constants.DataRates.Valid(uplink) {
		return 0, ErrIllegalRateCode
	}

	dr := uplink - DataRate(offset)
	if dr < DR0 {
		dr = DR0
	}
	return dr, nil
}

// RawRadioParams returns the radio parameters for the given data-rate.
func (p *Plan) RawRadioParams(dr DataRate) (RPS, error) {
	rps := p.constants.DataRates.Encode(dr)
	if rps == IllegalRPS {
		return rps, ErrIllegalRateCode
	}
	return rps, nil
}

// PowerToDBm returns the output power for the given TX power index.
func (p *Plan) PowerToDBm(index uint8) (int8, error) {
	dBm := p.power.ToDBm(index)
	if dBm == InvalidPower {
		return dBm, ErrInvalidPowerIndex
	}
	return dBm, nil
}

// ValidPowerIndex returns true when the TX power index is valid.
func (p *Plan) ValidPowerIndex(index uint8) bool {
	return p.power.Valid(index)
}

// ValidDataRate returns true when the data-rate is defined by the region.
func (p *Plan) ValidDataRate(dr DataRate) bool {
	return p.constants.DataRates.Valid(dr)
}

// DefaultRX2Parameters returns the RX2 fallback parameters.
func (p *Plan) DefaultRX2Parameters() RX2Parameters {
	return RX2Parameters{
		Frequency:  p.constants.RX2Frequency,
		DataRate:   p.constants.RX2DataRate,
		SafetyZone: p.constants.RX2SafetyZone,
	}
}

// SetupChannel validates the frequency against the region bounds and
// configures the channel at the given index. A frequency of 0 disables the
// channel.
func (p *Plan) SetupChannel(index int, frequency uint32, rng RateRange) error {
	err := p.setupChannel(index, frequency, rng)
	channelSetup(err).Inc()
	if err != nil {
		log.WithFields(log.Fields{
			"region":    p.constants.Name,
			"channel":   index,
			"frequency": frequency,
			"dr_range":  rng,
		}).WithError(err).Debug("region: setup channel rejected")
	}
	return err
}

func (p *Plan) setupChannel(index int, frequency uint32, rng RateRange) error {
	if index < 0 || index >= p.channels.Len() {
		return ErrInvalidIndex
	}
	if frequency != 0 && !p.constants.FrequencyRange.Contains(frequency) {
		return ErrFrequencyOutOfRange
	}
	return p.channels.Configure(index, frequency, rng)
}

// Band returns the index and band of the given frequency.
func (p *Plan) Band(frequency uint32) (int, Band, error) {
	i, b, ok := p.constants.Bands.Lookup(frequency)
	if !ok {
		return 0, Band{}, ErrFrequencyOutOfRange
	}
	return i, b, nil
}

// SelectChannel returns the active channel supporting the given data-rate
// which becomes available first. Ties are broken by the lowest channel
// index.
func (p *Plan) SelectChannel(dr DataRate) (int, time.Time, error) {
	if p.dutyCycle.Silenced() {
		return 0, time.Time{}, ErrSilenced
	}

	index := -1
	var at time.Time

	for i, c := range p.channels.Channels() {
		if !p.channels.Active(i) || !c.Supports(dr) {
			continue
		}

		band, _, ok := p.constants.Bands.Lookup(c.Frequency)
		if !ok {
			continue
		}

		t := p.dutyCycle.EarliestTransmit(band)
		if index == -1 || t.Before(at) {
			index = i
			at = t
		}
	}

	if index == -1 {
		return 0, time.Time{}, errors.Wrapf(ErrNoChannel, "select channel for %s", dr)
	}
	return index, at, nil
}

// PrepareTransmission validates a transmission on the given channel at the
// given time and returns the radio parameters to use. The output power is
// capped to the maximum power of the band.
func (p *Plan) PrepareTransmission(index int, dr DataRate, powerIndex uint8, now time.Time) (TXParams, error) {
	c, err := p.channels.Channel(index)
	if err != nil {
		return TXParams{}, err
	}
	if !p.channels.Active(index) {
		return TXParams{}, ErrChannelDisabled
	}
	if !c.Supports(dr) {
		return TXParams{}, ErrDataRateNotAllowed
	}
	if p.dutyCycle.Silenced() {
		return TXParams{}, ErrSilenced
	}

	rps, err := p.RawRadioParams(dr)
	if err != nil {
		return TXParams{}, err
	}
	dBm, err := p.PowerToDBm(powerIndex)
	if err != nil {
		return TXParams{}, err
	}

	bandIndex, band, err := p.Band(c.Frequency)
	if err != nil {
		return TXParams{}, err
	}
	if at := p.dutyCycle.EarliestTransmit(bandIndex); now.Before(at) {
		dutyCycleLimited(band.Name).Inc()
		return TXParams{}, errors.Wrapf(ErrDutyCycleLimited, "band %s available at %s", band.Name, at.Format(time.RFC3339Nano))
	}

	if dBm > band.MaxPowerDBm {
		dBm = band.MaxPowerDBm
	}

	return TXParams{
		Channel:   index,
		Frequency: c.Frequency,
		DataRate:  dr,
		RPS:       rps,
		PowerDBm:  dBm,
		Band:      band.Name,
	}, nil
}

// RecordTransmission accounts the airtime of a completed transmission on
// the given frequency and returns the time the band becomes available.
func (p *Plan) RecordTransmission(frequency uint32, airtime time.Duration, completedAt time.Time) (time.Time, error) {
	bandIndex, band, err := p.Band(frequency)
	if err != nil {
		return time.Time{}, err
	}

	at, err := p.dutyCycle.Record(bandIndex, completedAt, airtime)
	if err != nil {
		return time.Time{}, err
	}
	airtimeSeconds(band.Name).Observe(airtime.Seconds())
	return at, nil
}
