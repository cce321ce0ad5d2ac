package region

import (
	"fmt"
	"time"
)

// FrequencyRange defines an inclusive frequency range in Hz.
type FrequencyRange struct {
	Min uint32
	Max uint32
}

// Contains returns true when the frequency is within the range.
func (r FrequencyRange) Contains(frequency uint32) bool {
	return frequency >= r.Min && frequency <= r.Max
}

// DutyCycle defines the fraction of time a band may be used for
// transmitting, as Num/Den.
type DutyCycle struct {
	Num uint32
	Den uint32
}

// Valid returns true when the fraction is within (0, 1].
func (d DutyCycle) Valid() bool {
	return d.Num > 0 && d.Den > 0 && d.Num <= d.Den
}

// OffTime returns the time a band must stay silent after a transmission
// of the given airtime: airtime * (1/f - 1).
func (d DutyCycle) OffTime(airtime time.Duration) time.Duration {
	if !d.Valid() || airtime <= 0 {
		return 0
	}
	return airtime * time.Duration(d.Den-d.Num) / time.Duration(d.Num)
}

// String implements fmt.Stringer.
func (d DutyCycle) String() string {
	if d.Den == 0 {
		return "invalid"
	}
	return fmt.Sprintf("%g%%", float64(d.Num)*100/float64(d.Den))
}

// Band defines a duty-cycle sub-band.
type Band struct {
	Name        string
	Ranges      []FrequencyRange
	DutyCycle   DutyCycle
	MaxPowerDBm int8
}

// Contains returns true when the frequency falls within one of the band
// ranges.
func (b Band) Contains(frequency uint32) bool {
	for _, r := range b.Ranges {
		if r.Contains(frequency) {
			return true
		}
	}
	return false
}

// BandPlan holds the sub-bands of a region. Lookups return the first band
// containing the frequency.
type BandPlan []Band

// Lookup returns the index and band for the given frequency.
func (p BandPlan) Lookup(frequency uint32) (int, Band, bool) {
	for i, b := range p {
		if b.Contains(frequency) {
			return i, b, true
		}
	}
	return 0, Band{}, false
}
