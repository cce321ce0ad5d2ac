package region

import "fmt"

// DataRate defines a region specific data-rate index (DR0, DR1, ...).
// Lower values are slower (higher spreading factor).
type DataRate int8

// Data-rate indices as used by the LoRaWAN MAC commands.
const (
	DR0 DataRate = iota
	DR1
	DR2
	DR3
	DR4
	DR5
	DR6
	DR7
	DR8
	DR9
	DR10
	DR11
	DR12
	DR13
	DR14
	DR15
)

// String implements fmt.Stringer.
func (dr DataRate) String() string {
	return fmt.Sprintf("DR%d", int8(dr))
}

// NullDataRate holds a data-rate which might not have been selected yet.
type NullDataRate struct {
	DataRate DataRate
	Valid    bool
}

// SelectedDataRate returns a valid NullDataRate for the given data-rate.
func SelectedDataRate(dr DataRate) NullDataRate {
	return NullDataRate{DataRate: dr, Valid: true}
}

// DataRateMap is a bitmask of data-rates, bit n is set when DRn is included.
type DataRateMap uint16

// Contains returns true when the given data-rate is part of the map.
func (m DataRateMap) Contains(dr DataRate) bool {
	if dr < DR0 || dr > DR15 {
		return false
	}
	return m&(1<<uint(dr)) != 0
}

// RateRange defines the data-rates allowed on a channel. The zero value
// requests the default range of the region.
type RateRange struct {
	min    DataRate
	max    DataRate
	custom bool
}

// DefaultRateRange returns the RateRange requesting the region default.
func DefaultRateRange() RateRange {
	return RateRange{}
}

// NewRateRange returns a custom RateRange covering min up to and
// including max.
func NewRateRange(min, max DataRate) RateRange {
	return RateRange{min: min, max: max, custom: true}
}

// IsDefault returns true when the range requests the region default.
func (r RateRange) IsDefault() bool {
	return !r.custom
}

// Bounds returns the min and max data-rate of a custom range. For the
// default range, ok is false.
func (r RateRange) Bounds() (min, max DataRate, ok bool) {
	return r.min, r.max, r.custom
}

// Map returns the DataRateMap of a custom range. The default range
// returns 0 as it must be resolved against a region first.
func (r RateRange) Map() DataRateMap {
	if !r.custom || r.min > r.max || r.min < DR0 || r.max > DR15 {
		return 0
	}

	var m DataRateMap
	for dr := r.min; dr <= r.max; dr++ {
		m |= 1 << uint(dr)
	}
	return m
}

// String implements fmt.Stringer.
func (r RateRange) String() string {
	if !r.custom {
		return "default"
	}
	return fmt.Sprintf("%s-%s", r.min, r.max)
}
