package region

import "math"

// InvalidPower is returned by PowerTable.ToDBm for an out-of-range index.
const InvalidPower int8 = math.MinInt8

const (
	powerLevels   = 8
	powerStepDBm  = 2
	maxPowerIndex = powerLevels - 1
)

// PowerTable maps a TX power index to the output power in dBm. Index 0
// equals MaxEIRP, every next index is 2 dB lower.
type PowerTable struct {
	MaxEIRP int8
}

// ToDBm returns the output power for the given index, or InvalidPower when
// the index is out of range. The index is never clamped.
func (t PowerTable) ToDBm(index uint8) int8 {
	if index > maxPowerIndex {
		return InvalidPower
	}
	return t.MaxEIRP - powerStepDBm*int8(index)
}

// Valid returns true when the index maps to an output power.
func (t PowerTable) Valid(index uint8) bool {
	return index <= maxPowerIndex
}
