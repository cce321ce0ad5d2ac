package region

import "fmt"

// SpreadingFactor defines the spreading factor as encoded in RPS.
// FSK is used for the FSK modulation.
type SpreadingFactor uint8

// Available spreading factors.
const (
	FSK SpreadingFactor = iota
	SF7
	SF8
	SF9
	SF10
	SF11
	SF12
)

// Chips returns the spreading factor value (7..12), or 0 for FSK.
func (sf SpreadingFactor) Chips() int {
	if sf == FSK || sf > SF12 {
		return 0
	}
	return int(sf) + 6
}

// Bandwidth defines the LoRa bandwidth as encoded in RPS.
type Bandwidth uint8

// Available bandwidths.
const (
	BW125 Bandwidth = iota
	BW250
	BW500
)

// Hertz returns the bandwidth in Hz.
func (bw Bandwidth) Hertz() int {
	switch bw {
	case BW125:
		return 125000
	case BW250:
		return 250000
	case BW500:
		return 500000
	default:
		return 0
	}
}

// CodingRate defines the LoRa coding-rate as encoded in RPS.
type CodingRate uint8

// Available coding-rates.
const (
	CR4_5 CodingRate = iota
	CR4_6
	CR4_7
	CR4_8
)

const (
	rpsSFMask    = 0x07
	rpsBWShift   = 3
	rpsBWMask    = 0x03
	rpsCRShift   = 5
	rpsCRMask    = 0x03
	rpsNoCRCFlag = 0x80
)

// RPS holds the radio parameters (spreading factor, bandwidth and
// coding-rate) packed into a single byte.
type RPS uint8

// IllegalRPS is returned for data-rates which are not valid in a region.
const IllegalRPS RPS = 0xff

// MakeRPS packs the given radio parameters.
func MakeRPS(sf SpreadingFactor, bw Bandwidth, cr CodingRate) RPS {
	return RPS(uint8(sf)&rpsSFMask | (uint8(bw)&rpsBWMask)<<rpsBWShift | (uint8(cr)&rpsCRMask)<<rpsCRShift)
}

// SpreadingFactor returns the packed spreading factor.
func (r RPS) SpreadingFactor() SpreadingFactor {
	return SpreadingFactor(uint8(r) & rpsSFMask)
}

// Bandwidth returns the packed bandwidth.
func (r RPS) Bandwidth() Bandwidth {
	return Bandwidth((uint8(r) >> rpsBWShift) & rpsBWMask)
}

// CodingRate returns the packed coding-rate.
func (r RPS) CodingRate() CodingRate {
	return CodingRate((uint8(r) >> rpsCRShift) & rpsCRMask)
}

// CRC returns true when the payload CRC is enabled.
func (r RPS) CRC() bool {
	return uint8(r)&rpsNoCRCFlag == 0
}

// WithoutCRC returns a copy of the RPS with the payload CRC disabled.
// Downlinks are sent without payload CRC.
func (r RPS) WithoutCRC() RPS {
	if r == IllegalRPS {
		return r
	}
	return r | rpsNoCRCFlag
}

// String implements fmt.Stringer.
func (r RPS) String() string {
	if r == IllegalRPS {
		return "illegal"
	}
	if r.SpreadingFactor() == FSK {
		return "FSK"
	}
	return fmt.Sprintf("SF%dBW%d CR4/%d", r.SpreadingFactor().Chips(), r.Bandwidth().Hertz()/1000, int(r.CodingRate())+5)
}

// RateTable maps the data-rates of a region to their radio parameters.
// The table is indexed by data-rate, unused data-rates hold IllegalRPS.
type RateTable []RPS

// Encode returns the radio parameters for the given data-rate. IllegalRPS
// is returned for every data-rate that is not valid within the table.
func (t RateTable) Encode(dr DataRate) RPS {
	if dr < DR0 || int(dr) >= len(t) {
		return IllegalRPS
	}
	return t[dr]
}

// EncodeSelected returns the radio parameters for the given optional
// data-rate. The unset data-rate always results in IllegalRPS.
func (t RateTable) EncodeSelected(dr NullDataRate) RPS {
	if !dr.Valid {
		return IllegalRPS
	}
	return t.Encode(dr.DataRate)
}

// Valid returns true when the data-rate maps to legal radio parameters.
func (t RateTable) Valid(dr DataRate) bool {
	return t.Encode(dr) != IllegalRPS
}

// Max returns the highest valid data-rate of the table.
func (t RateTable) Max() DataRate {
	for i := len(t) - 1; i > 0; i-- {
		if t[i] != IllegalRPS {
			return DataRate(i)
		}
	}
	return DR0
}
