package region

import "time"

// EU868 default channel frequencies.
const (
	EU868F1 = 868100000 // g1 SF7-12
	EU868F2 = 868300000 // g1 SF7-12 FSK SF7/250
	EU868F3 = 868500000 // g1 SF7-12
	EU868F4 = 868850000 // g2 SF7-12
	EU868F5 = 869050000 // g2 SF7-12
	EU868F6 = 869525000 // g3 SF7-12
)

// EU868 holds the constants of the EU 863-870MHz ISM band.
var EU868 = Constants{
	Name:           "EU868",
	FrequencyRange: FrequencyRange{Min: 863000000, Max: 870000000},
	MaxChannels:    16,
	DefaultChannels: []uint32{
		EU868F1,
		EU868F2,
		EU868F3,
	},
	DefaultMinDR: DR0,
	DefaultMaxDR: DR5,
	Bands: BandPlan{
		{
			Name: "g1",
			Ranges: []FrequencyRange{
				{Min: 868000000, Max: 868600000},
				{Min: 869700000, Max: 870000000},
			},
			DutyCycle:   DutyCycle{Num: 1, Den: 100},
			MaxPowerDBm: 14,
		},
		{
			Name: "g2",
			Ranges: []FrequencyRange{
				{Min: 863000000, Max: 867999999},
				{Min: 868600001, Max: 869399999},
				{Min: 869650001, Max: 869699999},
			},
			DutyCycle:   DutyCycle{Num: 1, Den: 1000},
			MaxPowerDBm: 14,
		},
		{
			Name: "g3",
			Ranges: []FrequencyRange{
				{Min: 869400000, Max: 869650000},
			},
			DutyCycle:   DutyCycle{Num: 1, Den: 10},
			MaxPowerDBm: 27,
		},
	},
	DataRates: RateTable{
		MakeRPS(SF12, BW125, CR4_5), // DR0
		MakeRPS(SF11, BW125, CR4_5), // DR1
		MakeRPS(SF10, BW125, CR4_5), // DR2
		MakeRPS(SF9, BW125, CR4_5),  // DR3
		MakeRPS(SF8, BW125, CR4_5),  // DR4
		MakeRPS(SF7, BW125, CR4_5),  // DR5
		MakeRPS(SF7, BW250, CR4_5),  // DR6
		IllegalRPS,                  // DR7 (FSK, not supported)
	},
	MaxEIRP:       16,
	RX1DROffsets:  6,
	RX2Frequency:  EU868F6,
	RX2DataRate:   DR0,
	RX2SafetyZone: 3 * time.Second,
}

// NewEU868 returns a Plan for the EU868 region.
func NewEU868(now time.Time) *Plan {
	return NewPlan(EU868, now)
}
