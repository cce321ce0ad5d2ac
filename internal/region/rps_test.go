package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brocaar/lorawan"
	loraband "github.com/brocaar/lorawan/band"
)

func TestRateTable(t *testing.T) {
	assert := require.New(t)
	table := EU868.DataRates

	t.Run("Encode", func(t *testing.T) {
		tests := []struct {
			Name        string
			DataRate    DataRate
			ExpectedRPS RPS
		}{
			{"DR0", DR0, MakeRPS(SF12, BW125, CR4_5)},
			{"DR1", DR1, MakeRPS(SF11, BW125, CR4_5)},
			{"DR2", DR2, MakeRPS(SF10, BW125, CR4_5)},
			{"DR3", DR3, MakeRPS(SF9, BW125, CR4_5)},
			{"DR4", DR4, MakeRPS(SF8, BW125, CR4_5)},
			{"DR5", DR5, MakeRPS(SF7, BW125, CR4_5)},
			{"DR6", DR6, MakeRPS(SF7, BW250, CR4_5)},
			{"DR7 is not supported", DR7, IllegalRPS},
			{"beyond the table", DR15, IllegalRPS},
			{"negative", DataRate(-1), IllegalRPS},
		}

		for _, tst := range tests {
			t.Run(tst.Name, func(t *testing.T) {
				assert := require.New(t)
				assert.Equal(tst.ExpectedRPS, table.Encode(tst.DataRate))
			})
		}
	})

	t.Run("EncodeSelected", func(t *testing.T) {
		assert := require.New(t)
		assert.Equal(IllegalRPS, table.EncodeSelected(NullDataRate{}))
		assert.Equal(table.Encode(DR3), table.EncodeSelected(SelectedDataRate(DR3)))
	})

	t.Run("valid rates are distinct", func(t *testing.T) {
		assert := require.New(t)
		seen := make(map[RPS]DataRate)
		for dr := DR0; dr <= table.Max(); dr++ {
			rps := table.Encode(dr)
			assert.NotEqual(IllegalRPS, rps)
			_, ok := seen[rps]
			assert.False(ok, "%s shares its rps", dr)
			seen[rps] = dr
		}
	})

	assert.Equal(DR6, table.Max())
}

func TestRPS(t *testing.T) {
	assert := require.New(t)

	rps := MakeRPS(SF9, BW250, CR4_7)
	assert.Equal(SF9, rps.SpreadingFactor())
	assert.Equal(BW250, rps.Bandwidth())
	assert.Equal(CR4_7, rps.CodingRate())
	assert.True(rps.CRC())
	assert.Equal("SF9BW250 CR4/7", rps.String())

	noCRC := rps.WithoutCRC()
	assert.False(noCRC.CRC())
	assert.Equal(SF9, noCRC.SpreadingFactor())
	assert.Equal(IllegalRPS, IllegalRPS.WithoutCRC())
	assert.Equal("illegal", IllegalRPS.String())
}

func TestRateTableMatchesLoRaWANBand(t *testing.T) {
	assert := require.New(t)

	b, err := loraband.GetConfig(loraband.EU868, false, lorawan.DwellTimeNoLimit)
	assert.NoError(err)

	for dr := DR0; dr <= EU868.DataRates.Max(); dr++ {
		expected, err := b.GetDataRate(int(dr))
		assert.NoError(err)

		rps := EU868.DataRates.Encode(dr)
		assert.Equal(loraband.LoRaModulation, expected.Modulation, "%s", dr)
		assert.EqualValues(expected.SpreadFactor, rps.SpreadingFactor().Chips(), "%s", dr)
		assert.EqualValues(expected.Bandwidth*1000, rps.Bandwidth().Hertz(), "%s", dr)
	}

	defaults := b.GetDefaults()
	assert.EqualValues(defaults.RX2Frequency, EU868.RX2Frequency)
	assert.EqualValues(defaults.RX2DataRate, EU868.RX2DataRate)

	for i, f := range EU868.DefaultChannels {
		c, err := b.GetUplinkChannel(i)
		assert.NoError(err)
		assert.EqualValues(c.Frequency, f)
	}
}
