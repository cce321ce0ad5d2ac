package region

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBandPlanLookup(t *testing.T) {
	tests := []struct {
		Frequency    uint32
		ExpectedBand string
		ExpectedOK   bool
	}{
		{EU868F1, "g1", true},
		{EU868F2, "g1", true},
		{EU868F3, "g1", true},
		{EU868F4, "g2", true},
		{EU868F5, "g2", true},
		{EU868F6, "g3", true},
		{863000000, "g2", true},
		{868600000, "g1", true},
		{868600001, "g2", true},
		{869650000, "g3", true},
		{869700000, "g1", true},
		{870000000, "g1", true},
		{862999999, "", false},
		{870000001, "", false},
	}

	for _, tst := range tests {
		t.Run(fmt.Sprintf("%d", tst.Frequency), func(t *testing.T) {
			assert := require.New(t)
			_, b, ok := EU868.Bands.Lookup(tst.Frequency)
			assert.Equal(tst.ExpectedOK, ok)
			assert.Equal(tst.ExpectedBand, b.Name)
		})
	}

	t.Run("every frequency maps to exactly one band", func(t *testing.T) {
		assert := require.New(t)
		for f := EU868.FrequencyRange.Min; f <= EU868.FrequencyRange.Max; f += 25000 {
			var count int
			for _, b := range EU868.Bands {
				if b.Contains(f) {
					count++
				}
			}
			assert.Equal(1, count, "frequency %d", f)
		}
	})
}

func TestDutyCycleOffTime(t *testing.T) {
	tests := []struct {
		Name      string
		DutyCycle DutyCycle
		Airtime   time.Duration
		Expected  time.Duration
	}{
		{"1%", DutyCycle{1, 100}, time.Second, 99 * time.Second},
		{"0.1%", DutyCycle{1, 1000}, 100 * time.Millisecond, 99900 * time.Millisecond},
		{"10%", DutyCycle{1, 10}, 50 * time.Millisecond, 450 * time.Millisecond},
		{"100%", DutyCycle{1, 1}, time.Second, 0},
		{"invalid", DutyCycle{}, time.Second, 0},
	}

	for _, tst := range tests {
		t.Run(tst.Name, func(t *testing.T) {
			assert := require.New(t)
			assert.Equal(tst.Expected, tst.DutyCycle.OffTime(tst.Airtime))
		})
	}
}
