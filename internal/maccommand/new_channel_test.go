package maccommand

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brocaar/chirpstack-device-region/internal/region"
	"github.com/brocaar/lorawan"
)

func TestHandleNewChannelReq(t *testing.T) {
	tests := []struct {
		Name            string
		Payload         lorawan.NewChannelReqPayload
		Expected        lorawan.NewChannelAnsPayload
		ExpectedChannel region.Channel
	}{
		{
			Name:            "new channel",
			Payload:         lorawan.NewChannelReqPayload{ChIndex: 3, Freq: 868700000, MinDR: 1, MaxDR: 4},
			Expected:        lorawan.NewChannelAnsPayload{ChannelFrequencyOK: true, DataRateRangeOK: true},
			ExpectedChannel: region.Channel{Frequency: 868700000, MinDR: region.DR1, MaxDR: region.DR4, Enabled: true},
		},
		{
			Name:     "mandatory channel",
			Payload:  lorawan.NewChannelReqPayload{ChIndex: 0, Freq: 868700000, MinDR: 0, MaxDR: 5},
			Expected: lorawan.NewChannelAnsPayload{DataRateRangeOK: true},
		},
		{
			Name:     "frequency out of range",
			Payload:  lorawan.NewChannelReqPayload{ChIndex: 3, Freq: 915000000, MinDR: 0, MaxDR: 5},
			Expected: lorawan.NewChannelAnsPayload{DataRateRangeOK: true},
		},
		{
			Name:            "g2 frequency above g3",
			Payload:         lorawan.NewChannelReqPayload{ChIndex: 3, Freq: 869660000, MinDR: 0, MaxDR: 5},
			Expected:        lorawan.NewChannelAnsPayload{ChannelFrequencyOK: true, DataRateRangeOK: true},
			ExpectedChannel: region.Channel{Frequency: 869660000, MinDR: region.DR0, MaxDR: region.DR5, Enabled: true},
		},
		{
			Name:     "min dr above max dr",
			Payload:  lorawan.NewChannelReqPayload{ChIndex: 3, Freq: 868700000, MinDR: 5, MaxDR: 2},
			Expected: lorawan.NewChannelAnsPayload{ChannelFrequencyOK: true},
		},
		{
			Name:     "illegal max dr",
			Payload:  lorawan.NewChannelReqPayload{ChIndex: 3, Freq: 868700000, MinDR: 0, MaxDR: 7},
			Expected: lorawan.NewChannelAnsPayload{ChannelFrequencyOK: true},
		},
		{
			Name:     "invalid index",
			Payload:  lorawan.NewChannelReqPayload{ChIndex: 16, Freq: 868700000, MinDR: 0, MaxDR: 5},
			Expected: lorawan.NewChannelAnsPayload{DataRateRangeOK: true},
		},
		{
			Name:     "disable channel",
			Payload:  lorawan.NewChannelReqPayload{ChIndex: 3, Freq: 0},
			Expected: lorawan.NewChannelAnsPayload{ChannelFrequencyOK: true, DataRateRangeOK: true},
		},
	}

	for _, tst := range tests {
		t.Run(tst.Name, func(t *testing.T) {
			assert := require.New(t)
			p := region.NewEU868(time.Now())

			assert.Equal(tst.Expected, HandleNewChannelReq(p, tst.Payload))

			if int(tst.Payload.ChIndex) < p.Channels().Len() && !p.Channels().Mandatory(int(tst.Payload.ChIndex)) {
				c, err := p.Channels().Channel(int(tst.Payload.ChIndex))
				assert.NoError(err)
				assert.Equal(tst.ExpectedChannel, c)
			}
		})
	}

	t.Run("channel can be disabled after creation", func(t *testing.T) {
		assert := require.New(t)
		p := region.NewEU868(time.Now())

		ans := HandleNewChannelReq(p, lorawan.NewChannelReqPayload{ChIndex: 4, Freq: 867100000, MinDR: 0, MaxDR: 5})
		assert.True(ans.ChannelFrequencyOK && ans.DataRateRangeOK)
		assert.True(p.Channels().Active(4))

		ans = HandleNewChannelReq(p, lorawan.NewChannelReqPayload{ChIndex: 4})
		assert.True(ans.ChannelFrequencyOK && ans.DataRateRangeOK)
		assert.False(p.Channels().Active(4))
	})
}
