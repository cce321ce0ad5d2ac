package maccommand

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brocaar/chirpstack-device-region/internal/region"
	"github.com/brocaar/lorawan"
)

func TestHandleRXParamSetupReq(t *testing.T) {
	tests := []struct {
		Name          string
		Payload       lorawan.RXParamSetupReqPayload
		Expected      lorawan.RXParamSetupAnsPayload
		ExpectedState State
	}{
		{
			Name: "all acknowledged",
			Payload: lorawan.RXParamSetupReqPayload{
				Frequency:  868525000,
				DLSettings: lorawan.DLSettings{RX2DataRate: 3, RX1DROffset: 2},
			},
			Expected: lorawan.RXParamSetupAnsPayload{ChannelACK: true, RX2DataRateACK: true, RX1DROffsetACK: true},
			ExpectedState: State{
				NbTrans:      1,
				RX1DROffset:  2,
				RX2Frequency: 868525000,
				RX2DataRate:  region.DR3,
			},
		},
		{
			Name: "invalid rx1 dr offset",
			Payload: lorawan.RXParamSetupReqPayload{
				Frequency:  868525000,
				DLSettings: lorawan.DLSettings{RX2DataRate: 3, RX1DROffset: 6},
			},
			Expected: lorawan.RXParamSetupAnsPayload{ChannelACK: true, RX2DataRateACK: true},
			ExpectedState: State{
				NbTrans:      1,
				RX2Frequency: 869525000,
			},
		},
		{
			Name: "illegal rx2 data-rate",
			Payload: lorawan.RXParamSetupReqPayload{
				Frequency:  868525000,
				DLSettings: lorawan.DLSettings{RX2DataRate: 7},
			},
			Expected: lorawan.RXParamSetupAnsPayload{ChannelACK: true, RX1DROffsetACK: true},
			ExpectedState: State{
				NbTrans:      1,
				RX2Frequency: 869525000,
			},
		},
		{
			Name: "frequency out of range",
			Payload: lorawan.RXParamSetupReqPayload{
				Frequency:  923300000,
				DLSettings: lorawan.DLSettings{RX2DataRate: 0},
			},
			Expected: lorawan.RXParamSetupAnsPayload{RX2DataRateACK: true, RX1DROffsetACK: true},
			ExpectedState: State{
				NbTrans:      1,
				RX2Frequency: 869525000,
			},
		},
	}

	for _, tst := range tests {
		t.Run(tst.Name, func(t *testing.T) {
			assert := require.New(t)
			p := region.NewEU868(time.Now())
			st := NewState(p)

			assert.Equal(tst.Expected, HandleRXParamSetupReq(p, &st, tst.Payload))
			assert.Equal(tst.ExpectedState, st)
		})
	}
}
