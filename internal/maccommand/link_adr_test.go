package maccommand

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/brocaar/chirpstack-device-region/internal/region"
	"github.com/brocaar/lorawan"
)

type LinkADRTestSuite struct {
	TestBase
}

func (ts *LinkADRTestSuite) TestHandleLinkADRReq() {
	tests := []struct {
		Name          string
		Block         []lorawan.LinkADRReqPayload
		Expected      lorawan.LinkADRAnsPayload
		ExpectedState State
		ExpectedMask  []bool
	}{
		{
			Name: "all acknowledged",
			Block: []lorawan.LinkADRReqPayload{
				{DataRate: 3, TXPower: 4, ChMask: lorawan.ChMask{true, true}, Redundancy: lorawan.Redundancy{NbRep: 3}},
			},
			Expected:      lorawan.LinkADRAnsPayload{ChannelMaskACK: true, DataRateACK: true, PowerACK: true},
			ExpectedState: State{DataRate: region.DR3, TXPowerIndex: 4, NbTrans: 3},
			ExpectedMask:  []bool{true, true},
		},
		{
			Name: "keep current data-rate and power",
			Block: []lorawan.LinkADRReqPayload{
				{DataRate: 15, TXPower: 15, ChMask: lorawan.ChMask{true}},
			},
			Expected:      lorawan.LinkADRAnsPayload{ChannelMaskACK: true, DataRateACK: true, PowerACK: true},
			ExpectedState: State{DataRate: region.DR0, NbTrans: 1},
			ExpectedMask:  []bool{true},
		},
		{
			Name: "all channels on",
			Block: []lorawan.LinkADRReqPayload{
				{DataRate: 5, ChMask: lorawan.ChMask{}, Redundancy: lorawan.Redundancy{ChMaskCntl: 6, NbRep: 1}},
			},
			Expected:      lorawan.LinkADRAnsPayload{ChannelMaskACK: true, DataRateACK: true, PowerACK: true},
			ExpectedState: State{DataRate: region.DR5, NbTrans: 1},
			ExpectedMask:  []bool{true, true, true},
		},
		{
			Name: "disabled channel in mask",
			Block: []lorawan.LinkADRReqPayload{
				{DataRate: 5, ChMask: lorawan.ChMask{true, false, false, false, true}},
			},
			Expected:      lorawan.LinkADRAnsPayload{DataRateACK: true, PowerACK: true},
			ExpectedState: State{DataRate: region.DR0, NbTrans: 1},
			ExpectedMask:  []bool{true, true, true},
		},
		{
			Name: "unsupported ChMaskCntl",
			Block: []lorawan.LinkADRReqPayload{
				{DataRate: 5, ChMask: lorawan.ChMask{true}, Redundancy: lorawan.Redundancy{ChMaskCntl: 5}},
			},
			Expected:      lorawan.LinkADRAnsPayload{DataRateACK: true, PowerACK: true},
			ExpectedState: State{DataRate: region.DR0, NbTrans: 1},
			ExpectedMask:  []bool{true, true, true},
		},
		{
			Name: "data-rate not allowed by the enabled channels",
			Block: []lorawan.LinkADRReqPayload{
				{DataRate: 6, ChMask: lorawan.ChMask{true, true, true}},
			},
			Expected:      lorawan.LinkADRAnsPayload{ChannelMaskACK: true, PowerACK: true},
			ExpectedState: State{DataRate: region.DR0, NbTrans: 1},
			ExpectedMask:  []bool{true, true, true},
		},
		{
			Name: "invalid power index",
			Block: []lorawan.LinkADRReqPayload{
				{DataRate: 2, TXPower: 8, ChMask: lorawan.ChMask{true, true, true}},
			},
			Expected:      lorawan.LinkADRAnsPayload{ChannelMaskACK: true, DataRateACK: true},
			ExpectedState: State{DataRate: region.DR0, NbTrans: 1},
			ExpectedMask:  []bool{true, true, true},
		},
		{
			Name: "block uses last data-rate and accumulated mask",
			Block: []lorawan.LinkADRReqPayload{
				{DataRate: 1, TXPower: 1, ChMask: lorawan.ChMask{true}},
				{DataRate: 4, TXPower: 2, ChMask: lorawan.ChMask{false, true}, Redundancy: lorawan.Redundancy{NbRep: 2}},
			},
			Expected:      lorawan.LinkADRAnsPayload{ChannelMaskACK: true, DataRateACK: true, PowerACK: true},
			ExpectedState: State{DataRate: region.DR4, TXPowerIndex: 2, NbTrans: 2},
			ExpectedMask:  []bool{false, true},
		},
	}

	for _, tst := range tests {
		ts.T().Run(tst.Name, func(t *testing.T) {
			assert := require.New(t)
			ts.SetupTest()

			st := State{DataRate: region.DR0, NbTrans: 1}
			ans := HandleLinkADRReq(ts.plan, &st, tst.Block)
			assert.Equal(tst.Expected, ans)
			assert.Equal(tst.ExpectedState, st)

			mask := ts.plan.Channels().Mask()
			for i := range mask {
				assert.Equal(i < len(tst.ExpectedMask) && tst.ExpectedMask[i], mask[i], "channel %d", i)
			}
		})
	}
}

func TestLinkADR(t *testing.T) {
	suite.Run(t, new(LinkADRTestSuite))
}
