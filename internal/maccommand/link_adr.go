package maccommand

import (
	log "github.com/sirupsen/logrus"

	"github.com/brocaar/chirpstack-device-region/internal/region"
	"github.com/brocaar/lorawan"
)

// channel-mask control values supported by regions with dynamic channels.
const (
	chMaskCntlChannels0To15 = 0
	chMaskCntlAllOn         = 6
)

// HandleLinkADRReq handles a block of LinkADRReq commands. The channel
// mask of every command is applied in order, the data-rate, TX power and
// NbTrans of the last command are used. The block is only applied when the
// channel mask, data-rate and power are all acknowledged.
func HandleLinkADRReq(p *region.Plan, st *State, block []lorawan.LinkADRReqPayload) lorawan.LinkADRAnsPayload {
	if len(block) == 0 {
		return lorawan.LinkADRAnsPayload{}
	}

	channels := p.Channels()
	ans := lorawan.LinkADRAnsPayload{
		ChannelMaskACK: true,
		DataRateACK:    true,
		PowerACK:       true,
	}

	mask := channels.Mask()
	for _, pl := range block {
		switch pl.Redundancy.ChMaskCntl {
		case chMaskCntlChannels0To15:
			for i := range mask {
				mask[i] = i < len(pl.ChMask) && pl.ChMask[i]
			}
			for i := len(mask); i < len(pl.ChMask); i++ {
				if pl.ChMask[i] {
					ans.ChannelMaskACK = false
				}
			}
		case chMaskCntlAllOn:
			for i, c := range channels.Channels() {
				mask[i] = c.Enabled
			}
		default:
			ans.ChannelMaskACK = false
		}
	}
	if ans.ChannelMaskACK && channels.ValidateMask(mask) != nil {
		ans.ChannelMaskACK = false
	}

	last := block[len(block)-1]

	dr := st.DataRate
	if last.DataRate != keepCurrent {
		dr = region.DataRate(last.DataRate)
	}
	if !p.ValidDataRate(dr) || !supported(channels, mask, dr) {
		ans.DataRateACK = false
	}

	txPower := st.TXPowerIndex
	if last.TXPower != keepCurrent {
		txPower = last.TXPower
	}
	if !p.ValidPowerIndex(txPower) {
		ans.PowerACK = false
	}

	fields := log.Fields{
		"data_rate":        dr,
		"tx_power_index":   txPower,
		"nb_rep":           last.Redundancy.NbRep,
		"channel_mask_ack": ans.ChannelMaskACK,
		"data_rate_ack":    ans.DataRateACK,
		"power_ack":        ans.PowerACK,
	}

	if !ans.ChannelMaskACK || !ans.DataRateACK || !ans.PowerACK {
		answered(lorawan.LinkADRReq, false).Inc()
		log.WithFields(fields).Warning("maccommand: link_adr request rejected")
		return ans
	}

	if err := channels.SetMask(mask); err != nil {
		// validated above
		log.WithError(err).Error("maccommand: set channel mask error")
		return lorawan.LinkADRAnsPayload{}
	}
	st.DataRate = dr
	st.TXPowerIndex = txPower
	st.NbTrans = last.Redundancy.NbRep
	if st.NbTrans == 0 {
		st.NbTrans = 1
	}

	answered(lorawan.LinkADRReq, true).Inc()
	log.WithFields(fields).Info("maccommand: link_adr request accepted")

	return ans
}

// supported returns true when at least one channel in the mask allows the
// given data-rate.
func supported(channels *region.ChannelTable, mask []bool, dr region.DataRate) bool {
	for i, c := range channels.Channels() {
		if i < len(mask) && mask[i] && c.Supports(dr) {
			return true
		}
	}
	return false
}
