package maccommand

import (
	log "github.com/sirupsen/logrus"

	"github.com/brocaar/chirpstack-device-region/internal/region"
	"github.com/brocaar/lorawan"
)

// HandleNewChannelReq creates, modifies or disables (frequency 0) the
// channel at the requested index. The channel is only modified when both
// the frequency and the data-rate range are acknowledged.
func HandleNewChannelReq(p *region.Plan, pl lorawan.NewChannelReqPayload) lorawan.NewChannelAnsPayload {
	index := int(pl.ChIndex)
	minDR := region.DataRate(pl.MinDR)
	maxDR := region.DataRate(pl.MaxDR)

	ans := lorawan.NewChannelAnsPayload{
		ChannelFrequencyOK: frequencyOK(p, index, pl.Freq),
		DataRateRangeOK:    pl.Freq == 0 || (minDR <= maxDR && p.ValidDataRate(minDR) && p.ValidDataRate(maxDR)),
	}

	fields := log.Fields{
		"channel":              index,
		"frequency":            pl.Freq,
		"min_dr":               minDR,
		"max_dr":               maxDR,
		"channel_frequency_ok": ans.ChannelFrequencyOK,
		"data_rate_range_ok":   ans.DataRateRangeOK,
	}

	if ans.ChannelFrequencyOK && ans.DataRateRangeOK {
		if err := p.SetupChannel(index, pl.Freq, region.NewRateRange(minDR, maxDR)); err != nil {
			log.WithFields(fields).WithError(err).Warning("maccommand: setup channel error")
			return lorawan.NewChannelAnsPayload{}
		}
		answered(lorawan.NewChannelReq, true).Inc()
		log.WithFields(fields).Info("maccommand: new_channel request accepted")
		return ans
	}

	answered(lorawan.NewChannelReq, false).Inc()
	log.WithFields(fields).Warning("maccommand: new_channel request rejected")
	return ans
}

// frequencyOK returns true when the channel at the given index may use
// the given frequency. A frequency of 0 disables the channel.
func frequencyOK(p *region.Plan, index int, frequency uint32) bool {
	channels := p.Channels()
	if index < 0 || index >= channels.Len() || channels.Mandatory(index) {
		return false
	}
	if frequency == 0 {
		return true
	}
	if !p.ValidFrequencyRange().Contains(frequency) {
		return false
	}
	_, _, err := p.Band(frequency)
	return err == nil
}
