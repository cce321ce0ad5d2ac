package maccommand

import (
	log "github.com/sirupsen/logrus"

	"github.com/brocaar/chirpstack-device-region/internal/region"
	"github.com/brocaar/lorawan"
)

// HandleDLChannelReq sets the RX1 frequency of an existing uplink channel.
func HandleDLChannelReq(p *region.Plan, pl lorawan.DLChannelReqPayload) lorawan.DLChannelAnsPayload {
	channels := p.Channels()
	index := int(pl.ChIndex)

	var ans lorawan.DLChannelAnsPayload
	if c, err := channels.Channel(index); err == nil {
		ans.UplinkFrequencyExists = c.Enabled
	}
	if p.ValidFrequencyRange().Contains(pl.Freq) {
		_, _, err := p.Band(pl.Freq)
		ans.ChannelFrequencyOK = err == nil
	}

	fields := log.Fields{
		"channel":                 index,
		"frequency":               pl.Freq,
		"uplink_frequency_exists": ans.UplinkFrequencyExists,
		"channel_frequency_ok":    ans.ChannelFrequencyOK,
	}

	if !ans.UplinkFrequencyExists || !ans.ChannelFrequencyOK {
		answered(lorawan.DLChannelReq, false).Inc()
		log.WithFields(fields).Warning("maccommand: dl_channel request rejected")
		return ans
	}

	if err := channels.SetDownlinkFrequency(index, pl.Freq); err != nil {
		log.WithFields(fields).WithError(err).Warning("maccommand: set downlink frequency error")
		return lorawan.DLChannelAnsPayload{}
	}

	answered(lorawan.DLChannelReq, true).Inc()
	log.WithFields(fields).Info("maccommand: dl_channel request accepted")
	return ans
}
