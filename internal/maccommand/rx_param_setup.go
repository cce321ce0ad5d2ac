package maccommand

import (
	log "github.com/sirupsen/logrus"

	"github.com/brocaar/chirpstack-device-region/internal/region"
	"github.com/brocaar/lorawan"
)

// HandleRXParamSetupReq modifies the RX1 data-rate offset, RX2 frequency
// and RX2 data-rate of the given state. Nothing is modified unless all
// three are acknowledged.
func HandleRXParamSetupReq(p *region.Plan, st *State, pl lorawan.RXParamSetupReqPayload) lorawan.RXParamSetupAnsPayload {
	rx2DR := region.DataRate(pl.DLSettings.RX2DataRate)

	ans := lorawan.RXParamSetupAnsPayload{
		RX1DROffsetACK: p.ValidRX1DROffset(pl.DLSettings.RX1DROffset),
		RX2DataRateACK: p.ValidDataRate(rx2DR),
	}
	if p.ValidFrequencyRange().Contains(pl.Frequency) {
		_, _, err := p.Band(pl.Frequency)
		ans.ChannelACK = err == nil
	}

	fields := log.Fields{
		"rx1_dr_offset":     pl.DLSettings.RX1DROffset,
		"rx2_frequency":     pl.Frequency,
		"rx2_dr":            rx2DR,
		"channel_ack":       ans.ChannelACK,
		"rx2_data_rate_ack": ans.RX2DataRateACK,
		"rx1_dr_offset_ack": ans.RX1DROffsetACK,
	}

	if !ans.ChannelACK || !ans.RX2DataRateACK || !ans.RX1DROffsetACK {
		answered(lorawan.RXParamSetupReq, false).Inc()
		log.WithFields(fields).Warning("maccommand: rx_param_setup request rejected")
		return ans
	}

	st.RX1DROffset = pl.DLSettings.RX1DROffset
	st.RX2Frequency = pl.Frequency
	st.RX2DataRate = rx2DR

	answered(lorawan.RXParamSetupReq, true).Inc()
	log.WithFields(fields).Info("maccommand: rx_param_setup request accepted")
	return ans
}
