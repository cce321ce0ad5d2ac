// Package maccommand validates and applies the channel, data-rate and
// duty-cycle related mac-commands sent by the network-server.
package maccommand

import (
	log "github.com/sirupsen/logrus"

	"github.com/brocaar/chirpstack-device-region/internal/region"
	"github.com/brocaar/lorawan"
)

// keepCurrent is the DataRate / TXPower value requesting to keep the
// current setting.
const keepCurrent = 0x0f

// State holds the device MAC state which is modified by the mac-commands.
type State struct {
	DataRate     region.DataRate
	TXPowerIndex uint8
	NbTrans      uint8
	RX1DROffset  uint8
	RX2Frequency uint32
	RX2DataRate  region.DataRate
}

// NewState returns the default MAC state for the given plan.
func NewState(p *region.Plan) State {
	rx2 := p.DefaultRX2Parameters()
	return State{
		DataRate:     region.DR0,
		NbTrans:      1,
		RX2Frequency: rx2.Frequency,
		RX2DataRate:  rx2.DataRate,
	}
}

// Handle handles the given mac-commands and returns the answers to send
// with the next uplink. Consecutive LinkADRReq commands are handled as a
// single block. Known commands outside the region scope are skipped,
// handling stops at the first unknown command or unexpected payload.
func Handle(p *region.Plan, st *State, cmds []lorawan.MACCommand) []lorawan.MACCommand {
	var out []lorawan.MACCommand

	for i := 0; i < len(cmds); i++ {
		cmd := cmds[i]

		switch cmd.CID {
		case lorawan.LinkADRReq:
			var block []lorawan.LinkADRReqPayload
			for ; i < len(cmds) && cmds[i].CID == lorawan.LinkADRReq; i++ {
				pl, ok := cmds[i].Payload.(*lorawan.LinkADRReqPayload)
				if !ok {
					return invalidPayload(out, cmds[i])
				}
				block = append(block, *pl)
			}
			i--

			ans := HandleLinkADRReq(p, st, block)
			out = append(out, lorawan.MACCommand{CID: lorawan.LinkADRAns, Payload: &ans})

		case lorawan.NewChannelReq:
			pl, ok := cmd.Payload.(*lorawan.NewChannelReqPayload)
			if !ok {
				return invalidPayload(out, cmd)
			}
			ans := HandleNewChannelReq(p, *pl)
			out = append(out, lorawan.MACCommand{CID: lorawan.NewChannelAns, Payload: &ans})

		case lorawan.RXParamSetupReq:
			pl, ok := cmd.Payload.(*lorawan.RXParamSetupReqPayload)
			if !ok {
				return invalidPayload(out, cmd)
			}
			ans := HandleRXParamSetupReq(p, st, *pl)
			out = append(out, lorawan.MACCommand{CID: lorawan.RXParamSetupAns, Payload: &ans})

		case lorawan.DLChannelReq:
			pl, ok := cmd.Payload.(*lorawan.DLChannelReqPayload)
			if !ok {
				return invalidPayload(out, cmd)
			}
			ans := HandleDLChannelReq(p, *pl)
			out = append(out, lorawan.MACCommand{CID: lorawan.DLChannelAns, Payload: &ans})

		case lorawan.DutyCycleReq:
			pl, ok := cmd.Payload.(*lorawan.DutyCycleReqPayload)
			if !ok {
				return invalidPayload(out, cmd)
			}
			HandleDutyCycleReq(p, *pl)
			out = append(out, lorawan.MACCommand{CID: lorawan.DutyCycleAns})

		default:
			if _, ok := knownCommand(cmd.CID); !ok {
				log.WithField("cid", cmd.CID).Warning("maccommand: unknown mac-command, ignoring remaining commands")
				return out
			}
			log.WithField("cid", cmd.CID).Debug("maccommand: mac-command not handled by region, skipping")
		}
	}

	return out
}

func invalidPayload(out []lorawan.MACCommand, cmd lorawan.MACCommand) []lorawan.MACCommand {
	log.WithFields(log.Fields{
		"cid":     cmd.CID,
		"payload": cmd.Payload,
	}).Warning("maccommand: unexpected payload type, ignoring remaining commands")
	return out
}
