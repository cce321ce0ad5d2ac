package maccommand

import (
	"github.com/pkg/errors"

	"github.com/brocaar/lorawan"
)

// ErrTruncated is returned when the last mac-command does not contain its
// complete payload.
var ErrTruncated = errors.New("truncated mac-command")

// knownCommand returns the payload size of the given network-server to
// device mac-command. DevStatusReq is the only known command without
// payload.
func knownCommand(cid lorawan.CID) (int, bool) {
	if cid == lorawan.DevStatusReq {
		return 0, true
	}
	_, size, err := lorawan.GetMACPayloadAndSize(false, cid)
	if err != nil {
		return 0, false
	}
	return size, true
}

// Decode decodes the given network-server to device mac-command bytes. On
// an unknown or truncated command, the commands decoded so far are
// returned together with the error.
func Decode(data []byte) ([]lorawan.MACCommand, error) {
	var out []lorawan.MACCommand

	for len(data) > 0 {
		cid := lorawan.CID(data[0])

		size, ok := knownCommand(cid)
		if !ok {
			return out, errors.Errorf("unknown mac-command cid: %d", cid)
		}
		if len(data) < size+1 {
			return out, errors.Wrapf(ErrTruncated, "cid %d expects %d bytes, got %d", cid, size, len(data)-1)
		}

		var cmd lorawan.MACCommand
		if err := cmd.UnmarshalBinary(false, data[:size+1]); err != nil {
			return out, errors.Wrapf(err, "unmarshal cid %d error", cid)
		}

		out = append(out, cmd)
		data = data[size+1:]
	}

	return out, nil
}

// Encode encodes the given mac-commands.
func Encode(cmds []lorawan.MACCommand) ([]byte, error) {
	var out []byte
	for _, cmd := range cmds {
		b, err := cmd.MarshalBinary()
		if err != nil {
			return nil, errors.Wrap(err, "marshal mac-command error")
		}
		out = append(out, b...)
	}
	return out, nil
}
