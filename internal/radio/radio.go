// Package radio defines the radio driver used to emit uplink frames.
package radio

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/brocaar/chirpstack-device-region/internal/logging"
	"github.com/brocaar/chirpstack-device-region/internal/region"
)

// Radio is the interface a radio driver must implement.
type Radio interface {
	// Transmit emits the given payload using the given TX parameters.
	Transmit(ctx context.Context, params region.TXParams, payload []byte) error

	// Close closes the radio.
	Close() error
}

// Frame describes a transmitted frame.
type Frame struct {
	ID         uuid.UUID `json:"id"`
	Time       time.Time `json:"time"`
	Region     string    `json:"region"`
	Channel    int       `json:"channel"`
	Frequency  uint32    `json:"frequency"`
	DataRate   int       `json:"dataRate"`
	Modulation string    `json:"modulation"`
	PowerDBm   int       `json:"powerDBm"`
	Band       string    `json:"band"`
	Payload    []byte    `json:"payload"`
}

// NewFrame returns a new Frame with a random ID.
func NewFrame(regionName string, params region.TXParams, payload []byte, t time.Time) (Frame, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return Frame{}, err
	}

	return Frame{
		ID:         id,
		Time:       t,
		Region:     regionName,
		Channel:    params.Channel,
		Frequency:  params.Frequency,
		DataRate:   int(params.DataRate),
		Modulation: params.RPS.String(),
		PowerDBm:   int(params.PowerDBm),
		Band:       params.Band,
		Payload:    payload,
	}, nil
}

// LogRadio implements a Radio which only logs the transmitted frames.
type LogRadio struct {
	count int
}

// NewLogRadio creates a new LogRadio.
func NewLogRadio() *LogRadio {
	return &LogRadio{}
}

// Transmit logs the given frame.
func (r *LogRadio) Transmit(ctx context.Context, params region.TXParams, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.count++
	logging.WithContext(ctx).WithFields(log.Fields{
		"channel":   params.Channel,
		"frequency": params.Frequency,
		"dr":        params.DataRate,
		"rps":       params.RPS,
		"power_dbm": params.PowerDBm,
		"band":      params.Band,
		"payload":   hex.EncodeToString(payload),
	}).Info("radio: frame transmitted")
	return nil
}

// Count returns the number of transmitted frames.
func (r *LogRadio) Count() int {
	return r.count
}

// Close implements the Radio interface.
func (r *LogRadio) Close() error {
	return nil
}
