// Package simulator implements a device uplink loop driven by a virtual
// clock. Every uplink goes through channel selection, the duty-cycle check
// and the radio, scripted mac-command downlinks are applied in between.
package simulator

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"sort"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/brocaar/chirpstack-device-region/internal/config"
	"github.com/brocaar/chirpstack-device-region/internal/logging"
	"github.com/brocaar/chirpstack-device-region/internal/maccommand"
	"github.com/brocaar/chirpstack-device-region/internal/radio"
	"github.com/brocaar/chirpstack-device-region/internal/region"
	"github.com/brocaar/lorawan"
)

// Summary holds the statistics of a simulation run.
type Summary struct {
	RunID         uuid.UUID
	Uplinks       int
	Transmissions int
	Elapsed       time.Duration
	TotalAirtime  time.Duration
	MeanAirtime   time.Duration
	MeanWait      time.Duration
	StdDevWait    time.Duration
	P95Wait       time.Duration
	DutyCycle     float64
}

type downlink struct {
	raw      string
	commands []lorawan.MACCommand
	err      error
}

// Simulator simulates a device transmitting uplinks.
type Simulator struct {
	runID     uuid.UUID
	plan      *region.Plan
	radio     radio.Radio
	state     maccommand.State
	now       time.Time
	start     time.Time
	sleep     func(ctx context.Context, d time.Duration) error
	uplinks   int
	size      int
	interval  time.Duration
	downlinks []downlink
	at        int

	// encoded mac-command answers, sent with the next uplink
	pending []byte

	totalAirtime time.Duration
	airtimes     []float64
	waits        []float64
}

// New creates a new Simulator starting at the given (virtual) time.
func New(p *region.Plan, r radio.Radio, c config.Config, start time.Time) (*Simulator, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.Wrap(err, "new run id error")
	}

	sc := c.Simulator
	dr := region.DataRate(sc.DataRate)
	if !p.ValidDataRate(dr) {
		return nil, errors.Wrapf(region.ErrIllegalRateCode, "data-rate %d", sc.DataRate)
	}
	if !p.ValidPowerIndex(sc.TXPowerIndex) {
		return nil, region.ErrInvalidPowerIndex
	}

	s := Simulator{
		runID:    id,
		plan:     p,
		radio:    r,
		state:    maccommand.NewState(p),
		now:      start,
		start:    start,
		sleep:    virtualSleep,
		uplinks:  sc.Uplinks,
		size:     sc.PayloadSize,
		interval: sc.Interval,
		at:       sc.MACCommandsAt,
	}
	s.state.DataRate = dr
	s.state.TXPowerIndex = sc.TXPowerIndex
	if sc.RealTime {
		s.sleep = realSleep
	}

	for _, raw := range sc.MACCommands {
		b, err := hex.DecodeString(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "decode mac-commands %s error", raw)
		}

		// a truncated block keeps the commands decoded before it
		cmds, err := maccommand.Decode(b)
		s.downlinks = append(s.downlinks, downlink{raw: raw, commands: cmds, err: err})
	}

	return &s, nil
}

// State returns the current device MAC state.
func (s *Simulator) State() maccommand.State {
	return s.state
}

// Run runs the simulation until all uplinks are sent or the context is
// cancelled.
func (s *Simulator) Run(ctx context.Context) (Summary, error) {
	ctx = logging.WithContextID(ctx, s.runID)

	logging.WithContext(ctx).WithFields(log.Fields{
		"region":  s.plan.Name(),
		"uplinks": s.uplinks,
	}).Info("simulator: starting simulation")

	var fCnt uint32
	var transmissions int

uplinks:
	for i := 0; i < s.uplinks; i++ {
		payload := s.payload(fCnt)
		s.pending = nil

		for rep := 0; rep < int(s.state.NbTrans); rep++ {
			if err := s.transmit(ctx, fCnt, payload); err != nil {
				if errors.Cause(err) == region.ErrSilenced {
					logging.WithContext(ctx).WithField("f_cnt", fCnt).Warning("simulator: silenced by network, stopping")
					break uplinks
				}
				return Summary{}, err
			}
			transmissions++
		}
		fCnt++

		if err := s.downlink(i); err != nil {
			return Summary{}, err
		}
		s.now = s.now.Add(s.interval)
	}

	summary := s.summary(transmissions)
	logging.WithContext(ctx).WithFields(log.Fields{
		"uplinks":       summary.Uplinks,
		"transmissions": summary.Transmissions,
		"elapsed":       summary.Elapsed,
		"total_airtime": summary.TotalAirtime,
		"mean_wait":     summary.MeanWait,
		"p95_wait":      summary.P95Wait,
		"duty_cycle":    summary.DutyCycle,
	}).Info("simulator: simulation completed")

	return summary, nil
}

func (s *Simulator) transmit(ctx context.Context, fCnt uint32, payload []byte) error {
	index, at, err := s.plan.SelectChannel(s.state.DataRate)
	if err != nil {
		return errors.Wrap(err, "select channel error")
	}

	var wait time.Duration
	if at.After(s.now) {
		wait = at.Sub(s.now)
		if err := s.sleep(ctx, wait); err != nil {
			return err
		}
		s.now = at
	}

	tx, err := s.plan.PrepareTransmission(index, s.state.DataRate, s.state.TXPowerIndex, s.now)
	if err != nil {
		return errors.Wrap(err, "prepare transmission error")
	}

	if err := s.radio.Transmit(ctx, tx, payload); err != nil {
		return errors.Wrap(err, "transmit error")
	}

	airtime := region.AirTime(tx.RPS, len(payload))
	s.now = s.now.Add(airtime)
	next, err := s.plan.RecordTransmission(tx.Frequency, airtime, s.now)
	if err != nil {
		return errors.Wrap(err, "record transmission error")
	}

	s.totalAirtime += airtime
	s.airtimes = append(s.airtimes, airtime.Seconds())
	s.waits = append(s.waits, wait.Seconds())

	logging.WithContext(ctx).WithFields(log.Fields{
		"f_cnt":        fCnt,
		"channel":      tx.Channel,
		"frequency":    tx.Frequency,
		"band":         tx.Band,
		"dr":           tx.DataRate,
		"airtime":      airtime,
		"wait":         wait,
		"band_next_tx": next.Sub(s.start),
	}).Debug("simulator: uplink transmitted")

	return nil
}

// downlink applies the scripted mac-commands following the given uplink.
func (s *Simulator) downlink(uplink int) error {
	i := uplink - s.at
	if i < 0 || i >= len(s.downlinks) {
		return nil
	}
	dl := s.downlinks[i]

	if dl.err != nil {
		log.WithError(dl.err).WithField("mac_commands", dl.raw).Warning("simulator: mac-commands partially decoded")
	}

	answers := maccommand.Handle(s.plan, &s.state, dl.commands)
	b, err := maccommand.Encode(answers)
	if err != nil {
		return errors.Wrap(err, "encode mac-command answers error")
	}
	s.pending = b

	log.WithFields(log.Fields{
		"mac_commands": dl.raw,
		"answers":      hex.EncodeToString(b),
		"dr":           s.state.DataRate,
		"nb_trans":     s.state.NbTrans,
	}).Info("simulator: mac-commands handled")

	return nil
}

// payload returns the pending mac-command answers followed by the
// big-endian frame-counter, padded to the configured payload size.
func (s *Simulator) payload(fCnt uint32) []byte {
	b := make([]byte, len(s.pending)+s.size)
	copy(b, s.pending)
	if s.size >= 4 {
		binary.BigEndian.PutUint32(b[len(s.pending):], fCnt)
	}
	return b
}

func (s *Simulator) summary(transmissions int) Summary {
	out := Summary{
		RunID:         s.runID,
		Uplinks:       s.uplinks,
		Transmissions: transmissions,
		Elapsed:       s.now.Sub(s.start),
	}
	if len(s.airtimes) == 0 {
		return out
	}

	out.TotalAirtime = s.totalAirtime
	out.MeanAirtime = seconds(stat.Mean(s.airtimes, nil))

	out.MeanWait = seconds(stat.Mean(s.waits, nil))
	if len(s.waits) > 1 {
		out.StdDevWait = seconds(stat.StdDev(s.waits, nil))
	}

	sorted := append([]float64(nil), s.waits...)
	sort.Float64s(sorted)
	out.P95Wait = seconds(stat.Quantile(0.95, stat.Empirical, sorted, nil))

	if out.Elapsed > 0 {
		out.DutyCycle = float64(s.totalAirtime) / float64(out.Elapsed)
	}

	return out
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Microsecond)
}

func virtualSleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

func realSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
