package region

import (
	"sync"
	"time"
)

// maxDCycleLimit is the highest MaxDCycle value accepted by DutyCycleReq.
const maxDCycleLimit = 15

// SilenceDutyCycle is the MaxDCycle value requesting the device to stop
// transmitting.
const SilenceDutyCycle = 255

// DutyCycleTracker keeps track of the earliest time a next transmission is
// allowed, per band. After a transmission of airtime T on a band with
// duty-cycle f, the band becomes available at completion + T*(1/f - 1).
// Availability times only move forward.
type DutyCycleTracker struct {
	mu sync.Mutex

	bands     BandPlan
	available []time.Time

	// aggregated (device wide) duty-cycle limit of 1/2^maxDCycle, disabled
	// when 0.
	maxDCycle       uint8
	globalAvailable time.Time
}

// NewDutyCycleTracker creates a DutyCycleTracker for the given bands with
// all bands available at now.
func NewDutyCycleTracker(bands BandPlan, now time.Time) *DutyCycleTracker {
	t := DutyCycleTracker{
		bands:           bands,
		available:       make([]time.Time, len(bands)),
		globalAvailable: now,
	}
	for i := range t.available {
		t.available[i] = now
	}
	return &t
}

// Record accounts a transmission of the given airtime on the given band,
// completed at the given time. It returns the new availability time of
// the band.
func (t *DutyCycleTracker) Record(band int, completedAt time.Time, airtime time.Duration) (time.Time, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if band < 0 || band >= len(t.bands) {
		return time.Time{}, ErrInvalidIndex
	}

	next := completedAt.Add(t.bands[band].DutyCycle.OffTime(airtime))
	if next.After(t.available[band]) {
		t.available[band] = next
	}

	if t.maxDCycle != 0 && t.maxDCycle <= maxDCycleLimit && airtime > 0 {
		global := completedAt.Add(airtime * time.Duration((1<<t.maxDCycle)-1))
		if global.After(t.globalAvailable) {
			t.globalAvailable = global
		}
	}

	return t.available[band], nil
}

// AvailableAt returns the earliest time the band may be used again.
func (t *DutyCycleTracker) AvailableAt(band int) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	if band < 0 || band >= len(t.available) {
		return time.Time{}
	}
	return t.available[band]
}

// EarliestTransmit returns the earliest time a transmission on the band is
// allowed, taking the aggregated duty-cycle limit into account.
func (t *DutyCycleTracker) EarliestTransmit(band int) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	if band < 0 || band >= len(t.available) {
		return time.Time{}
	}
	if t.globalAvailable.After(t.available[band]) {
		return t.globalAvailable
	}
	return t.available[band]
}

// SetMaxDutyCycle sets the aggregated duty-cycle limit to 1/2^maxDCycle.
// A value of 0 removes the limit, SilenceDutyCycle blocks all
// transmissions until another limit is set.
func (t *DutyCycleTracker) SetMaxDutyCycle(maxDCycle uint8) error {
	if maxDCycle > maxDCycleLimit && maxDCycle != SilenceDutyCycle {
		return ErrInvalidDutyCycle
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.maxDCycle = maxDCycle
	return nil
}

// Silenced returns true when the device must not transmit.
func (t *DutyCycleTracker) Silenced() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maxDCycle == SilenceDutyCycle
}

// MaxDutyCycle returns the aggregated duty-cycle limit exponent.
func (t *DutyCycleTracker) MaxDutyCycle() uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maxDCycle
}
