package region

// Channel defines an uplink channel.
type Channel struct {
	// Frequency in Hz, 0 when the channel is disabled.
	Frequency uint32

	// DownlinkFrequency overrides the RX1 frequency, 0 when RX1 uses the
	// uplink frequency.
	DownlinkFrequency uint32

	MinDR   DataRate
	MaxDR   DataRate
	Enabled bool
}

// Supports returns true when the channel is enabled and allows the given
// data-rate.
func (c Channel) Supports(dr DataRate) bool {
	return c.Enabled && dr >= c.MinDR && dr <= c.MaxDR
}

// RX1Frequency returns the frequency used for the RX1 receive window.
func (c Channel) RX1Frequency() uint32 {
	if c.DownlinkFrequency != 0 {
		return c.DownlinkFrequency
	}
	return c.Frequency
}

type channelSlot struct {
	Channel

	// mandatory slots hold one of the default frequencies of the region
	// and can only be reset.
	mandatory        bool
	defaultFrequency uint32

	// active is the LinkADRReq channel-mask state.
	active bool
}

// ChannelTable holds a fixed number of channel slots. The first slots are
// the mandatory default channels of the region.
type ChannelTable struct {
	slots        []channelSlot
	bounds       FrequencyRange
	bands        BandPlan
	rates        RateTable
	defaultRange [2]DataRate
}

// NewChannelTable creates a ChannelTable for the given region constants and
// installs the default channels.
func NewChannelTable(c Constants) *ChannelTable {
	t := ChannelTable{
		slots:        make([]channelSlot, c.MaxChannels),
		bounds:       c.FrequencyRange,
		bands:        c.Bands,
		rates:        c.DataRates,
		defaultRange: [2]DataRate{c.DefaultMinDR, c.DefaultMaxDR},
	}

	for i, f := range c.DefaultChannels {
		if i >= len(t.slots) {
			break
		}
		t.slots[i].mandatory = true
		t.slots[i].defaultFrequency = f
	}

	t.InitDefaults()
	return &t
}

// InitDefaults installs the default frequencies on the mandatory slots
// with the default data-rate range and disables all other slots.
func (t *ChannelTable) InitDefaults() {
	for i := range t.slots {
		if t.slots[i].mandatory {
			t.set(i, t.slots[i].defaultFrequency, t.defaultRange[0], t.defaultRange[1])
		} else {
			t.disable(i)
		}
	}
}

// Configure modifies the channel at the given index. A frequency of 0
// disables the channel. A default RateRange installs the default data-rate
// range of the region and is the only accepted request for mandatory
// channels, for which it restores the default frequency. On error the
// table is left unmodified.
func (t *ChannelTable) Configure(index int, frequency uint32, rng RateRange) error {
	if index < 0 || index >= len(t.slots) {
		return ErrInvalidIndex
	}

	s := t.slots[index]
	if s.mandatory {
		if !rng.IsDefault() {
			return ErrProtectedChannel
		}
		if frequency != 0 && frequency != s.defaultFrequency {
			return ErrProtectedChannel
		}
		t.set(index, s.defaultFrequency, t.defaultRange[0], t.defaultRange[1])
		return nil
	}

	if frequency == 0 {
		t.disable(index)
		return nil
	}

	if !t.bounds.Contains(frequency) {
		return ErrFrequencyOutOfRange
	}
	if _, _, ok := t.bands.Lookup(frequency); !ok {
		return ErrFrequencyOutOfRange
	}

	min, max := t.defaultRange[0], t.defaultRange[1]
	if !rng.IsDefault() {
		min, max, _ = rng.Bounds()
		if min > max || !t.rates.Valid(min) || !t.rates.Valid(max) {
			return ErrDataRateRange
		}
	}

	t.set(index, frequency, min, max)
	return nil
}

// SetDownlinkFrequency sets the RX1 frequency of an enabled channel. A
// frequency of 0 makes RX1 use the uplink frequency again.
func (t *ChannelTable) SetDownlinkFrequency(index int, frequency uint32) error {
	if index < 0 || index >= len(t.slots) {
		return ErrInvalidIndex
	}
	if !t.slots[index].Enabled {
		return ErrChannelDisabled
	}
	if frequency != 0 && !t.bounds.Contains(frequency) {
		return ErrFrequencyOutOfRange
	}

	t.slots[index].DownlinkFrequency = frequency
	return nil
}

// ValidateMask returns ErrInvalidChannelMask when the mask activates a
// disabled channel or when no channel would remain active.
func (t *ChannelTable) ValidateMask(mask []bool) error {
	var count int
	for i, on := range mask {
		if !on {
			continue
		}
		if i >= len(t.slots) || !t.slots[i].Enabled {
			return ErrInvalidChannelMask
		}
		count++
	}
	if count == 0 {
		return ErrInvalidChannelMask
	}
	return nil
}

// SetMask sets the active channels. Channels beyond the length of the mask
// are deactivated. Invalid masks are rejected, see ValidateMask.
func (t *ChannelTable) SetMask(mask []bool) error {
	if err := t.ValidateMask(mask); err != nil {
		return err
	}

	for i := range t.slots {
		t.slots[i].active = i < len(mask) && mask[i]
	}
	return nil
}

// ActivateAll activates all enabled channels.
func (t *ChannelTable) ActivateAll() {
	for i := range t.slots {
		t.slots[i].active = t.slots[i].Enabled
	}
}

// Mask returns the active state of every slot.
func (t *ChannelTable) Mask() []bool {
	out := make([]bool, len(t.slots))
	for i := range t.slots {
		out[i] = t.slots[i].active
	}
	return out
}

// Len returns the number of channel slots.
func (t *ChannelTable) Len() int {
	return len(t.slots)
}

// Channel returns the channel at the given index.
func (t *ChannelTable) Channel(index int) (Channel, error) {
	if index < 0 || index >= len(t.slots) {
		return Channel{}, ErrInvalidIndex
	}
	return t.slots[index].Channel, nil
}

// Channels returns a copy of all channel slots.
func (t *ChannelTable) Channels() []Channel {
	out := make([]Channel, len(t.slots))
	for i := range t.slots {
		out[i] = t.slots[i].Channel
	}
	return out
}

// Mandatory returns true when the slot at the given index is a mandatory
// default channel.
func (t *ChannelTable) Mandatory(index int) bool {
	return index >= 0 && index < len(t.slots) && t.slots[index].mandatory
}

// Active returns true when the channel is enabled and active in the mask.
func (t *ChannelTable) Active(index int) bool {
	return index >= 0 && index < len(t.slots) && t.slots[index].Enabled && t.slots[index].active
}

func (t *ChannelTable) set(index int, frequency uint32, min, max DataRate) {
	s := &t.slots[index]
	if s.Frequency != frequency {
		s.DownlinkFrequency = 0
	}
	s.Frequency = frequency
	s.MinDR = min
	s.MaxDR = max
	s.Enabled = true
	s.active = true
}

func (t *ChannelTable) disable(index int) {
	s := &t.slots[index]
	s.Channel = Channel{}
	s.active = false
}
