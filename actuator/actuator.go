// package actuator implements the uniform six-slot actuator-command
// model shared by the V2 and V3 protocol encoders.
package actuator

import (
	"errors"
	"fmt"
)

// Kind is the physical effect a slot drives.
type Kind uint8

const (
	Vibrate Kind = iota
	Oscillate
	Inflate
)

func (k Kind) String() string {
	switch k {
	case Vibrate:
		return "vibrate"
	case Oscillate:
		return "oscillate"
	case Inflate:
		return "inflate"
	default:
		return "unknown"
	}
}

// Channel is the physical output channel, A or B.
type Channel uint8

const (
	ChannelA Channel = iota
	ChannelB
)

func (c Channel) String() string {
	if c == ChannelB {
		return "B"
	}
	return "A"
}

// Slot indexes the fixed six-actuator layout. Reordering these values
// silently miswires output to a different physical effect, so they are
// a wire-level contract, not an implementation detail.
type Slot uint8

const (
	VibrateA Slot = iota
	VibrateB
	OscillateA
	OscillateB
	InflateA
	InflateB

	NumSlots = 6
)

// layout is the fixed (channel, kind) table from the data model.
var layout = [NumSlots]struct {
	Channel Channel
	Kind    Kind
}{
	VibrateA:   {ChannelA, Vibrate},
	VibrateB:   {ChannelB, Vibrate},
	OscillateA: {ChannelA, Oscillate},
	OscillateB: {ChannelB, Oscillate},
	InflateA:   {ChannelA, Inflate},
	InflateB:   {ChannelB, Inflate},
}

// Channel returns the fixed physical channel for the slot.
func (s Slot) Channel() Channel {
	return layout[s].Channel
}

// Kind returns the fixed actuator kind for the slot.
func (s Slot) Kind() Kind {
	return layout[s].Kind
}

func (s Slot) valid() bool {
	return s < NumSlots
}

// Command is a single (index, scalar, kind) triple from a scalar batch.
// Kind is advisory: Apply always uses the slot's fixed kind regardless
// of what is passed here. A mismatch is a configuration error, not a
// runtime one (see spec §4.1); Apply takes no action on it.
type Command struct {
	Slot   Slot
	Scalar float64
	Kind   Kind
}

// Batch is an unordered collection of per-slot commands. Slots not
// present retain their previously commanded value.
type Batch []Command

// State is the normalized six-slot vector S, each entry in [0,1].
// It is process-local per device session; there is no persisted state.
type State [NumSlots]float64

// Apply validates batch and writes its scalars into state in place.
// Indices absent from batch retain their prior value. On the first
// out-of-range or unknown-index error, state is left unmodified and the
// error is returned; no partial application occurs.
func Apply(state *State, batch Batch) error {
	for _, c := range batch {
		if !c.Slot.valid() {
			return &InvalidCommandError{
				Err:    ErrUnknownSlot,
				Reason: fmt.Sprintf("unknown actuator index %d", c.Slot),
			}
		}
		if c.Scalar < 0 || c.Scalar > 1 {
			return &InvalidCommandError{
				Err:    ErrOutOfRange,
				Reason: fmt.Sprintf("scalar %v for slot %d out of range [0,1]", c.Scalar, c.Slot),
			}
		}
	}
	// Validation passed for every triple; now apply them all.
	for _, c := range batch {
		state[c.Slot] = c.Scalar
	}
	return nil
}

// Stop zeroes every slot, equivalent to a scalar batch setting all six
// indices to 0.
func Stop(state *State) {
	*state = State{}
}

// ErrOutOfRange and ErrUnknownSlot are the two §7 InvalidCommand failure
// modes. They are wrapped by InvalidCommandError so callers can either
// read Reason for a human-readable message or use errors.Is to switch on
// which failure mode occurred without parsing text.
var (
	ErrOutOfRange  = errors.New("actuator: scalar out of range")
	ErrUnknownSlot = errors.New("actuator: unknown actuator index")
)

// InvalidCommandError reports a scalar out of range or an unknown slot
// index. It carries no wire effect: the caller's state is left untouched
// and no transport write is emitted.
type InvalidCommandError struct {
	Err    error // ErrOutOfRange or ErrUnknownSlot
	Reason string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("actuator: invalid command: %s", e.Reason)
}

func (e *InvalidCommandError) Unwrap() error { return e.Err }
