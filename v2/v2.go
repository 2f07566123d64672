// package v2 implements the bit-packed protocol adapter for the
// "Dungeon Lab V2" device family: three independent 24-bit
// little-endian words written to the tx, generic0 and generic1
// endpoints.
//
// The pack table below is derived directly from the golden vectors:
// for each slot, the one-vector (scalar=1) bit pattern is isolated to
// its own endpoint word, the position of its lowest set bit becomes
// the field's shift, and the pattern shifted down by that amount
// becomes the field's max value. Reproducing the table this way,
// rather than re-deriving strength/frequency/pulse-width semantics by
// hand, is deliberate: the firmware's bit layout is reverse-engineered
// and the vectors are the only authority on it (see the tmc2209
// driver's register-constant tables for the same "named bit position,
// not hand rolled shifts" idiom).
package v2

import (
	"fmt"
	"math"

	"dungeonctl.dev/actuator"
	"dungeonctl.dev/transport"
)

// Endpoint names, fixed by the wire contract.
const (
	EndpointTX       = "tx"
	EndpointGeneric0 = "generic0"
	EndpointGeneric1 = "generic1"
)

// wordIndex names the three independent 24-bit words this protocol
// writes, in their fixed write order.
type wordIndex int

const (
	wordTX wordIndex = iota
	wordGeneric0
	wordGeneric1
	numWords
)

var wordEndpoint = [numWords]string{
	wordTX:       EndpointTX,
	wordGeneric0: EndpointGeneric0,
	wordGeneric1: EndpointGeneric1,
}

// field describes one slot's contribution to one of the three 24-bit
// words: it occupies bits [shift, shift+width) where width is implied
// by max (the largest value the field can hold).
type field struct {
	word  wordIndex
	shift uint
	max   uint32
}

// fieldTable is indexed by actuator.Slot and fully constrains the
// encoder: the golden all-on/all-off/single-slot vectors in the
// protocol spec are exactly the OR-combination of these six fields.
var fieldTable = [actuator.NumSlots]field{
	actuator.VibrateA:   {word: wordTX, shift: 0, max: 2047},
	actuator.VibrateB:   {word: wordTX, shift: 11, max: 2047},
	actuator.OscillateA: {word: wordGeneric0, shift: 0, max: 0x7B2F},
	actuator.OscillateB: {word: wordGeneric1, shift: 0, max: 0x7B2F},
	actuator.InflateA:   {word: wordGeneric0, shift: 15, max: 31},
	actuator.InflateB:   {word: wordGeneric1, shift: 15, max: 31},
}

// State names the two-state machine of the protocol spec: Idle (last
// command was Stop, or nothing was ever sent) and Active (at least one
// actuator nonzero).
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Encoder translates normalized actuator state into the V2 wire
// protocol and writes it to a transport.Writer. It is not safe for
// concurrent use; callers must serialize commands per device (spec §5).
type Encoder struct {
	w     transport.Writer
	last  actuator.State
	state State
}

// New returns an Encoder that writes through w.
func New(w transport.Writer) *Encoder {
	return &Encoder{w: w, state: Idle}
}

// State reports the encoder's current Idle/Active state.
func (e *Encoder) State() State {
	return e.state
}

// HandleScalar applies batch to the carried-forward state and emits
// the resulting three writes in the fixed order tx, generic0,
// generic1. A batch is not complete until all three writes have
// resolved; on the first transport failure, HandleScalar returns
// immediately without attempting the remaining writes and the
// encoder's internal state reflects the commanded intent, not what
// was actually sent.
func (e *Encoder) HandleScalar(batch actuator.Batch) error {
	next := e.last
	if err := actuator.Apply(&next, batch); err != nil {
		return err
	}
	e.last = next
	e.updateState()
	return e.emit()
}

// HandleStop drives every actuator to zero and emits the resulting
// all-zero three-write sequence. Calling HandleStop twice in a row
// produces the same wire traffic both times (protocol spec's Stop
// idempotence property): this encoder never suppresses the write on
// the grounds that the state didn't change.
func (e *Encoder) HandleStop() error {
	actuator.Stop(&e.last)
	e.state = Idle
	return e.emit()
}

func (e *Encoder) updateState() {
	e.state = Idle
	for _, v := range e.last {
		if v != 0 {
			e.state = Active
			break
		}
	}
}

// emit packs e.last into the three protocol words and writes them, in
// fixed order, regardless of whether anything changed: entering Idle
// must still produce the all-zero write sequence, not silence.
func (e *Encoder) emit() error {
	var words [numWords]uint32
	for slot, v := range e.last {
		f := fieldTable[slot]
		fv := uint32(math.Round(v * float64(f.max)))
		words[f.word] |= fv << f.shift
	}
	for i, word := range words {
		buf := [3]byte{byte(word), byte(word >> 8), byte(word >> 16)}
		if err := e.w.Write(wordEndpoint[i], buf[:], false); err != nil {
			return fmt.Errorf("v2: emit %s: %w", wordEndpoint[i], err)
		}
	}
	return nil
}
