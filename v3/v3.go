// package v3 implements the fixed-length frame protocol adapter for
// the "Dungeon Lab V3" device family: a single 20-byte little-endian
// frame written to the tx endpoint.
package v3

import (
	"fmt"
	"math"

	"dungeonctl.dev/actuator"
	"dungeonctl.dev/transport"
)

// Endpoint is the single transport endpoint this protocol uses.
const Endpoint = "tx"

const (
	frameSize = 20

	cmdTag  = 0xB0 // set-strength-and-waveform
	chanAll = 0x0F // both channels, all subfields
)

// fieldSpec places one slot's scaled byte value into the frame: a
// single byte for the two strength slots, or a run of four identical
// bytes for the waveform/intensity slots (the protocol models
// per-pulse variation across the four bytes, but this fork drives
// them uniformly, per the protocol spec's open question).
type fieldSpec struct {
	offset int
	count  int
	max    int
}

var fieldTable = [actuator.NumSlots]fieldSpec{
	actuator.VibrateA:   {offset: 2, count: 1, max: 200},
	actuator.VibrateB:   {offset: 3, count: 1, max: 200},
	actuator.OscillateA: {offset: 4, count: 4, max: 240},
	actuator.OscillateB: {offset: 12, count: 4, max: 240},
	actuator.InflateA:   {offset: 8, count: 4, max: 100},
	actuator.InflateB:   {offset: 16, count: 4, max: 100},
}

// Encoder translates normalized actuator state into the V3 wire frame
// and writes it to a transport.Writer. It is not safe for concurrent
// use; callers must serialize commands per device (spec §5).
type Encoder struct {
	w         transport.Writer
	last      actuator.State
	lastFrame [frameSize]byte
	sent      bool
}

// New returns an Encoder that writes through w.
func New(w transport.Writer) *Encoder {
	return &Encoder{w: w}
}

// HandleScalar applies batch to the carried-forward state and writes
// the resulting frame. If the computed frame is byte-identical to the
// last one actually written, the write is suppressed (the protocol
// spec's state machine permits, but does not require, this); the very
// first frame from a fresh Encoder is always written.
func (e *Encoder) HandleScalar(batch actuator.Batch) error {
	next := e.last
	if err := actuator.Apply(&next, batch); err != nil {
		return err
	}
	e.last = next
	frame := e.encode()
	if e.sent && frame == e.lastFrame {
		return nil
	}
	return e.write(frame)
}

// HandleStop drives every actuator to zero and unconditionally writes
// the resulting frame, even if it is identical to the last one sent:
// the protocol spec requires the frame following a Stop to never be
// suppressed, since a disconnect or firmware fault could otherwise
// leave the device believed-stopped but never actually re-armed to
// zero.
func (e *Encoder) HandleStop() error {
	actuator.Stop(&e.last)
	frame := e.encode()
	return e.write(frame)
}

func (e *Encoder) encode() [frameSize]byte {
	var frame [frameSize]byte
	frame[0] = cmdTag
	frame[1] = chanAll
	for slot, v := range e.last {
		f := fieldTable[slot]
		bv := byte(math.Round(v * float64(f.max)))
		for i := 0; i < f.count; i++ {
			frame[f.offset+i] = bv
		}
	}
	return frame
}

func (e *Encoder) write(frame [frameSize]byte) error {
	if err := e.w.Write(Endpoint, frame[:], false); err != nil {
		return fmt.Errorf("v3: emit %s: %w", Endpoint, err)
	}
	e.lastFrame = frame
	e.sent = true
	return nil
}
