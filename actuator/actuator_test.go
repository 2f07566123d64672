package actuator

import (
	"errors"
	"testing"
)

func TestApplyCarriesForwardUnmentionedSlots(t *testing.T) {
	var s State
	if err := Apply(&s, Batch{{Slot: VibrateA, Scalar: 1, Kind: Vibrate}}); err != nil {
		t.Fatal(err)
	}
	if err := Apply(&s, Batch{{Slot: InflateB, Scalar: 0.5, Kind: Inflate}}); err != nil {
		t.Fatal(err)
	}
	want := State{VibrateA: 1, InflateB: 0.5}
	if s != want {
		t.Fatalf("got %v, want %v", s, want)
	}
}

func TestApplyRejectsOutOfRange(t *testing.T) {
	var s State
	err := Apply(&s, Batch{{Slot: VibrateA, Scalar: 1.5, Kind: Vibrate}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want errors.Is(err, ErrOutOfRange)", err)
	}
	if errors.Is(err, ErrUnknownSlot) {
		t.Errorf("err = %v, unexpectedly matches ErrUnknownSlot", err)
	}
	if s != (State{}) {
		t.Fatalf("state mutated on error: %v", s)
	}
}

func TestApplyRejectsUnknownSlot(t *testing.T) {
	var s State
	err := Apply(&s, Batch{{Slot: Slot(6), Scalar: 0, Kind: Vibrate}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("err = %v, want errors.Is(err, ErrUnknownSlot)", err)
	}
	if errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, unexpectedly matches ErrOutOfRange", err)
	}
}

func TestApplyRejectsWholeBatchWithoutPartialApply(t *testing.T) {
	var s State
	batch := Batch{
		{Slot: VibrateA, Scalar: 1, Kind: Vibrate},
		{Slot: VibrateB, Scalar: 2, Kind: Vibrate},
	}
	if err := Apply(&s, batch); err == nil {
		t.Fatal("expected error")
	}
	if s != (State{}) {
		t.Fatalf("state partially applied: %v", s)
	}
}

func TestStopZeroesAllSlots(t *testing.T) {
	s := State{1, 1, 1, 1, 1, 1}
	Stop(&s)
	if s != (State{}) {
		t.Fatalf("got %v, want zero state", s)
	}
}

func TestFixedLayout(t *testing.T) {
	cases := []struct {
		slot Slot
		ch   Channel
		kind Kind
	}{
		{VibrateA, ChannelA, Vibrate},
		{VibrateB, ChannelB, Vibrate},
		{OscillateA, ChannelA, Oscillate},
		{OscillateB, ChannelB, Oscillate},
		{InflateA, ChannelA, Inflate},
		{InflateB, ChannelB, Inflate},
	}
	for _, c := range cases {
		if got := c.slot.Channel(); got != c.ch {
			t.Errorf("slot %d channel = %v, want %v", c.slot, got, c.ch)
		}
		if got := c.slot.Kind(); got != c.kind {
			t.Errorf("slot %d kind = %v, want %v", c.slot, got, c.kind)
		}
	}
}
