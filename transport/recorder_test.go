package transport

import (
	"bytes"
	"errors"
	"testing"
)

func TestRecorderCapturesOrder(t *testing.T) {
	r := NewRecorder()
	defer r.Close()

	if err := r.Write("tx", []byte{1, 2, 3}, false); err != nil {
		t.Fatal(err)
	}
	if err := r.Write("generic0", []byte{4, 5, 6}, false); err != nil {
		t.Fatal(err)
	}
	writes := r.Writes()
	if len(writes) != 2 {
		t.Fatalf("got %d writes, want 2", len(writes))
	}
	if writes[0].Endpoint != "tx" || !bytes.Equal(writes[0].Payload, []byte{1, 2, 3}) {
		t.Errorf("unexpected first write: %+v", writes[0])
	}
	if writes[1].Endpoint != "generic0" || !bytes.Equal(writes[1].Payload, []byte{4, 5, 6}) {
		t.Errorf("unexpected second write: %+v", writes[1])
	}
}

func TestRecorderLast(t *testing.T) {
	r := NewRecorder()
	defer r.Close()

	r.Write("tx", []byte{0}, false)
	r.Write("tx", []byte{1}, false)
	w, ok := r.Last("tx")
	if !ok {
		t.Fatal("expected a recorded write")
	}
	if !bytes.Equal(w.Payload, []byte{1}) {
		t.Fatalf("got %v, want [1]", w.Payload)
	}
	if _, ok := r.Last("generic1"); ok {
		t.Fatal("expected no write for generic1")
	}
}

func TestRecorderSurfacesFailure(t *testing.T) {
	r := NewRecorder()
	defer r.Close()
	r.Fail = errors.New("disconnected")

	err := r.Write("tx", []byte{0}, false)
	if err == nil {
		t.Fatal("expected error")
	}
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %T", err)
	}
}

func TestRecorderReset(t *testing.T) {
	r := NewRecorder()
	defer r.Close()
	r.Write("tx", []byte{1}, false)
	r.Reset()
	if len(r.Writes()) != 0 {
		t.Fatal("expected no writes after reset")
	}
}
