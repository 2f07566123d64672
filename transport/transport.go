// package transport implements the narrow downward capability the V2
// and V3 encoders speak through: a named-endpoint byte write. Endpoint
// resolution (GATT characteristic lookup, serial port selection) and
// connection management are concrete adapters over this interface; the
// encoders only ever see Writer.
package transport

import "fmt"

// Writer is the downward interface of spec §4.4: write raw bytes to a
// named endpoint, optionally waiting for the peripheral's write
// response. Both protocols here always pass withResponse=false.
type Writer interface {
	Write(endpoint string, payload []byte, withResponse bool) error
}

// TransportError wraps a failed endpoint write, mirroring the original
// spec's §7 TransportError kind. It is never retried internally; callers
// see it verbatim and decide whether to resend.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: write %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolStateError mirrors the original spec's §7 reserved error kind.
// Neither the V2 nor the V3 encoder is stateful on the device side beyond
// the carry-forward vector, so nothing in this repo ever constructs or
// returns one; it is declared only so the error taxonomy in §7 is
// complete and callers can errors.As against it without a compile error
// if a future protocol generation needs it.
type ProtocolStateError struct {
	Reason string
}

func (e *ProtocolStateError) Error() string {
	return fmt.Sprintf("transport: protocol state error: %s", e.Reason)
}
