//go:build !tinygo

package transport

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/tarm/serial"
)

// Serial is a Writer over the V3 family's proprietary framed link, which
// in this fork's reference hardware is a USB-serial adapter. It writes
// every payload to the single "tx" endpoint regardless of the name
// passed in, since the V3 protocol has exactly one transport endpoint
// (spec §4.3).
type Serial struct {
	port io.WriteCloser
}

// OpenSerial opens the V3 framed link. dev selects an explicit device
// path; if empty, the usual per-OS default device names are tried in
// order, the same fallback OpenMjolnir uses for the engraver's serial
// link.
func OpenSerial(dev string) (*Serial, error) {
	const baudRate = 115200

	var devices []string
	if dev != "" {
		devices = append(devices, dev)
	} else {
		switch runtime.GOOS {
		case "windows":
			devices = append(devices, "COM3")
		case "linux":
			devices = append(devices, "/dev/ttyUSB0", "/dev/ttyUSB1", "/dev/ttyACM0")
		}
	}
	if len(devices) == 0 {
		return nil, errors.New("transport: no serial device specified")
	}
	var firstErr error
	for _, dev := range devices {
		c := &serial.Config{Name: dev, Baud: baudRate}
		s, err := serial.OpenPort(c)
		if err == nil {
			return &Serial{port: s}, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// Write implements transport.Writer. endpoint is accepted for interface
// conformance but ignored: V3 has a single "tx" endpoint.
func (s *Serial) Write(endpoint string, payload []byte, withResponse bool) error {
	if withResponse {
		return &TransportError{Endpoint: endpoint, Err: errors.New("serial transport does not support write-with-response")}
	}
	if _, err := s.port.Write(payload); err != nil {
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("write: %w", err)}
	}
	return nil
}

// Close releases the serial port.
func (s *Serial) Close() error {
	return s.port.Close()
}
