// command estimctl is the internal tool for exercising the V2/V3
// protocol adapters without a real device attached.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"dungeonctl.dev/actuator"
	"dungeonctl.dev/device"
	"dungeonctl.dev/transport"
)

var (
	protocol  = flag.String("protocol", device.ProtocolV2, "protocol name: \""+device.ProtocolV2+"\" or \""+device.ProtocolV3+"\"")
	batchArg  = flag.String("batch", "", "comma-separated index=scalar pairs, e.g. 0=1.0,4=0.5")
	stop      = flag.Bool("stop", false, "send a stop command instead of a batch")
	serialDev = flag.String("device", "", "serial device for the V3 framed link (ignored for V2)")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	w, closeTransport, err := openTransport(*protocol, *serialDev)
	if err != nil {
		return err
	}
	defer closeTransport()

	cfg, err := device.DefaultConfig(*protocol)
	if err != nil {
		return err
	}
	enc, err := device.New(cfg, w)
	if err != nil {
		return err
	}

	if *stop {
		if err := enc.HandleStop(); err != nil {
			return err
		}
	} else {
		batch, err := parseBatch(*batchArg)
		if err != nil {
			return fmt.Errorf("invalid -batch: %w", err)
		}
		if err := enc.HandleScalar(batch); err != nil {
			return err
		}
	}
	if rec, ok := w.(*transport.Recorder); ok {
		for _, wr := range rec.Writes() {
			fmt.Printf("%-10s % X (with_response=%v)\n", wr.Endpoint, wr.Payload, wr.WithResponse)
		}
	}
	return nil
}

// openTransport picks a dry-run transport.Recorder unless a real
// serial device was requested for the V3 framed link. Real BLE
// endpoint resolution is out of scope here (spec §1): wiring a live
// V2 device requires the framework's GATT discovery to supply
// transport.Characteristic values to transport.NewBLE.
func openTransport(protocolName, dev string) (transport.Writer, func(), error) {
	if protocolName == device.ProtocolV3 && dev != "" {
		s, err := transport.OpenSerial(dev)
		if err != nil {
			return nil, nil, fmt.Errorf("open serial: %w", err)
		}
		return s, func() { s.Close() }, nil
	}
	rec := transport.NewRecorder()
	return rec, func() { rec.Close() }, nil
}

func parseBatch(s string) (actuator.Batch, error) {
	if s == "" {
		return nil, errors.New("empty batch")
	}
	var batch actuator.Batch
	for _, pair := range strings.Split(s, ",") {
		idxStr, scalarStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return nil, fmt.Errorf("bad index %q: %w", idxStr, err)
		}
		scalar, err := strconv.ParseFloat(scalarStr, 64)
		if err != nil {
			return nil, fmt.Errorf("bad scalar %q: %w", scalarStr, err)
		}
		if idx < 0 || idx >= actuator.NumSlots {
			return nil, fmt.Errorf("index %d out of range [0,%d]", idx, actuator.NumSlots-1)
		}
		slot := actuator.Slot(idx)
		batch = append(batch, actuator.Command{Slot: slot, Scalar: scalar, Kind: slot.Kind()})
	}
	return batch, nil
}
