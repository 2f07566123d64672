// package device is the adapter glue (spec §2's "Adapter glue" row):
// given a device's configured protocol name, it builds the matching
// V2 or V3 encoder and exposes both behind one capability. It carries
// no protocol logic of its own; the bit-packing and framing live in
// the v2 and v3 packages.
package device

import (
	"fmt"
	"log"

	"dungeonctl.dev/actuator"
	"dungeonctl.dev/transport"
	"dungeonctl.dev/v2"
	"dungeonctl.dev/v3"
)

// Protocol names, matched against the framework's configured device
// name (spec §6). The advertised BLE name each protocol scans for is
// informational here; pairing and advertisement parsing are the
// framework's job, not this adapter's.
const (
	ProtocolV2 = "Dungeon Lab V2"
	ProtocolV3 = "Dungeon Lab V3"

	AdvertisedNameV2 = "D-LAB ESTIM01"
	AdvertisedNameV3 = "47L121000"
)

// Encoder is the upward capability of spec §6: handle a scalar batch
// or a stop, uniformly across protocol generations. Both *v2.Encoder
// and *v3.Encoder satisfy it already; New picks between them by
// configuration rather than by type switch at every call site.
type Encoder interface {
	HandleScalar(batch actuator.Batch) error
	HandleStop() error
}

// Feature describes one of the six fixed actuator slots as the
// framework's resolved feature list would present it: a step range
// bounding the slot's raw wire field. Nothing in this package reads it:
// New neither logs nor validates against it, and the encoders carry
// their own field widths.
type Feature struct {
	Slot    actuator.Slot
	StepMax int
}

// V2Features is the feature list the V2 protocol declares: six slots,
// each with step range [0, 2047] (spec §6). This is the declared range
// only; the v2 encoder's packed oscillate and inflate fields have other
// maxima.
var V2Features = [actuator.NumSlots]Feature{
	actuator.VibrateA:   {actuator.VibrateA, 2047},
	actuator.VibrateB:   {actuator.VibrateB, 2047},
	actuator.OscillateA: {actuator.OscillateA, 2047},
	actuator.OscillateB: {actuator.OscillateB, 2047},
	actuator.InflateA:   {actuator.InflateA, 2047},
	actuator.InflateB:   {actuator.InflateB, 2047},
}

// V3Features is the feature list the V3 protocol declares; step
// ranges vary by subfield, per the protocol's wire layout.
var V3Features = [actuator.NumSlots]Feature{
	actuator.VibrateA:   {actuator.VibrateA, 200},
	actuator.VibrateB:   {actuator.VibrateB, 200},
	actuator.OscillateA: {actuator.OscillateA, 240},
	actuator.OscillateB: {actuator.OscillateB, 240},
	actuator.InflateA:   {actuator.InflateA, 100},
	actuator.InflateB:   {actuator.InflateB, 100},
}

// EndpointConfig maps one named transport endpoint to the GATT
// characteristic UUID the framework's device configuration resolves it
// to (spec §6: "Each protocol entry declares its transport (BLE)
// endpoints ... mapped to GATT characteristic UUIDs"). Actual discovery,
// pairing, and characteristic lookup against a live adapter stay the
// framework's job (spec §1); this is only the static name-to-UUID table
// a resolved device config would hand to transport.NewBLE.
type EndpointConfig struct {
	Name string
	UUID string
}

// V2Endpoints is the V2 family's three-endpoint GATT table (spec §4.2,
// §6): tx carries the vibrate pair, generic0/generic1 the oscillate and
// inflate pairs for channel A and B respectively.
var V2Endpoints = []EndpointConfig{
	{Name: v2.EndpointTX, UUID: "0000fff1-0000-1000-8000-00805f9b34fb"},
	{Name: v2.EndpointGeneric0, UUID: "0000fff2-0000-1000-8000-00805f9b34fb"},
	{Name: v2.EndpointGeneric1, UUID: "0000fff3-0000-1000-8000-00805f9b34fb"},
}

// V3Endpoints is the V3 family's single-endpoint GATT table (spec §4.3,
// §6): one characteristic carries the full 20-byte frame.
var V3Endpoints = []EndpointConfig{
	{Name: v3.Endpoint, UUID: "0000fff1-0000-1000-8000-00805f9b34fb"},
}

// Config is the resolved device configuration the adapter is constructed
// from: which protocol generation, its feature/step-range table, and its
// endpoint-to-UUID mapping. Config-file parsing that produces one of
// these is explicitly out of scope (spec §1); the framework is assumed
// to hand the adapter an already-resolved Config.
type Config struct {
	Protocol  string
	Features  [actuator.NumSlots]Feature
	Endpoints []EndpointConfig
}

// DefaultConfig returns the built-in Config for protocolName
// ("Dungeon Lab V2" or "Dungeon Lab V3"), bundling that protocol's fixed
// feature table and GATT endpoint mapping from spec §6.
func DefaultConfig(protocolName string) (Config, error) {
	switch protocolName {
	case ProtocolV2:
		return Config{Protocol: ProtocolV2, Features: V2Features, Endpoints: V2Endpoints}, nil
	case ProtocolV3:
		return Config{Protocol: ProtocolV3, Features: V3Features, Endpoints: V3Endpoints}, nil
	default:
		return Config{}, fmt.Errorf("device: unrecognized protocol %q", protocolName)
	}
}

// New builds the Encoder matching cfg.Protocol, writing through w. An
// unrecognized protocol is a configuration error: the framework
// guarantees the Config it hands the adapter matches one of the two
// configured protocols (spec §6).
func New(cfg Config, w transport.Writer) (Encoder, error) {
	switch cfg.Protocol {
	case ProtocolV2:
		log.Printf("device: configuring %s (advertised as %q, %d endpoints)", ProtocolV2, AdvertisedNameV2, len(cfg.Endpoints))
		return v2.New(w), nil
	case ProtocolV3:
		log.Printf("device: configuring %s (advertised as %q, %d endpoints)", ProtocolV3, AdvertisedNameV3, len(cfg.Endpoints))
		return v3.New(w), nil
	default:
		return nil, fmt.Errorf("device: unrecognized protocol %q", cfg.Protocol)
	}
}
