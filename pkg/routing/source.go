package routing

import "github.com/aretw0/patchbay/pkg/domain"

// Source is the session-like object a gather pass classifies. All
// queries are cheap in-memory lookups; nothing here blocks.
type Source interface {
	// ProgramName returns the application's own name. Gather uses it to
	// recognize program-owned leftover ports and to name their bundle.
	ProgramName() string

	// Routes returns every route, in no particular order.
	Routes() []Route

	// Bundles returns the session-level bundles, user-authored and not.
	Bundles() []*domain.Bundle

	// IOPlugs returns the session's I/O plug modules.
	IOPlugs() []IOPlug

	// Surfaces returns the registered control-surface instances.
	Surfaces() []Surface

	// TransportMasters returns the configured sync sources.
	TransportMasters() []TransportMaster

	// Engine returns the raw port registry.
	Engine() PortEngine

	// Special returns the program's well-known ports and IOs.
	Special() SpecialPorts
}

// SpecialPorts names the program's own well-known ports and IOs used to
// build synthetic bundles. Nil IOs and empty names mean "not present"
// and are skipped.
//
// The port name fields are program-local; gather qualifies them through
// the engine before use.
type SpecialPorts struct {
	// Click and Auditioner are program-owned output IOs whose bundles
	// land in the program group on the output side.
	Click      IO
	Auditioner IO

	// LTCOut feeds the synthetic timecode-out bundle.
	LTCOut string

	// MIDI machine-control and clock ports for the synthetic sync
	// bundles.
	MTCOut       string
	MIDIClockOut string
	MMCIn        string
	MMCOut       string

	// VKeyboardOut is the virtual keyboard's MIDI output.
	VKeyboardOut string
}
