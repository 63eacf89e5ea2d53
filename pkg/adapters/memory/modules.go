package memory

import (
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/routing"
)

// IOPlugConfig describes a standalone IO plugin to add to a session.
type IOPlugConfig struct {
	Name string

	// Pre places the plug before the session's processing graph.
	Pre bool

	AudioIn  int
	AudioOut int
	MidiIn   int
	MidiOut  int
}

// IOPlug is a standalone plugin with its own IOs, living outside any
// route.
type IOPlug struct {
	name   string
	pre    bool
	input  *IO
	output *IO
}

var _ routing.IOPlug = (*IOPlug)(nil)

func (p *IOPlug) Name() string { return p.name }
func (p *IOPlug) Pre() bool    { return p.pre }

func (p *IOPlug) Input() routing.IO {
	if p.input == nil {
		return nil
	}
	return p.input
}

func (p *IOPlug) Output() routing.IO {
	if p.output == nil {
		return nil
	}
	return p.output
}

// Surface is a control surface advertising its own bundles, e.g. a
// fader bank speaking MIDI.
type Surface struct {
	name    string
	bundles []*domain.Bundle
}

var _ routing.Surface = (*Surface)(nil)

func (s *Surface) Name() string { return s.name }

func (s *Surface) Bundles() []*domain.Bundle { return s.bundles }

// AddBundle appends a bundle to the surface's advertisement.
func (s *Surface) AddBundle(b *domain.Bundle) {
	s.bundles = append(s.bundles, b)
}

// TransportMaster is an external time source the session can chase.
type TransportMaster struct {
	name    string
	port    routing.Port
	hasPort bool
}

var _ routing.TransportMaster = (*TransportMaster)(nil)

func (m *TransportMaster) Name() string { return m.name }

// Port returns the master's input port, when it has one.
func (m *TransportMaster) Port() (routing.Port, bool) {
	return m.port, m.hasPort
}
