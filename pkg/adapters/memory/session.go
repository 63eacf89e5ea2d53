package memory

import (
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/routing"
)

// Session is a complete in-memory routing graph: the program's routes,
// session bundles, peripherals, and port registry.
type Session struct {
	program string
	engine  *Engine

	routes   []*Route
	bundles  []*domain.Bundle
	plugs    []*IOPlug
	surfaces []*Surface
	masters  []*TransportMaster
	special  routing.SpecialPorts

	live map[*IO]struct{}
}

var _ routing.Source = (*Session)(nil)

// NewSession returns an empty session for the given program name.
func NewSession(program string) *Session {
	return &Session{
		program: program,
		engine:  NewEngine(program),
		live:    make(map[*IO]struct{}),
	}
}

// ProgramName returns the program name ports and groups are labelled
// with.
func (s *Session) ProgramName() string { return s.program }

// Engine exposes the session's port registry as a routing engine.
func (s *Session) Engine() routing.PortEngine { return s.engine }

// Ports exposes the concrete registry for direct manipulation.
func (s *Session) Ports() *Engine { return s.engine }

// Routes lists the session's routes in insertion order.
func (s *Session) Routes() []routing.Route {
	out := make([]routing.Route, len(s.routes))
	for i, r := range s.routes {
		out[i] = r
	}
	return out
}

// Bundles lists the session's own bundles in insertion order.
func (s *Session) Bundles() []*domain.Bundle { return s.bundles }

// IOPlugs lists the session's standalone plugins.
func (s *Session) IOPlugs() []routing.IOPlug {
	out := make([]routing.IOPlug, len(s.plugs))
	for i, p := range s.plugs {
		out[i] = p
	}
	return out
}

// Surfaces lists the registered control surfaces.
func (s *Session) Surfaces() []routing.Surface {
	out := make([]routing.Surface, len(s.surfaces))
	for i, sf := range s.surfaces {
		out[i] = sf
	}
	return out
}

// TransportMasters lists the registered transport masters.
func (s *Session) TransportMasters() []routing.TransportMaster {
	out := make([]routing.TransportMaster, len(s.masters))
	for i, m := range s.masters {
		out[i] = m
	}
	return out
}

// Special returns the session's special port wiring.
func (s *Session) Special() routing.SpecialPorts { return s.special }

// SetSpecialPorts installs the special port wiring: click and
// auditioner IOs, timecode and MMC port names, the virtual keyboard.
func (s *Session) SetSpecialPorts(sp routing.SpecialPorts) {
	s.special = sp
}

// AddRoute adds a route with IOs sized per the config and returns it.
func (s *Session) AddRoute(cfg RouteConfig) *Route {
	r := &Route{
		name:    cfg.Name,
		kind:    cfg.Kind,
		order:   cfg.Order,
		session: s,
	}
	r.SetColor(cfg.Color)
	r.input = s.newIO(cfg.Name, domain.DirInput, cfg.AudioIn, cfg.MidiIn)
	r.output = s.newIO(cfg.Name, domain.DirOutput, cfg.AudioOut, cfg.MidiOut)
	s.routes = append(s.routes, r)
	return r
}

// RemoveRoute destroys a route: its IOs leave the liveness registry and
// their ports leave the engine. Bundles already captured by groups keep
// existing, but their owner references resolve to nothing afterwards.
func (s *Session) RemoveRoute(r *Route) {
	for i, have := range s.routes {
		if have != r {
			continue
		}
		s.routes = append(s.routes[:i], s.routes[i+1:]...)
		s.destroyIO(r.input)
		s.destroyIO(r.output)
		for _, p := range r.procs {
			s.destroyIO(p.input)
			s.destroyIO(p.output)
			s.destroyIO(p.sidechain)
		}
		return
	}
}

// AddSessionBundle registers a session-owned bundle, e.g. a user-named
// hardware pair.
func (s *Session) AddSessionBundle(b *domain.Bundle) {
	s.bundles = append(s.bundles, b)
}

// AddIOPlug adds a standalone plugin with IOs sized per the config.
func (s *Session) AddIOPlug(cfg IOPlugConfig) *IOPlug {
	p := &IOPlug{name: cfg.Name, pre: cfg.Pre}
	if cfg.AudioIn > 0 || cfg.MidiIn > 0 {
		p.input = s.newIO(cfg.Name, domain.DirInput, cfg.AudioIn, cfg.MidiIn)
	}
	if cfg.AudioOut > 0 || cfg.MidiOut > 0 {
		p.output = s.newIO(cfg.Name, domain.DirOutput, cfg.AudioOut, cfg.MidiOut)
	}
	s.plugs = append(s.plugs, p)
	return p
}

// AddSurface registers a control surface.
func (s *Session) AddSurface(name string, bundles ...*domain.Bundle) *Surface {
	sf := &Surface{name: name, bundles: bundles}
	s.surfaces = append(s.surfaces, sf)
	return sf
}

// AddTransportMaster registers a transport master whose input port is
// registered with the engine under the program prefix.
func (s *Session) AddTransportMaster(name string, t domain.DataType, localPort string) *TransportMaster {
	qualified := s.engine.RegisterPort(routing.Port{
		Name:  localPort,
		Type:  t,
		Flags: domain.PortIsInput,
	})
	m := &TransportMaster{
		name:    name,
		port:    routing.Port{Name: qualified, Type: t, Flags: domain.PortIsInput},
		hasPort: true,
	}
	s.masters = append(s.masters, m)
	return m
}

// NewIO builds a free-standing IO owned by the session, for special
// units like the click or the auditioner.
func (s *Session) NewIO(name string, dir domain.Direction, audio, midi int) *IO {
	return s.newIO(name, dir, audio, midi)
}

func (s *Session) alive(io *IO) bool {
	_, ok := s.live[io]
	return ok
}
