package memory

import (
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/routing"
)

// RouteConfig describes a route to add to a session.
type RouteConfig struct {
	Name string
	Kind routing.RouteKind

	// Order is the presentation order routes sort by. Ties keep
	// insertion order.
	Order int

	// Color is the route's display color ("#rrggbb"). Empty means the
	// route has none.
	Color string

	AudioIn  int
	AudioOut int
	MidiIn   int
	MidiOut  int
}

// Route is a session route: a bus, track, or the monitor bus, with one
// IO per direction and optional processors.
type Route struct {
	name     string
	kind     routing.RouteKind
	order    int
	color    string
	hasColor bool
	input    *IO
	output   *IO
	procs    []*Processor
	session  *Session
}

var _ routing.Route = (*Route)(nil)

func (r *Route) Name() string            { return r.name }
func (r *Route) Kind() routing.RouteKind { return r.kind }
func (r *Route) PresentationOrder() int  { return r.order }
func (r *Route) Input() routing.IO       { return r.input }
func (r *Route) Output() routing.IO      { return r.output }

func (r *Route) Color() (string, bool) {
	return r.color, r.hasColor
}

func (r *Route) Processors() []routing.Processor {
	out := make([]routing.Processor, len(r.procs))
	for i, p := range r.procs {
		out[i] = p
	}
	return out
}

// SetColor assigns the route's display color.
func (r *Route) SetColor(color string) {
	r.color = color
	r.hasColor = color != ""
}

// SetPresentationOrder moves the route in the display ordering.
func (r *Route) SetPresentationOrder(order int) {
	r.order = order
}

// AddIOProcessor hangs a processor with its own IOs off the route, e.g.
// an insert. Zero-width sides get no IO at all.
func (r *Route) AddIOProcessor(name string, audioIn, audioOut int) *Processor {
	p := &Processor{name: name}
	if audioIn > 0 {
		p.input = r.session.newIO(name, domain.DirInput, audioIn, 0)
	}
	if audioOut > 0 {
		p.output = r.session.newIO(name, domain.DirOutput, audioOut, 0)
	}
	r.procs = append(r.procs, p)
	return p
}

// AddSidechain hangs a plugin with a sidechain input of the given audio
// width off the route.
func (r *Route) AddSidechain(name string, width int) *Processor {
	p := &Processor{
		name:      name,
		sidechain: r.session.newIO(name, domain.DirInput, width, 0),
	}
	r.procs = append(r.procs, p)
	return p
}

// Processor is an entry in a route's processing chain. Only processors
// owning IOs matter for gathering; plain DSP stages would simply have
// none.
type Processor struct {
	name      string
	input     *IO
	output    *IO
	sidechain *IO
}

var _ routing.Processor = (*Processor)(nil)

func (p *Processor) Name() string { return p.name }

func (p *Processor) Input() routing.IO {
	if p.input == nil {
		return nil
	}
	return p.input
}

func (p *Processor) Output() routing.IO {
	if p.output == nil {
		return nil
	}
	return p.output
}

// Sidechain returns the processor's sidechain input IO, or nil when it
// has none.
func (p *Processor) Sidechain() routing.IO {
	if p.sidechain == nil {
		return nil
	}
	return p.sidechain
}
