package routing

// RouteKind is a closed discriminator for the route taxonomy. The
// pipeline branches on it directly instead of inferring kinds from
// concrete types.
type RouteKind int

const (
	KindBus RouteKind = iota
	KindTrack
	KindMonitor
)

func (k RouteKind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindMonitor:
		return "monitor"
	default:
		return "bus"
	}
}

// Route is one signal-processing strip: a track or bus owning IO on both
// sides and a processor chain.
type Route interface {
	Name() string
	Kind() RouteKind

	// PresentationOrder is the user-controlled display ranking,
	// ascending. Gather sorts by it so groups match the mixer layout.
	PresentationOrder() int

	Input() IO
	Output() IO

	// Processors returns the route's processor chain in order.
	Processors() []Processor

	// Color returns the strip's display color as "#rrggbb" when the
	// presentation layer has one for this route.
	Color() (string, bool)
}

// Processor is one element of a route's chain. Only processors that own
// IO (sends, inserts, deliveries) return non-nil from Input or Output;
// plugin inserts with a side input return it from Sidechain.
type Processor interface {
	Input() IO
	Output() IO
	Sidechain() IO
}
