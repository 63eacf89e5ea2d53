package domain

import "github.com/aretw0/patchbay/pkg/event"

// BundleScope separates user-authored session bundles from ordinary ones.
// User bundles are added to the Hardware group ahead of everything else so
// they win duplicate suppression.
type BundleScope int

const (
	ScopeNormal BundleScope = iota
	ScopeUser
)

// Channel is one named slot within a bundle, referencing one or more
// underlying ports.
type Channel struct {
	Name  string
	Type  DataType
	Ports []string
}

// Bundle is a named, ordered set of channels mapped to concrete ports.
// Channel order is meaningful and preserved.
//
// A bundle is shared: the routing source owns the underlying ports, while
// any number of display records reference the bundle itself. Mutations
// are announced on Changed so holders can react without re-gathering.
//
// Bundles are not safe for concurrent use.
type Bundle struct {
	name     string
	dir      Direction
	scope    BundleScope
	channels []Channel

	// Changed announces mutations, carrying what kind of change happened.
	Changed event.Signal[Change]
}

// NewBundle creates an empty bundle for one transfer direction.
func NewBundle(name string, dir Direction) *Bundle {
	return &Bundle{name: name, dir: dir}
}

// NewUserBundle creates an empty user-authored bundle.
func NewUserBundle(name string, dir Direction) *Bundle {
	return &Bundle{name: name, dir: dir, scope: ScopeUser}
}

// Name returns the display name.
func (b *Bundle) Name() string {
	return b.name
}

// SetName renames the bundle and announces the change.
func (b *Bundle) SetName(name string) {
	if b.name == name {
		return
	}
	b.name = name
	b.Changed.Emit(NameChanged)
}

// Direction returns which transfer side the bundle belongs to.
func (b *Bundle) Direction() Direction {
	return b.dir
}

// Scope reports whether the bundle is user-authored.
func (b *Bundle) Scope() BundleScope {
	return b.scope
}

// AddChannel appends a channel and announces a configuration change.
// Ports may be left empty and bound later with SetPort.
func (b *Bundle) AddChannel(name string, t DataType, ports ...string) {
	ch := Channel{Name: name, Type: t}
	ch.Ports = append(ch.Ports, ports...)
	b.channels = append(b.channels, ch)
	b.Changed.Emit(ConfigurationChanged)
}

// SetPort binds channel i to exactly one port, replacing any previous
// binding. Panics if i is out of range; that is a caller bug.
func (b *Bundle) SetPort(i int, port string) {
	if i < 0 || i >= len(b.channels) {
		panic("patchbay: bundle channel index out of range")
	}
	b.channels[i].Ports = []string{port}
	b.Changed.Emit(PortsChanged)
}

// Len returns the number of channels.
func (b *Bundle) Len() int {
	return len(b.channels)
}

// Channels returns the channel list. Callers must not modify it.
func (b *Bundle) Channels() []Channel {
	return b.channels
}

// ChannelName returns the display name of channel i.
func (b *Bundle) ChannelName(i int) string {
	return b.channels[i].Name
}

// ChannelPorts returns the ports of channel i. Callers must not modify
// the returned slice.
func (b *Bundle) ChannelPorts(i int) []string {
	return b.channels[i].Ports
}

// ChannelCount tallies channels per data type.
func (b *Bundle) ChannelCount() ChanCount {
	var n ChanCount
	for _, ch := range b.channels {
		n.Add(ch.Type, 1)
	}
	return n
}

// HasSamePorts reports whether b and other offer the same ports. The
// comparison is structural: the ports of all channels, taken together,
// must be equal regardless of channel layout or ordering.
func (b *Bundle) HasSamePorts(other *Bundle) bool {
	mine := b.portTally()
	theirs := other.portTally()
	if len(mine) != len(theirs) {
		return false
	}
	for p, n := range mine {
		if theirs[p] != n {
			return false
		}
	}
	return true
}

// OffersPortAlone reports whether some channel consists of exactly the
// given port and nothing else.
func (b *Bundle) OffersPortAlone(port string) bool {
	for _, ch := range b.channels {
		if len(ch.Ports) == 1 && ch.Ports[0] == port {
			return true
		}
	}
	return false
}

func (b *Bundle) portTally() map[string]int {
	tally := make(map[string]int)
	for _, ch := range b.channels {
		for _, p := range ch.Ports {
			tally[p]++
		}
	}
	return tally
}
