package matrix

import (
	"fmt"

	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/event"
	"github.com/aretw0/patchbay/pkg/routing"
)

// PortGroup is a named bucket of bundles belonging to one classification
// category. Membership is ordered and, by default, structurally
// deduplicated: the first bundle with a given port layout wins.
type PortGroup struct {
	// Name is the group's display name, e.g. "Tracks" or "Hardware".
	Name string

	// Changed fires whenever membership changes.
	Changed event.Notifier

	// BundleChanged re-raises change notifications from member bundles.
	BundleChanged event.Signal[domain.Change]

	records []*BundleRecord
}

// NewPortGroup returns an empty group with the given display name.
func NewPortGroup(name string) *PortGroup {
	return &PortGroup{Name: name}
}

type addConfig struct {
	owner     routing.OwnerRef
	color     string
	hasColor  bool
	allowDups bool
}

// AddOption configures a single Add call.
type AddOption func(*addConfig)

// WithOwner tags the new record with a weak back-reference to the IO
// the bundle came from.
func WithOwner(ref routing.OwnerRef) AddOption {
	return func(c *addConfig) { c.owner = ref }
}

// WithColor tags the new record with a display color ("#rrggbb").
func WithColor(color string) AddOption {
	return func(c *addConfig) {
		c.color = color
		c.hasColor = true
	}
}

// AllowDuplicates disables structural duplicate suppression for this
// Add call.
func AllowDuplicates() AddOption {
	return func(c *addConfig) { c.allowDups = true }
}

// Add appends b to the group and subscribes to its changes. Passing a
// nil bundle is a caller bug and panics. Unless AllowDuplicates is
// given, a bundle whose ports structurally match an existing member's
// makes the call a no-op.
func (g *PortGroup) Add(b *domain.Bundle, opts ...AddOption) {
	if b == nil {
		panic("patchbay: nil bundle added to port group")
	}

	var cfg addConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.allowDups {
		for _, r := range g.records {
			if r.bundle.HasSamePorts(b) {
				return
			}
		}
	}

	r := &BundleRecord{
		bundle:   b,
		owner:    cfg.owner,
		color:    cfg.color,
		hasColor: cfg.hasColor,
	}
	r.conn = b.Changed.Connect(func(c domain.Change) {
		g.BundleChanged.Emit(c)
	})
	g.records = append(g.records, r)
	g.Changed.Notify()
}

// Remove drops the first record referencing exactly b. Identity is
// pointer identity, not structural equality. Removing a bundle that is
// not a member is a no-op.
func (g *PortGroup) Remove(b *domain.Bundle) {
	if b == nil {
		panic("patchbay: nil bundle removed from port group")
	}
	for i, r := range g.records {
		if r.bundle == b {
			r.conn.Disconnect()
			g.records = append(g.records[:i], g.records[i+1:]...)
			g.Changed.Notify()
			return
		}
	}
}

// Clear drops every record and its change subscription. Changed fires
// even when the group was already empty.
func (g *PortGroup) Clear() {
	for _, r := range g.records {
		r.conn.Disconnect()
	}
	g.records = nil
	g.Changed.Notify()
}

// Bundles returns the member bundles in insertion order. Callers must
// not modify the returned slice.
func (g *PortGroup) Bundles() []*domain.Bundle {
	out := make([]*domain.Bundle, len(g.records))
	for i, r := range g.records {
		out[i] = r.bundle
	}
	return out
}

// Records returns the member records in insertion order. Callers must
// not modify the returned slice.
func (g *PortGroup) Records() []*BundleRecord {
	return g.records
}

// Size returns the number of member bundles.
func (g *PortGroup) Size() int {
	return len(g.records)
}

// HasPort reports whether any member bundle offers the named port as a
// standalone channel.
func (g *PortGroup) HasPort(port string) bool {
	for _, r := range g.records {
		if r.bundle.OffersPortAlone(port) {
			return true
		}
	}
	return false
}

// OnlyBundle returns the single member bundle. Calling it on a group
// whose membership count is not exactly one is a caller bug and panics.
func (g *PortGroup) OnlyBundle() *domain.Bundle {
	if len(g.records) != 1 {
		panic(fmt.Sprintf("patchbay: OnlyBundle on group %q holding %d bundles", g.Name, len(g.records)))
	}
	return g.records[0].bundle
}

// TotalChannels sums the channel counts of all member bundles.
func (g *PortGroup) TotalChannels() domain.ChanCount {
	var n domain.ChanCount
	for _, r := range g.records {
		n = n.Plus(r.bundle.ChannelCount())
	}
	return n
}

// OwnerOf resolves the owner reference of the record holding b. It
// reports false when b is not a member, when the record carries no
// reference, or when the owner has been destroyed.
func (g *PortGroup) OwnerOf(b *domain.Bundle) (routing.IO, bool) {
	for _, r := range g.records {
		if r.bundle == b {
			return r.Owner()
		}
	}
	return nil, false
}

// RemoveDuplicates runs the subsumption pass: a member is dropped when
// another member with strictly more channels carries every one of its
// channel port sets. Comparison is quadratic over members and channels,
// which is fine at the scale groups reach. No Changed fires; the gather
// pass announces its result as a whole.
func (g *PortGroup) RemoveDuplicates() {
	i := 0
	for i < len(g.records) {
		if g.subsumed(g.records[i]) {
			g.records[i].conn.Disconnect()
			g.records = append(g.records[:i], g.records[i+1:]...)
			continue
		}
		i++
	}
}

func (g *PortGroup) subsumed(r *BundleRecord) bool {
	for _, other := range g.records {
		if other == r {
			continue
		}
		if !other.bundle.ChannelCount().GreaterThan(r.bundle.ChannelCount()) {
			continue
		}
		if coveredBy(r.bundle, other.bundle) {
			return true
		}
	}
	return false
}

// coveredBy reports whether every channel of a has a channel of b with
// the same port set, compared without regard to channel order.
func coveredBy(a, b *domain.Bundle) bool {
	for i := 0; i < a.Len(); i++ {
		if !hasChannelWithPorts(b, a.ChannelPorts(i)) {
			return false
		}
	}
	return true
}

func hasChannelWithPorts(b *domain.Bundle, ports []string) bool {
	for j := 0; j < b.Len(); j++ {
		if samePortSet(b.ChannelPorts(j), ports) {
			return true
		}
	}
	return false
}

func samePortSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	tally := make(map[string]int, len(a))
	for _, p := range a {
		tally[p]++
	}
	for _, p := range b {
		tally[p]--
		if tally[p] < 0 {
			return false
		}
	}
	return true
}
