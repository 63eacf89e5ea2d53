package matrix

import (
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/event"
	"github.com/aretw0/patchbay/pkg/routing"
)

// PortGroupList holds one complete classification result: the groups
// produced by a gather pass, in display order, plus coalesced change
// notification.
//
// Signals forwarded from groups and bundles can be batched: between
// SuspendSignals and ResumeSignals the list records that changes
// happened instead of announcing each one, then announces at most one
// Changed and one BundleChanged on resume.
type PortGroupList struct {
	// Changed fires when the classified topology changes. It carries no
	// payload; consumers re-read the list.
	Changed event.Notifier

	// BundleChanged re-raises change notifications from bundles in any
	// member group.
	BundleChanged event.Signal[domain.Change]

	groups []*PortGroup
	conns  []event.Connection

	suspended     bool
	pendingChange bool
	pendingBundle domain.Change
}

// NewPortGroupList returns an empty list with live signal delivery.
func NewPortGroupList() *PortGroupList {
	return &PortGroupList{}
}

// Groups returns the member groups in classification order. Callers
// must not modify the returned slice.
func (l *PortGroupList) Groups() []*PortGroup {
	return l.groups
}

// Size returns the number of member groups.
func (l *PortGroupList) Size() int {
	return len(l.groups)
}

// Empty reports whether the list holds no groups.
func (l *PortGroupList) Empty() bool {
	return len(l.groups) == 0
}

// AddGroup appends g and forwards its Changed and BundleChanged signals
// through the list.
func (l *PortGroupList) AddGroup(g *PortGroup) {
	l.groups = append(l.groups, g)
	l.conns = append(l.conns,
		g.Changed.Connect(l.emitChanged),
		g.BundleChanged.Connect(l.emitBundleChanged),
	)
	l.emitChanged()
}

// AddGroupIfNotEmpty appends g unless it holds no bundles.
func (l *PortGroupList) AddGroupIfNotEmpty(g *PortGroup) {
	if g.Size() == 0 {
		return
	}
	l.AddGroup(g)
}

// Clear drops all groups and their signal subscriptions, then fires
// Changed.
func (l *PortGroupList) Clear() {
	for _, c := range l.conns {
		c.Disconnect()
	}
	l.conns = nil
	l.groups = nil
	l.emitChanged()
}

// Bundles returns the bundles of every group, in group order then
// insertion order. The slice is rebuilt on each call.
func (l *PortGroupList) Bundles() []*domain.Bundle {
	var out []*domain.Bundle
	for _, g := range l.groups {
		out = append(out, g.Bundles()...)
	}
	return out
}

// TotalChannels sums the channel counts of every group.
func (l *PortGroupList) TotalChannels() domain.ChanCount {
	var n domain.ChanCount
	for _, g := range l.groups {
		n = n.Plus(g.TotalChannels())
	}
	return n
}

// RemoveBundle removes b from every group that holds it and fires
// exactly one Changed, no matter how many groups matched.
func (l *PortGroupList) RemoveBundle(b *domain.Bundle) {
	resume := l.batch()
	defer resume()

	for _, g := range l.groups {
		g.Remove(b)
	}
	l.emitChanged()
}

// OwnerOf scans groups in order and returns the first live owner
// resolution for b.
func (l *PortGroupList) OwnerOf(b *domain.Bundle) (routing.IO, bool) {
	for _, g := range l.groups {
		if io, ok := g.OwnerOf(b); ok {
			return io, true
		}
	}
	return nil, false
}

// SuspendSignals begins batching: forwarded signals are recorded
// instead of delivered until ResumeSignals.
func (l *PortGroupList) SuspendSignals() {
	l.suspended = true
}

// ResumeSignals delivers at most one pending Changed and one pending
// BundleChanged, then returns to live delivery. The most recent bundle
// change payload wins.
func (l *PortGroupList) ResumeSignals() {
	if l.pendingChange {
		l.Changed.Notify()
		l.pendingChange = false
	}
	if l.pendingBundle != 0 {
		l.BundleChanged.Emit(l.pendingBundle)
		l.pendingBundle = 0
	}
	l.suspended = false
}

func (l *PortGroupList) emitChanged() {
	if l.suspended {
		l.pendingChange = true
		return
	}
	l.Changed.Notify()
}

func (l *PortGroupList) emitBundleChanged(c domain.Change) {
	if l.suspended {
		l.pendingBundle = c
		return
	}
	l.BundleChanged.Emit(c)
}

// batch suspends delivery unless a caller already did, returning the
// matching resume. Operations that must coalesce to a single
// notification wrap themselves in it.
func (l *PortGroupList) batch() func() {
	if l.suspended {
		return func() {}
	}
	l.SuspendSignals()
	return l.ResumeSignals
}
