package matrix

import (
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/event"
	"github.com/aretw0/patchbay/pkg/routing"
)

// BundleRecord ties one bundle to its display metadata inside a group:
// a weak back-reference to the IO that produced it, an optional display
// color, and the subscription forwarding the bundle's own changes to
// the group.
type BundleRecord struct {
	bundle   *domain.Bundle
	owner    routing.OwnerRef
	color    string
	hasColor bool
	conn     event.Connection
}

// Bundle returns the bundle this record wraps.
func (r *BundleRecord) Bundle() *domain.Bundle { return r.bundle }

// Color returns the record's display color ("#rrggbb") when the source
// route resolved one.
func (r *BundleRecord) Color() (string, bool) { return r.color, r.hasColor }

// Owner resolves the weak back-reference to the IO that contributed the
// bundle. It reports false when the record carries no reference or the
// owner no longer exists.
func (r *BundleRecord) Owner() (routing.IO, bool) {
	if r.owner == nil {
		return nil, false
	}
	return r.owner.Resolve()
}
