package routing

import "github.com/aretw0/patchbay/pkg/domain"

// IO is the port collection of one side of a route, processor or plug.
// Its bundle is owned by the routing source and shared with any display
// records that reference it.
type IO interface {
	// Bundle returns the bundle describing this IO's ports.
	Bundle() *domain.Bundle

	// Ref returns a weak back-reference handle for this IO. Records
	// store the handle, never the IO itself.
	Ref() OwnerRef
}

// OwnerRef is a relation plus a lookup, never ownership: resolving it
// after the owner has been destroyed yields ok == false, and holding it
// keeps nothing alive.
type OwnerRef interface {
	Resolve() (IO, bool)
}
