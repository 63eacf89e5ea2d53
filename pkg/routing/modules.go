package routing

import "github.com/aretw0/patchbay/pkg/domain"

// IOPlug is a session-level I/O module running outside any route,
// either before (pre) or after (post) the insert points.
type IOPlug interface {
	Name() string

	// Pre reports whether the plug runs pre-insert.
	Pre() bool

	Input() IO
	Output() IO
}

// Surface is a registered control-surface protocol instance. Its bundles
// describe the MIDI ports the protocol owns.
type Surface interface {
	Name() string
	Bundles() []*domain.Bundle
}

// TransportMaster is one external sync source. Masters without a port
// return ok == false and are skipped.
type TransportMaster interface {
	Name() string
	Port() (Port, bool)
}
