package routing

import "github.com/aretw0/patchbay/pkg/domain"

// Port is a metadata snapshot of one raw port.
type Port struct {
	// Name is the fully-qualified port name.
	Name string

	// PrettyName is an optional human-readable display name.
	PrettyName string

	Type  domain.DataType
	Flags domain.PortFlags
}

// PortEngine is the raw port registry: every port the I/O subsystem
// knows, including ports owned by other applications.
type PortEngine interface {
	// PortNames lists the fully-qualified names of all ports carrying
	// type t on side d. Order is unspecified; gather sorts.
	PortNames(t domain.DataType, d domain.Direction) []string

	// LookupPort resolves a port name to its metadata. A name that no
	// longer resolves reports ok == false and is silently skipped.
	LookupPort(name string) (Port, bool)

	// QualifiedName expands a program-local port name ("LTC-out") to
	// its engine-wide form ("studio:LTC-out").
	QualifiedName(local string) string
}
