package memory

import (
	"strings"

	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/routing"
)

// Engine is an in-memory port registry: every port the session knows
// about, hardware and program-owned alike, keyed by fully-qualified
// name. Enumeration order is registration order.
type Engine struct {
	program string
	ports   map[string]routing.Port
	order   []string
}

var _ routing.PortEngine = (*Engine)(nil)

// NewEngine returns an empty registry for the given program name.
func NewEngine(program string) *Engine {
	return &Engine{
		program: program,
		ports:   make(map[string]routing.Port),
	}
}

// RegisterPort records a port under its fully-qualified name. Names
// without a client prefix are qualified with the program name first.
// Re-registering a name overwrites the previous entry in place.
func (e *Engine) RegisterPort(p routing.Port) string {
	p.Name = e.QualifiedName(p.Name)
	if _, exists := e.ports[p.Name]; !exists {
		e.order = append(e.order, p.Name)
	}
	e.ports[p.Name] = p
	return p.Name
}

// UnregisterPort removes the named port. Unknown names are a no-op.
func (e *Engine) UnregisterPort(name string) {
	if _, exists := e.ports[name]; !exists {
		return
	}
	delete(e.ports, name)
	for i, n := range e.order {
		if n == name {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// SetPrettyName attaches a human-readable name to a registered port.
// It reports whether the port was known.
func (e *Engine) SetPrettyName(name, pretty string) bool {
	p, ok := e.ports[name]
	if !ok {
		return false
	}
	p.PrettyName = pretty
	e.ports[name] = p
	return true
}

// PortNames lists registered ports matching the type filter and
// direction, in registration order. DataTypeNil admits every type.
func (e *Engine) PortNames(t domain.DataType, d domain.Direction) []string {
	var out []string
	for _, name := range e.order {
		p := e.ports[name]
		if t != domain.DataTypeNil && p.Type != t {
			continue
		}
		if !p.Flags.Matches(d) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// LookupPort resolves a fully-qualified name to its port description.
func (e *Engine) LookupPort(name string) (routing.Port, bool) {
	p, ok := e.ports[name]
	return p, ok
}

// QualifiedName prefixes a program-local port name with the program
// name. Names already carrying a client prefix pass through untouched.
func (e *Engine) QualifiedName(local string) string {
	if strings.ContainsRune(local, ':') {
		return local
	}
	return e.program + ":" + local
}
