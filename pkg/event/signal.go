// Package event implements the synchronous observer signals used by the
// matrix containers. Observers run on the emitting goroutine, in the order
// they connected; there is no buffering and no locking.
package event

// Signal broadcasts values of type T to connected observers.
// The zero value is ready to use.
//
// Signals are not safe for concurrent use. Like the containers that carry
// them, they assume a single owning goroutine.
type Signal[T any] struct {
	nextID   int
	handlers []handler[T]
}

type handler[T any] struct {
	id int
	fn func(T)
}

// Connection undoes a Connect. The zero value is a no-op.
type Connection struct {
	off func()
}

// Disconnect removes the observer. Calling it again is a no-op.
func (c Connection) Disconnect() {
	if c.off != nil {
		c.off()
	}
}

// Connect registers fn to run on every Emit until disconnected.
func (s *Signal[T]) Connect(fn func(T)) Connection {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, handler[T]{id: id, fn: fn})
	return Connection{off: func() { s.disconnect(id) }}
}

func (s *Signal[T]) disconnect(id int) {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Emit delivers v to every connected observer, in connection order.
// The observer list is snapshotted first, so connections made or dropped
// by a running observer take effect from the next emission.
func (s *Signal[T]) Emit(v T) {
	if len(s.handlers) == 0 {
		return
	}
	snapshot := make([]handler[T], len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Notifier is a Signal that carries no payload.
type Notifier struct {
	sig Signal[struct{}]
}

// Connect registers fn to run on every Notify until disconnected.
func (n *Notifier) Connect(fn func()) Connection {
	return n.sig.Connect(func(struct{}) { fn() })
}

// Notify runs every connected observer in connection order.
func (n *Notifier) Notify() {
	n.sig.Emit(struct{}{})
}
