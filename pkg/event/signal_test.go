package event_test

import (
	"testing"

	"github.com/aretw0/patchbay/pkg/event"
	"github.com/stretchr/testify/assert"
)

func TestSignal_DeliversInConnectionOrder(t *testing.T) {
	var s event.Signal[int]
	var got []string

	s.Connect(func(v int) { got = append(got, "first") })
	s.Connect(func(v int) { got = append(got, "second") })
	s.Connect(func(v int) { got = append(got, "third") })

	s.Emit(1)

	assert.Equal(t, []string{"first", "second", "third"}, got)
}

func TestSignal_Disconnect(t *testing.T) {
	var s event.Signal[string]
	calls := 0

	conn := s.Connect(func(string) { calls++ })
	s.Emit("a")
	conn.Disconnect()
	s.Emit("b")

	assert.Equal(t, 1, calls)

	// Disconnecting twice must not panic or affect other observers.
	conn.Disconnect()

	kept := 0
	s.Connect(func(string) { kept++ })
	conn.Disconnect()
	s.Emit("c")
	assert.Equal(t, 1, kept)
}

func TestSignal_ZeroConnectionIsNoop(t *testing.T) {
	var c event.Connection
	c.Disconnect() // must not panic
}

func TestSignal_ConnectDuringEmit(t *testing.T) {
	var s event.Signal[int]
	late := 0

	s.Connect(func(int) {
		s.Connect(func(int) { late++ })
	})

	s.Emit(1)
	assert.Equal(t, 0, late, "observer connected mid-emission must not see the current emission")

	s.Emit(2)
	assert.Equal(t, 1, late)
}

func TestNotifier(t *testing.T) {
	var n event.Notifier
	count := 0

	conn := n.Connect(func() { count++ })
	n.Notify()
	n.Notify()
	conn.Disconnect()
	n.Notify()

	assert.Equal(t, 2, count)
}
