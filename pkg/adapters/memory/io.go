package memory

import (
	"fmt"

	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/routing"
)

// IO is one side of a route, processor, or special unit: a bundle of
// ports plus the identity owner references resolve back to.
type IO struct {
	name    string
	bundle  *domain.Bundle
	session *Session
}

var _ routing.IO = (*IO)(nil)

// Name returns the IO's name, e.g. "Drums" for a route's primary IO.
func (io *IO) Name() string { return io.name }

// Bundle returns the bundle listing the IO's ports.
func (io *IO) Bundle() *domain.Bundle { return io.bundle }

// Ref returns a weak reference resolving to this IO while it lives in
// the session.
func (io *IO) Ref() routing.OwnerRef {
	return ioRef{io: io}
}

type ioRef struct {
	io *IO
}

func (r ioRef) Resolve() (routing.IO, bool) {
	if !r.io.session.alive(r.io) {
		return nil, false
	}
	return r.io, true
}

// newIO builds an IO whose ports are registered with the session's
// engine under program-qualified names like "prog:Drums/audio_in 1".
func (s *Session) newIO(name string, dir domain.Direction, audio, midi int) *IO {
	io := &IO{
		name:    name,
		bundle:  domain.NewBundle(name, dir),
		session: s,
	}
	s.live[io] = struct{}{}

	dirToken := "in"
	flag := domain.PortIsInput
	if dir == domain.DirOutput {
		dirToken = "out"
		flag = domain.PortIsOutput
	}

	for i := 1; i <= audio; i++ {
		channel := fmt.Sprintf("audio_%s %d", dirToken, i)
		qualified := s.engine.RegisterPort(routing.Port{
			Name:  fmt.Sprintf("%s/%s", name, channel),
			Type:  domain.DataTypeAudio,
			Flags: flag,
		})
		io.bundle.AddChannel(channel, domain.DataTypeAudio, qualified)
	}
	for i := 1; i <= midi; i++ {
		channel := fmt.Sprintf("midi_%s %d", dirToken, i)
		qualified := s.engine.RegisterPort(routing.Port{
			Name:  fmt.Sprintf("%s/%s", name, channel),
			Type:  domain.DataTypeMIDI,
			Flags: flag,
		})
		io.bundle.AddChannel(channel, domain.DataTypeMIDI, qualified)
	}
	return io
}

// destroyIO drops the IO from the liveness registry and unregisters its
// ports. The bundle itself survives so stale views keep rendering.
func (s *Session) destroyIO(io *IO) {
	if io == nil {
		return
	}
	delete(s.live, io)
	for i := 0; i < io.bundle.Len(); i++ {
		for _, p := range io.bundle.ChannelPorts(i) {
			s.engine.UnregisterPort(p)
		}
	}
}
