package domain

import "fmt"

// Direction distinguishes the two transfer sides of the routing matrix.
// The input side lists ports that receive data; the output side lists
// ports that produce it.
type Direction int

const (
	DirInput Direction = iota
	DirOutput
)

func (d Direction) String() string {
	if d == DirOutput {
		return "output"
	}
	return "input"
}

// ParseDirection maps the textual form used by session files and CLI
// flags back to a Direction. "in" and "out" are accepted shorthands.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "input", "in", "capture":
		return DirInput, nil
	case "output", "out", "playback":
		return DirOutput, nil
	default:
		return DirInput, fmt.Errorf("unknown direction %q", s)
	}
}

// PortFlags carries the metadata bits of a raw port.
type PortFlags uint32

const (
	// PortIsInput marks a port that receives data.
	PortIsInput PortFlags = 1 << iota
	// PortIsOutput marks a port that produces data.
	PortIsOutput
	// PortIsPhysical marks a port backed by hardware.
	PortIsPhysical
	// PortCanMonitor marks a port with hardware monitoring.
	PortCanMonitor
	// PortIsTerminal marks a port at the end of a signal chain.
	PortIsTerminal
	// PortIsHidden excludes a port from user-facing listings.
	PortIsHidden
)

// IsPhysical reports whether the hardware bit is set.
func (f PortFlags) IsPhysical() bool {
	return f&PortIsPhysical != 0
}

// IsHidden reports whether the hidden bit is set.
func (f PortFlags) IsHidden() bool {
	return f&PortIsHidden != 0
}

// Matches reports whether the flags select side d.
func (f PortFlags) Matches(d Direction) bool {
	if d == DirInput {
		return f&PortIsInput != 0
	}
	return f&PortIsOutput != 0
}
