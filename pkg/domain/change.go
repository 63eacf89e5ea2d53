package domain

// Change describes what mutated on a bundle. Bits combine; zero means
// "nothing", which the batching layer relies on to detect an empty
// pending slot.
type Change uint32

const (
	NameChanged Change = 1 << iota
	ConfigurationChanged
	PortsChanged
	DirectionChanged
)

func (c Change) String() string {
	if c == 0 {
		return "none"
	}
	s := ""
	add := func(bit Change, name string) {
		if c&bit != 0 {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	add(NameChanged, "name")
	add(ConfigurationChanged, "configuration")
	add(PortsChanged, "ports")
	add(DirectionChanged, "direction")
	return s
}
