package domain

// ChanCount tallies channels per data type.
type ChanCount struct {
	Audio int
	MIDI  int
}

// Get returns the count for one type. The Nil wildcard returns the total.
func (c ChanCount) Get(t DataType) int {
	switch t {
	case DataTypeAudio:
		return c.Audio
	case DataTypeMIDI:
		return c.MIDI
	default:
		return c.Total()
	}
}

// Add increases the count for t by n. Adding to the Nil wildcard is
// ignored; untyped channels are never tallied.
func (c *ChanCount) Add(t DataType, n int) {
	switch t {
	case DataTypeAudio:
		c.Audio += n
	case DataTypeMIDI:
		c.MIDI += n
	}
}

// Plus returns the element-wise sum of c and other.
func (c ChanCount) Plus(other ChanCount) ChanCount {
	return ChanCount{
		Audio: c.Audio + other.Audio,
		MIDI:  c.MIDI + other.MIDI,
	}
}

// Total returns the channel count across all types.
func (c ChanCount) Total() int {
	return c.Audio + c.MIDI
}

// GreaterThan reports whether c dominates other: no type smaller, at
// least one strictly larger. Used by the subsumption pass, where only a
// strictly larger bundle may absorb a smaller one.
func (c ChanCount) GreaterThan(other ChanCount) bool {
	return c.Audio >= other.Audio && c.MIDI >= other.MIDI && c != other
}
