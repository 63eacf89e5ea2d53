package domain

import "fmt"

// DataType identifies what kind of data flows through a port or channel.
//
// DataTypeNil is the wildcard: as a filter it means "any type", and a port
// whose type cannot be resolved reports it.
type DataType int

const (
	DataTypeNil DataType = iota
	DataTypeAudio
	DataTypeMIDI
)

// DataTypes lists the concrete types in their canonical iteration order.
// The wildcard is not included.
func DataTypes() []DataType {
	return []DataType{DataTypeAudio, DataTypeMIDI}
}

func (t DataType) String() string {
	switch t {
	case DataTypeAudio:
		return "audio"
	case DataTypeMIDI:
		return "midi"
	default:
		return "any"
	}
}

// ParseDataType maps the textual form used by session files and CLI flags
// back to a DataType. The empty string and "any" select the wildcard.
func ParseDataType(s string) (DataType, error) {
	switch s {
	case "audio":
		return DataTypeAudio, nil
	case "midi":
		return DataTypeMIDI, nil
	case "", "any", "nil":
		return DataTypeNil, nil
	default:
		return DataTypeNil, fmt.Errorf("unknown data type %q", s)
	}
}

// Matches reports whether a channel or port of type t passes the filter.
// A Nil filter admits everything.
func (t DataType) Matches(filter DataType) bool {
	return filter == DataTypeNil || t == filter
}
