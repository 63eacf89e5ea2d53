package snapshot

import (
	"time"

	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/matrix"
)

// Snapshot is a point-in-time projection of one classification result.
type Snapshot struct {
	Program   string    `json:"program"`
	Direction string    `json:"direction"`
	TakenAt   time.Time `json:"taken_at"`
	Groups    []Group   `json:"groups"`
}

// Group mirrors one matrix.PortGroup.
type Group struct {
	Name    string   `json:"name"`
	Bundles []Bundle `json:"bundles"`
}

// Bundle mirrors one bundle record, including its display color when
// the record carried one.
type Bundle struct {
	Name     string    `json:"name"`
	Color    string    `json:"color,omitempty"`
	Channels []Channel `json:"channels"`
}

// Channel mirrors one bundle channel and the ports behind it.
type Channel struct {
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Ports []string `json:"ports"`
}

// Capture projects a gathered list into a snapshot. The result shares
// nothing with the live list; later gathers leave it untouched.
func Capture(program string, dir domain.Direction, l *matrix.PortGroupList) *Snapshot {
	s := &Snapshot{
		Program:   program,
		Direction: dir.String(),
		TakenAt:   time.Now().UTC(),
	}
	for _, g := range l.Groups() {
		sg := Group{Name: g.Name}
		for _, r := range g.Records() {
			b := r.Bundle()
			sb := Bundle{Name: b.Name()}
			if color, ok := r.Color(); ok {
				sb.Color = color
			}
			for _, ch := range b.Channels() {
				sb.Channels = append(sb.Channels, Channel{
					Name:  ch.Name,
					Type:  ch.Type.String(),
					Ports: append([]string(nil), ch.Ports...),
				})
			}
			sg.Bundles = append(sg.Bundles, sb)
		}
		s.Groups = append(s.Groups, sg)
	}
	return s
}

// TotalChannels counts channels per data type across every group.
func (s *Snapshot) TotalChannels() domain.ChanCount {
	var n domain.ChanCount
	for _, g := range s.Groups {
		for _, b := range g.Bundles {
			for _, ch := range b.Channels {
				switch ch.Type {
				case domain.DataTypeAudio.String():
					n.Audio++
				case domain.DataTypeMIDI.String():
					n.MIDI++
				}
			}
		}
	}
	return n
}

// BundleCount counts bundles across every group.
func (s *Snapshot) BundleCount() int {
	var n int
	for _, g := range s.Groups {
		n += len(g.Bundles)
	}
	return n
}
