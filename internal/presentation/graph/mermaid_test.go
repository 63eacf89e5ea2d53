package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/patchbay/internal/presentation/graph"
	"github.com/aretw0/patchbay/pkg/snapshot"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		snap     *snapshot.Snapshot
		contains []string
	}{
		{
			name: "Group Subgraphs",
			snap: &snapshot.Snapshot{
				Groups: []snapshot.Group{
					{Name: "Tracks", Bundles: []snapshot.Bundle{{
						Name: "Drums",
						Channels: []snapshot.Channel{
							{Name: "audio_in 1", Type: "audio", Ports: []string{"demo:Drums/audio_in 1"}},
							{Name: "audio_in 2", Type: "audio", Ports: []string{"demo:Drums/audio_in 2"}},
						},
					}}},
				},
			},
			contains: []string{
				"graph TD",
				"subgraph Tracks[\"Tracks\"]",
				"Tracks_b0[\"Drums<br/>2 audio\"]",
			},
		},
		{
			name: "ID Sanitization",
			snap: &snapshot.Snapshot{
				Groups: []snapshot.Group{
					{Name: "I/O Pre", Bundles: []snapshot.Bundle{{Name: "tuner"}}},
					{Name: "demo Misc", Bundles: []snapshot.Bundle{{Name: "Sync"}}},
				},
			},
			contains: []string{
				"subgraph I_O_Pre[\"I/O Pre\"]",
				"I_O_Pre_b0[\"tuner<br/>empty\"]",
				"subgraph demo_Misc[\"demo Misc\"]",
			},
		},
		{
			name: "Label Escaping",
			snap: &snapshot.Snapshot{
				Groups: []snapshot.Group{
					{Name: "Tracks", Bundles: []snapshot.Bundle{{Name: `say "hi"`}}},
				},
			},
			contains: []string{
				`Tracks_b0["say 'hi'<br/>empty"]`,
			},
		},
		{
			name: "Shared Port Edges",
			snap: &snapshot.Snapshot{
				Groups: []snapshot.Group{
					{Name: "External", Bundles: []snapshot.Bundle{{
						Name: "My Rig",
						Channels: []snapshot.Channel{
							{Name: "L", Type: "audio", Ports: []string{"system:playback_1"}},
						},
					}}},
					{Name: "Hardware", Bundles: []snapshot.Bundle{{
						Name: "system",
						Channels: []snapshot.Channel{
							{Name: "playback_1", Type: "audio", Ports: []string{"system:playback_1"}},
						},
					}}},
				},
			},
			contains: []string{
				"External_b0 -. shares ports .-> Hardware_b0",
			},
		},
		{
			name: "Color Styles",
			snap: &snapshot.Snapshot{
				Groups: []snapshot.Group{
					{Name: "Busses", Bundles: []snapshot.Bundle{{Name: "Master", Color: "#16a34a"}}},
				},
			},
			contains: []string{
				"style Busses_b0 stroke:#16a34a,stroke-width:2px",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.snap)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}
