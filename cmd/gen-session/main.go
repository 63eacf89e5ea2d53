package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/patchbay/pkg/sessionfile"
)

func main() {
	targetDir := "examples/session-file"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	target := filepath.Join(targetDir, "studio.yaml")
	fmt.Printf("Generating starter session in: %s\n", target)

	f := sessionfile.File{
		Program: "studio",
		Routes: []sessionfile.Route{
			{Name: "Vocals", Kind: "track", Order: 0, Color: "#b91c1c", AudioIn: 1, AudioOut: 2},
			{Name: "Guitar", Kind: "track", Order: 1, Color: "#15803d", AudioIn: 1, AudioOut: 2},
			{Name: "Master", Kind: "bus", Order: 2, Color: "#1d4ed8", AudioIn: 2, AudioOut: 2,
				Processors: []sessionfile.Processor{
					{Name: "Comp", Sidechain: true, Width: 1},
				}},
		},
		Bundles: []sessionfile.Bundle{
			{Name: "Interface Out", User: true, Direction: "input", Channels: []sessionfile.Channel{
				{Name: "L", Type: "audio", Ports: []string{"system:playback_1"}},
				{Name: "R", Type: "audio", Ports: []string{"system:playback_2"}},
			}},
		},
		Ports: []sessionfile.Port{
			{Name: "system:capture_1", Type: "audio", Direction: "output", Physical: true, Pretty: "Mic 1"},
			{Name: "system:capture_2", Type: "audio", Direction: "output", Physical: true, Pretty: "Mic 2"},
			{Name: "system:playback_1", Type: "audio", Direction: "input", Physical: true},
			{Name: "system:playback_2", Type: "audio", Direction: "input", Physical: true},
		},
	}

	data, err := yaml.Marshal(&f)
	check(err)

	// Round-trip through the parser so a generated file never ships broken.
	_, err = sessionfile.Parse(data)
	check(err)

	check(os.WriteFile(target, data, 0644))

	fmt.Println("Done. Try: patchbay gather", target)
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
