// Package tree renders classification snapshots for terminals.
package tree

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/patchbay/pkg/snapshot"
)

const groupColor = "#818cf8"

// Render draws a snapshot as an indented tree. The profile decides how
// much color survives; termenv.Ascii yields plain text for pipes.
func Render(snap *snapshot.Snapshot, profile termenv.Profile) string {
	var sb strings.Builder

	title := fmt.Sprintf("%s (%s)", snap.Program, snap.Direction)
	sb.WriteString(profile.String(title).Bold().String())
	sb.WriteByte('\n')

	for gi, g := range snap.Groups {
		groupBranch, childIndent := "├── ", "│   "
		if gi == len(snap.Groups)-1 {
			groupBranch, childIndent = "└── ", "    "
		}

		name := profile.String(g.Name).Foreground(profile.Color(groupColor)).Bold().String()
		sb.WriteString(groupBranch + name + "\n")

		for bi, b := range g.Bundles {
			bundleBranch, bundleIndent := "├── ", "│   "
			if bi == len(g.Bundles)-1 {
				bundleBranch, bundleIndent = "└── ", "    "
			}

			label := b.Name
			if label == "" {
				label = "(unnamed)"
			}
			styled := profile.String(label)
			if b.Color != "" {
				styled = styled.Foreground(profile.Color(b.Color))
			}
			sb.WriteString(childIndent + bundleBranch + styled.String() + " " + sizeLabel(b) + "\n")

			for ci, ch := range b.Channels {
				chBranch := "├── "
				if ci == len(b.Channels)-1 {
					chBranch = "└── "
				}
				line := fmt.Sprintf("%s (%s)", ch.Name, ch.Type)
				if len(ch.Ports) > 0 {
					line += ": " + strings.Join(ch.Ports, ", ")
				}
				sb.WriteString(childIndent + bundleIndent + chBranch + line + "\n")
			}
		}
	}
	return sb.String()
}

func sizeLabel(b snapshot.Bundle) string {
	var audio, midi int
	for _, ch := range b.Channels {
		switch ch.Type {
		case "audio":
			audio++
		case "midi":
			midi++
		}
	}
	switch {
	case audio > 0 && midi > 0:
		return fmt.Sprintf("[%d audio, %d midi]", audio, midi)
	case audio > 0:
		return fmt.Sprintf("[%d audio]", audio)
	case midi > 0:
		return fmt.Sprintf("[%d midi]", midi)
	default:
		return "[empty]"
	}
}
