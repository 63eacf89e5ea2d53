// Package graph renders classification snapshots as Mermaid diagrams.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/patchbay/pkg/snapshot"
)

// GenerateMermaid produces a Mermaid flowchart from a snapshot: one
// subgraph per port group, one node per bundle. Bundles that expose the
// same raw port are linked with a dotted edge, which makes duplicate
// suppression visible when it is switched off. Bundle display colors
// become stroke styles.
func GenerateMermaid(snap *snapshot.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var styles []string
	portOwners := make(map[string][]string)
	var portOrder []string

	for _, g := range snap.Groups {
		safeGroup := sanitizeMermaidID(g.Name)
		sb.WriteString(fmt.Sprintf("    subgraph %s[\"%s\"]\n", safeGroup, g.Name))

		for bi, b := range g.Bundles {
			id := fmt.Sprintf("%s_b%d", safeGroup, bi)

			label := b.Name
			if label == "" {
				label = "unnamed"
			}
			// Escape double quotes for Mermaid labels
			label = strings.ReplaceAll(label, "\"", "'")
			sb.WriteString(fmt.Sprintf("        %s[\"%s<br/>%s\"]\n", id, label, countLabel(b)))

			if b.Color != "" {
				styles = append(styles, fmt.Sprintf("    style %s stroke:%s,stroke-width:2px\n", id, b.Color))
			}

			for _, ch := range b.Channels {
				for _, p := range ch.Ports {
					if _, seen := portOwners[p]; !seen {
						portOrder = append(portOrder, p)
					}
					portOwners[p] = append(portOwners[p], id)
				}
			}
		}
		sb.WriteString("    end\n")
	}

	// Shared-port relations
	emitted := make(map[string]bool)
	for _, p := range portOrder {
		owners := portOwners[p]
		for i := 1; i < len(owners); i++ {
			a, b := owners[0], owners[i]
			if a == b || emitted[a+"|"+b] {
				continue
			}
			emitted[a+"|"+b] = true
			sb.WriteString(fmt.Sprintf("    %s -. shares ports .-> %s\n", a, b))
		}
	}

	for _, s := range styles {
		sb.WriteString(s)
	}

	return sb.String()
}

func countLabel(b snapshot.Bundle) string {
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
		return fmt.Sprintf("%d audio, %d midi", audio, midi)
	case audio > 0:
		return fmt.Sprintf("%d audio", audio)
	case midi > 0:
		return fmt.Sprintf("%d midi", midi)
	default:
		return "empty"
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
