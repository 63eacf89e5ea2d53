package tree

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/patchbay/pkg/snapshot"
)

// Markdown builds a gather report suitable for glamour rendering or
// plain reading.
func Markdown(snap *snapshot.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s port groups (%s)\n\n", snap.Program, snap.Direction)
	totals := snap.TotalChannels()
	fmt.Fprintf(&sb, "%d groups, %d bundles, %d audio / %d midi channels. Taken at %s.\n",
		len(snap.Groups), snap.BundleCount(), totals.Audio, totals.MIDI,
		snap.TakenAt.Format(time.RFC3339))

	for _, g := range snap.Groups {
		fmt.Fprintf(&sb, "\n## %s\n\n", g.Name)
		for _, b := range g.Bundles {
			name := b.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(&sb, "- **%s** %s\n", name, sizeLabel(b))
			for _, ch := range b.Channels {
				fmt.Fprintf(&sb, "  - %s (%s)", ch.Name, ch.Type)
				if len(ch.Ports) > 0 {
					fmt.Fprintf(&sb, ": `%s`", strings.Join(ch.Ports, "`, `"))
				}
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
