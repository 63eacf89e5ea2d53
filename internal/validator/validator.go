package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/routing"
)

// ValidateSource checks a routing source for dead port references and
// naming conflicts. Gather tolerates all of these silently (stale refs
// are skipped, duplicate names collide in the matrix display), so this
// is the place that reports them.
func ValidateSource(src routing.Source) error {
	engine := src.Engine()

	var errors []string

	// 1. Route names must be present and unique.
	seen := make(map[string]bool)
	for _, r := range src.Routes() {
		name := r.Name()
		if name == "" {
			errors = append(errors, "route with an empty name")
			continue
		}
		if seen[name] {
			errors = append(errors, fmt.Sprintf("duplicate route name: '%s'", name))
		}
		seen[name] = true
	}

	// 2. Session and surface bundles must reference live ports on the
	// right side, carrying the declared type.
	checkBundle := func(b *domain.Bundle) {
		for _, ch := range b.Channels() {
			for _, portName := range ch.Ports {
				p, ok := engine.LookupPort(portName)
				if !ok {
					errors = append(errors, fmt.Sprintf("bundle '%s': channel '%s' references missing port '%s'", b.Name(), ch.Name, portName))
					continue
				}
				if !p.Flags.Matches(b.Direction()) {
					errors = append(errors, fmt.Sprintf("bundle '%s': port '%s' is on the wrong side for a %s bundle", b.Name(), portName, b.Direction()))
				}
				if ch.Type != domain.DataTypeNil && p.Type != ch.Type {
					errors = append(errors, fmt.Sprintf("bundle '%s': channel '%s' is %s but port '%s' carries %s", b.Name(), ch.Name, ch.Type, portName, p.Type))
				}
			}
		}
	}
	for _, b := range src.Bundles() {
		checkBundle(b)
	}
	for _, s := range src.Surfaces() {
		for _, b := range s.Bundles() {
			checkBundle(b)
		}
	}

	// 3. Declared special ports must resolve once qualified.
	sp := src.Special()
	specials := []struct {
		label string
		local string
	}{
		{"LTC out", sp.LTCOut},
		{"MTC out", sp.MTCOut},
		{"MIDI clock out", sp.MIDIClockOut},
		{"MMC in", sp.MMCIn},
		{"MMC out", sp.MMCOut},
		{"virtual keyboard out", sp.VKeyboardOut},
	}
	for _, s := range specials {
		if s.local == "" {
			continue
		}
		if _, ok := engine.LookupPort(engine.QualifiedName(s.local)); !ok {
			errors = append(errors, fmt.Sprintf("special port %s: '%s' does not resolve", s.label, s.local))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
