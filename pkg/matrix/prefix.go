package matrix

import "strings"

// Leftover hardware and external ports arrive as flat name lists. The
// functions here carve those lists into bundle-sized pieces by looking
// at name prefixes, e.g. "system:capture_1" and "system:capture_2"
// belong together while "firewire:in1" starts a new piece.

// detectSeparator picks the separator for a port list: '/' when every
// name contains one, otherwise ':' when every name does, otherwise 0.
func detectSeparator(ports []string) byte {
	hasSlash, hasColon := true, true
	for _, p := range ports {
		if !strings.Contains(p, "/") {
			hasSlash = false
		}
		if !strings.Contains(p, ":") {
			hasColon = false
		}
	}
	switch {
	case hasSlash:
		return '/'
	case hasColon:
		return ':'
	default:
		return 0
	}
}

// prefixThrough returns p up to and including the first sep, or the
// empty string when p carries none.
func prefixThrough(p string, sep byte) string {
	i := strings.IndexByte(p, sep)
	if i < 0 {
		return ""
	}
	return p[:i+1]
}

// splitRuns partitions ports into contiguous runs sharing the same
// prefix up to and including the first sep. The input is assumed
// sorted, so equal prefixes sit together.
func splitRuns(ports []string, sep byte) [][]string {
	var runs [][]string
	var run []string
	current := ""
	for _, p := range ports {
		pf := prefixThrough(p, sep)
		if pf != current && len(run) > 0 {
			runs = append(runs, run)
			run = nil
		}
		current = pf
		run = append(run, p)
	}
	if len(run) > 0 {
		runs = append(runs, run)
	}
	return runs
}

// commonPrefixBefore returns the prefix of the first port up to and
// including the first sep, provided every other port starts with it;
// otherwise the empty string.
func commonPrefixBefore(ports []string, sep byte) string {
	if len(ports) == 0 {
		return ""
	}
	i := strings.IndexByte(ports[0], sep)
	if i < 0 {
		return ""
	}
	fp := ports[0][:i+1]
	for _, p := range ports[1:] {
		if !strings.HasPrefix(p, fp) {
			return ""
		}
	}
	return fp
}

// commonPrefix returns the separator-terminated prefix shared by every
// port, trying '/' before ':'. Empty when the ports share none.
func commonPrefix(ports []string) string {
	if cp := commonPrefixBefore(ports, '/'); cp != "" {
		return cp
	}
	return commonPrefixBefore(ports, ':')
}
