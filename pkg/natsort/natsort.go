// Package natsort orders strings the way humans read port names: runs of
// digits compare by numeric value rather than byte by byte, so "in9" sorts
// before "in10" instead of after it.
package natsort

import (
	"slices"
	"strings"
)

// Compare returns -1, 0 or 1 ordering a against b. Digit runs compare
// numerically and letters compare case-insensitively; full byte order is
// the final tie-break, keeping the ordering total and deterministic.
func Compare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ra, ni := digitRun(a, i)
			rb, nj := digitRun(b, j)
			if c := compareRuns(ra, rb); c != 0 {
				return c
			}
			i, j = ni, nj
			continue
		}
		la, lb := lower(ca), lower(cb)
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return strings.Compare(a, b)
}

// Less reports whether a sorts before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Strings sorts s in place.
func Strings(s []string) {
	slices.SortFunc(s, Compare)
}

// compareRuns orders two digit runs by numeric value. Leading zeros are
// ignored for the comparison; equal values report 0 and leave the
// tie-break to the caller.
func compareRuns(ra, rb string) int {
	ta := strings.TrimLeft(ra, "0")
	tb := strings.TrimLeft(rb, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	return strings.Compare(ta, tb)
}

func digitRun(s string, i int) (string, int) {
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[start:i], i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
