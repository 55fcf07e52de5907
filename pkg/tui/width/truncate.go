// ABOUTME: Truncate shortens text to a column budget without splitting grapheme clusters
// ABOUTME: Escape sequences are kept so styling around the cut stays balanced

package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Truncate returns s cut to at most maxCols visible columns. When text is
// dropped, tail is appended and counted against the budget. A tail wider
// than the budget is itself dropped.
func Truncate(s string, maxCols int, tail string) string {
	if maxCols <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxCols {
		return s
	}

	tailW := VisibleWidth(tail)
	if tailW > maxCols {
		tail, tailW = "", 0
	}
	budget := maxCols - tailW

	var b strings.Builder
	b.Grow(len(s) + len(tail))
	col := 0
	full := false
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			end := skipANSISequence(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		w := graphemeWidth(cluster)
		if !full && col+w <= budget {
			b.WriteString(cluster)
			col += w
		} else if !full {
			full = true
			b.WriteString(tail)
		}
		i += len(s[i:]) - len(rest)
	}
	if !full {
		b.WriteString(tail)
	}
	return b.String()
}
