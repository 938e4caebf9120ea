package repair

import (
	"strings"

	"esdtsgen/dtsgen/binscan"
)

// Entries further than this many bytes before the method name are unrelated
// neighbors, not the method's own string cluster.
const maxWindowDistance = 500

// Method-description candidates no longer than this are symbol fragments,
// not prose.
const minMethodDescLen = 15

// extractWindow collects up to max entries immediately preceding the method
// entry, most recent first, bounded by byte distance. Upstream internal
// markers ("$$$...") are dropped.
func extractWindow(idx *binscan.Index, entry *binscan.Entry, max int) []*binscan.Entry {
	var window []*binscan.Entry
	for step := 1; step <= max; step++ {
		ord := entry.Ordinal - step
		if ord < 0 {
			break
		}
		prev := idx.Entries[ord]
		if entry.Offset-prev.Offset > maxWindowDistance {
			break
		}
		if strings.HasPrefix(prev.Text, "$$$") {
			continue
		}
		window = append(window, prev)
	}
	return window
}

// extractMatches scans the window for "name: description" patterns and picks
// the method-description candidate: the entry just beyond the farthest
// pattern from the method name.
func extractMatches(window []*binscan.Entry) binaryMethodInfo {
	info := binaryMethodInfo{}
	maxIdx := -1
	for i, entry := range window {
		name, desc, ok := binscan.SplitParamEntry(entry.Text)
		if !ok {
			continue
		}
		info.matches = append(info.matches, paramMatch{
			name:     name,
			desc:     desc,
			source:   sourceLocal,
			localPos: i,
		})
		maxIdx = i
	}

	if maxIdx >= 0 && maxIdx+1 < len(window) {
		candidate := window[maxIdx+1].Text
		if len(candidate) > minMethodDescLen &&
			strings.Contains(candidate, " ") &&
			!strings.HasSuffix(candidate, " class") {
			info.methodDesc = candidate
		}
	}
	return info
}
