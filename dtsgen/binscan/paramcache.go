package binscan

import (
	"regexp"
	"strings"
)

// Identifiers in a "name: description" observation are never longer than
// this; longer matches are prose with a stray colon.
const maxCachedNameLen = 50

var paramEntryPat = regexp.MustCompile(`^([^\s:]+):(.*)$`)

// ParamCache maps a parameter identifier to the description observed next to
// it in a blob.
type ParamCache map[string]string

// BuildCache collects every "name: description" pattern from one blob's
// index. When the same identifier is seen more than once, the longer
// description wins.
func BuildCache(idx *Index) ParamCache {
	cache := make(ParamCache)
	for _, entry := range idx.Entries {
		name, desc, ok := splitParamEntry(entry.Text)
		if !ok {
			continue
		}
		if existing, seen := cache[name]; !seen || len(desc) > len(existing) {
			cache[name] = desc
		}
	}
	return cache
}

// MergeCaches combines per-blob caches into the master cache on a
// first-seen-wins basis; the blobs are expected to agree.
func MergeCaches(caches []ParamCache) ParamCache {
	master := make(ParamCache)
	for _, cache := range caches {
		for name, desc := range cache {
			if _, seen := master[name]; !seen {
				master[name] = desc
			}
		}
	}
	return master
}

// SplitParamEntry exposes the "name: description" pattern check used for
// both cache building and local-window extraction.
func SplitParamEntry(text string) (name, desc string, ok bool) {
	return splitParamEntry(text)
}

func splitParamEntry(text string) (string, string, bool) {
	m := paramEntryPat.FindStringSubmatch(text)
	if m == nil || len(m[1]) > maxCachedNameLen {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}
