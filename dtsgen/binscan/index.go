// Package binscan indexes the text strings scattered through a native
// library file. The blob is scanned exactly once; every later lookup is a
// map or slice access.
package binscan

import (
	"unicode/utf8"
)

// Candidate strings are maximal runs of non-zero bytes shorter than this.
const maxStringLen = 500

// Entry is one candidate string recovered from a blob.
type Entry struct {
	// Text is the decoded string.
	Text string

	// Offset is the byte position of the first character in the blob.
	Offset int

	// Ordinal is the entry's position in scan order.
	Ordinal int
}

// Index holds every plausible string of one blob in scan order, plus an
// exact-text lookup map.
type Index struct {
	// Name identifies the source blob. Opaque.
	Name string

	// Entries is the ordered sequence of recovered strings.
	Entries []*Entry

	// ByText maps exact text to every entry carrying it.
	ByText map[string][]*Entry
}

// Scan walks the blob once and indexes every maximal non-zero byte run that
// decodes as UTF-8 and looks like text.
func Scan(name string, data []byte) *Index {
	idx := &Index{
		Name:   name,
		ByText: make(map[string][]*Entry),
	}

	i := 0
	for i < len(data) {
		if data[i] == 0 {
			i++
			continue
		}
		j := i
		for j < len(data) && data[j] != 0 {
			j++
		}
		run := data[i:j]
		if len(run) >= 1 && len(run) < maxStringLen && utf8.Valid(run) {
			text := string(run)
			if looksLikeText(text) {
				entry := &Entry{
					Text:    text,
					Offset:  i,
					Ordinal: len(idx.Entries),
				}
				idx.Entries = append(idx.Entries, entry)
				idx.ByText[text] = append(idx.ByText[text], entry)
			}
		}
		i = j
	}
	return idx
}

// Lookup returns the first entry with the exact text, or nil.
func (idx *Index) Lookup(text string) *Entry {
	entries := idx.ByText[text]
	if len(entries) == 0 {
		return nil
	}
	return entries[0]
}

// looksLikeText keeps a string when at least 80% of its characters are ASCII
// printable, whitespace controls, or above codepoint 160.
func looksLikeText(s string) bool {
	total, printable := 0, 0
	for _, r := range s {
		total++
		if (r >= 32 && r < 127) || r == '\t' || r == '\n' || r == '\r' || r > 160 {
			printable++
		}
	}
	if total == 0 {
		return false
	}
	return float64(printable)/float64(total) >= 0.8
}
