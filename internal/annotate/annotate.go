package annotate

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Markers wrapped around highlighted keywords. These are full-width bracket
// runes, so highlighted text remains readable in plain terminal output.
const (
	markerOpen  = "【"
	markerClose = "】"
)

var fold = cases.Fold()

// ExtractKeywords returns the subset of vocabulary whose names occur in text,
// compared case-insensitively. The result carries no ordering guarantee
// beyond containing exactly the matching set.
func ExtractKeywords(text string, vocabulary []string) []string {
	if text == "" || len(vocabulary) == 0 {
		return nil
	}

	folded := fold.String(text)
	var matched []string
	for _, name := range vocabulary {
		if name == "" {
			continue
		}
		if strings.Contains(folded, fold.String(name)) {
			matched = append(matched, name)
		}
	}
	return matched
}

// span is a half-open rune-index interval [start, end) into the working text.
type span struct {
	start int
	end   int
}

func (a span) overlaps(b span) bool {
	return a.start < b.end && b.start < a.end
}

// Highlight wraps every matched keyword occurrence in text with 【】 markers.
//
// Names are processed longest first so a short name nested inside a longer
// one does not pre-empt it. Each name is scanned against the current working
// text, which already contains the markers inserted for earlier names;
// occurrences overlapping a previously marked span are skipped by advancing
// one rune. The overlap check is what keeps later names from matching inside
// markers inserted earlier.
func Highlight(text string, vocabulary []string) string {
	if text == "" || len(vocabulary) == 0 {
		return text
	}

	names := make([]string, 0, len(vocabulary))
	for _, name := range vocabulary {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		return len([]rune(names[i])) > len([]rune(names[j]))
	})

	working := []rune(text)
	var marked []span

	for _, name := range names {
		needle := []rune(name)
		pos := 0
		for {
			offset := indexRunes(working[pos:], needle)
			if offset < 0 {
				break
			}
			start := pos + offset
			candidate := span{start: start, end: start + len(needle)}

			if overlapsAny(candidate, marked) {
				pos = start + 1
				continue
			}

			replacement := []rune(markerOpen + name + markerClose)
			working = spliceRunes(working, candidate.start, candidate.end, replacement)
			inserted := span{start: candidate.start, end: candidate.start + len(replacement)}

			// Spans recorded before this insertion keep their coordinates
			// only when they sit left of it; shift the ones to the right.
			delta := len(replacement) - len(needle)
			for i := range marked {
				if marked[i].start >= candidate.end {
					marked[i].start += delta
					marked[i].end += delta
				}
			}
			marked = append(marked, inserted)
			pos = inserted.end
		}
	}

	return string(working)
}

func overlapsAny(candidate span, marked []span) bool {
	for _, m := range marked {
		if candidate.overlaps(m) {
			return true
		}
	}
	return false
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	limit := len(haystack) - len(needle)
	for i := 0; i <= limit; i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func spliceRunes(text []rune, start, end int, replacement []rune) []rune {
	out := make([]rune, 0, len(text)-(end-start)+len(replacement))
	out = append(out, text[:start]...)
	out = append(out, replacement...)
	out = append(out, text[end:]...)
	return out
}
