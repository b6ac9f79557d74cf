// Package annotate matches keyword vocabularies against free text.
//
// ExtractKeywords reports which vocabulary terms occur in a text using
// case-insensitive substring containment. Highlight wraps matched terms in
// 【】 markers using a longest-first, non-overlapping replacement pass over a
// mutating working copy of the text. Neither function ever fails; an empty
// vocabulary degrades to the input text and an empty match set.
package annotate
