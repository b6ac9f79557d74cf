package album

import "time"

// Episode is a single podcast item record. Title is the sole de-duplication
// key; two records with identical titles are treated as the same episode.
type Episode struct {
	ID         int64
	Filename   string
	Duration   string
	Title      string
	Annotation string
	URL        string
	Created    time.Time
	Updated    time.Time
}

// Unannotated reports whether the episode still carries its sentinel
// annotation. The comparison is against the filename, not the title.
func (e Episode) Unannotated() bool {
	return e.Annotation == e.Filename
}

// DisplayText returns the text shown for the episode in listings: the
// annotation when present, otherwise the title.
func (e Episode) DisplayText() string {
	if e.Annotation != "" {
		return e.Annotation
	}
	return e.Title
}

// Info describes a discovered album directory.
type Info struct {
	ID    string
	Title string
	Path  string
}
