// Package feed fetches and parses podcast RSS feeds and ingests the items
// into an album store.
//
// Feeds in the wild are sloppy about duration metadata, so parsing tries a
// chain of sources per item: a plain <duration> element, the itunes:duration
// element, a "时长:" fragment in the description, and finally a bracketed
// time in the title. Whatever is found is normalized to H:MM:SS where the
// value is parseable and passed through verbatim where it is not.
package feed
