// Package album persists per-album episode catalogs in SQLite.
//
// Each album lives in its own directory as album_<id>/album_<id>.db. The
// Store owns one album database: episode insertion with title-unique
// de-duplication, annotation editing, the display ordering that floats
// unannotated episodes to the top, and annotation search. A file lock next
// to the database guards against a second writer process; WAL mode lets
// readers coexist with the single writer.
//
// An episode counts as "unannotated" exactly when its annotation equals its
// filename. That definition is load-bearing for display ordering and is kept
// as-is even though it looks inconsistent with the annotation defaulting to
// the title on insert.
package album
