// Package vocab persists the keyword vocabulary graph in SQLite and serves
// relationship queries over it.
//
// The Store manages the database connection, schema initialization, and all
// graph mutations. Every mutation commits to SQLite before the in-memory
// mirror is touched, so a failed transaction never leaves the cache claiming
// state the database did not confirm. Cascading operations (rename, delete)
// run as single transactions.
//
// The graph is a general directed graph: self-loops and duplicate ordered
// pairs are rejected, cycles are not. Relationship queries (parents,
// children, siblings) are one-hop and therefore terminate regardless of
// cycles.
package vocab
