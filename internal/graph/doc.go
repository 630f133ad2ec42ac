// Package graph provides the directed graph engine used by the scheduler.
//
// A Graph stores one vertex per payload value. Payloads are opaque to the
// graph: identity is the comparable payload itself, so two vertices may share
// a display name without being confused with each other.
//
// # Storage
//
// Vertices live in an arena of slots. Edges are kept as insertion-ordered sets
// of slot indices on both endpoints (a vertex knows its predecessors and its
// successors), so no vertex ever holds a pointer to another vertex. Freed slots
// are reclaimed by compacting the arena once they outnumber live vertices;
// compaction preserves the relative order of the remaining vertices.
//
// # Ordering
//
// TopSort implements Kahn's algorithm with a FIFO queue. Vertices that are
// ready at the same time are emitted in the order they became ready, which is
// insertion order for the initial roots. For a fixed sequence of AddVertex and
// AddEdge calls the result is therefore always the same.
//
// Vertices can be excluded from the emitted order. They still take part in the
// traversal, so their successors keep waiting on them.
//
// # Permissiveness
//
// Every operation that targets a missing vertex is a silent no-op. Only
// TopSort can fail, and only when the graph contains a cycle.
package graph
