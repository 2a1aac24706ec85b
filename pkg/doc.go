// Package pkg provides the core libraries for skein diagram exploration.
//
// # Overview
//
// Skein computes with combinatorial diagrams of knots, links and tangles
// and explores the space of diagrams reachable through Reidemeister
// moves. The pkg directory is organized into:
//
//  1. [diagram] - Domain logic (crossing graphs, moves, signatures)
//  2. [explore] - The concurrent breadth-first exploration engine
//  3. [census] - Stores for discovered diagrams (memory, JSONL, MongoDB)
//  4. [cache] - Result caching (file, Redis, null)
//  5. [render] - Graphviz output
//  6. [errors], [observability], [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow:
//
//	Signature or named diagram
//	         ↓
//	diagram.FromSignature / diagram.ByName
//	         ↓
//	explore.Run (workers expand diagrams, dedup by signature)
//	         ↓
//	census.Store / cache.Cache / render
//
// The diagram package is self-contained and usable as a library; the
// engine only touches diagrams through the Space interface.
package pkg
