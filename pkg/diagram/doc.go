// Package diagram implements combinatorial knot, link and tangle diagrams
// as signed 4-valent crossing graphs, together with the three Reidemeister
// moves (R1, R2, R3) that rewrite them while preserving topological type.
//
// # Model
//
// A diagram is a set of crossings held in an arena with stable indices.
// Each crossing carries a sign (+1 or -1) and two strands: the lower
// strand (0) passes under, the upper strand (1) passes over. Every
// strand-end is identified by a [StrandRef] (arena index + strand bit)
// and is linked to its successor and predecessor along the strand.
//
// Components are either closed loops (links) or open strings terminating
// at the four boundary slots of a tangle (0=NW, 1=NE, 2=SW, 3=SE). A
// strand-end whose successor is the null reference is the last crossing
// pass of an open string; the component table records which boundary slot
// it exits through.
//
// # Moves
//
// Each move comes as a pure legality check (R1UpLegal, R2DownLegal,
// R3Legal and so on) and a mutating counterpart that verifies legality
// before touching the graph. Moves are atomic: either the diagram is rewritten into another
// valid diagram, or it is left untouched and an error is returned.
//
// # Signatures
//
// Signature returns a canonical string encoding: two diagrams produce the
// same signature exactly when they are isomorphic as labelled strand
// graphs. FromSignature parses an encoding back into a diagram, so
// signatures double as a compact serialization format.
package diagram
