package diagram

// Space adapts diagrams to the exploration engine's search-space
// interface: signatures are the canonical dedup keys, decoding rebuilds a
// private diagram per worker, and expansion enumerates Reidemeister
// neighbours under the size cap.
type Space struct{}

// Signature returns the canonical signature of d.
func (Space) Signature(d *Diagram) string { return d.Signature() }

// Decode rebuilds a diagram from its signature.
func (Space) Decode(sig string) (*Diagram, error) { return FromSignature(sig) }

// Expand feeds every Reidemeister neighbour of d with at most maxSize
// crossings to emit.
func (Space) Expand(d *Diagram, maxSize int, emit func(*Diagram) bool) bool {
	return d.Expand(maxSize, emit)
}
