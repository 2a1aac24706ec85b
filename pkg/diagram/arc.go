package diagram

import "fmt"

// Arc names one arc position in a diagram: the strand segment that starts
// immediately after a crossing pass, or the leading segment of a
// component. Insertions (R1 up, R2 up) happen at arc positions.
//
// When from is non-null the arc is the segment leaving that pass. When
// from is null the arc is the leading segment of component comp: the piece
// between an open string's begin slot and its first crossing, or the whole
// circle of a crossing-free closed component.
type Arc struct {
	from StrandRef
	comp int32
}

// ArcAfter returns the arc position immediately following the given pass.
func ArcAfter(r StrandRef) Arc {
	return Arc{from: r}
}

// LeadingArc returns the leading arc of component i: an open string's
// first segment, or a crossing-free closed component's circle.
func LeadingArc(i int) Arc {
	return Arc{comp: int32(i)}
}

// From returns the pass the arc leaves, or the null reference for a
// leading arc.
func (a Arc) From() StrandRef { return a.from }

// String renders the arc as "after <ref>" or "lead <comp>".
func (a Arc) String() string {
	if a.from.IsNull() {
		return fmt.Sprintf("lead %d", a.comp)
	}
	return fmt.Sprintf("after %v", a.from)
}

// validArc reports whether a names a real arc position in d.
func (d *Diagram) validArc(a Arc) bool {
	if !a.from.IsNull() {
		return d.liveRef(a.from)
	}
	i := int(a.comp)
	if i < 0 || i >= len(d.comps) {
		return false
	}
	// A closed component's leading arc only exists while it has no
	// crossings; otherwise every arc follows some pass.
	return !d.comps[i].closed || d.comps[i].entry.IsNull()
}

// Arcs returns every arc position in the diagram: one per strand pass plus
// the leading arcs of open strings and crossing-free closed components.
func (d *Diagram) Arcs() []Arc {
	out := make([]Arc, 0, 2*d.size+len(d.comps))
	for i := range d.comps {
		if d.validArc(LeadingArc(i)) {
			out = append(out, LeadingArc(i))
		}
	}
	for i := range d.crossings {
		if d.crossings[i].sign == 0 {
			continue
		}
		out = append(out, ArcAfter(Strand(i, Lower)), ArcAfter(Strand(i, Upper)))
	}
	return out
}
