package diagram

import "fmt"

// r3Walk walks the cell on the given side of the arc leaving c's upper
// pass and reports whether it is a slidable triangle. On success it
// returns the three triangle edges in strand order (tail pass, head pass),
// tails first.
func (d *Diagram) r3Walk(c, side int) (edges [3][2]StrandRef, ok bool) {
	if c < 0 || c >= len(d.crossings) || d.crossings[c].sign == 0 {
		return edges, false
	}
	start := incidence{arc: ArcAfter(Strand(c, Upper)), back: side == 1}
	cur := start
	var heads [3]StrandRef
	for i := 0; i < 3; i++ {
		head := d.arcHead(cur)
		if head.IsNull() {
			return edges, false // leaks through the tangle boundary
		}
		heads[i] = head
		edges[i] = [2]StrandRef{cur.arc.from, d.next(cur.arc.from)}
		cur = d.cellStep(cur)
	}
	if cur != start {
		return edges, false // cell is not a triangle
	}
	if heads[0].Crossing() == heads[1].Crossing() ||
		heads[1].Crossing() == heads[2].Crossing() ||
		heads[0].Crossing() == heads[2].Crossing() {
		return edges, false
	}
	// A triangle whose three edges all enter on the same level has the
	// cyclic over/under pattern and cannot slide.
	if heads[0].Strand() == heads[1].Strand() && heads[1].Strand() == heads[2].Strand() {
		return edges, false
	}
	return edges, true
}

// R3Legal reports whether the cell on the given side (0 = left, 1 = right)
// of the arc leaving crossing c's upper pass is a slidable triangle: three
// pairwise-distinct crossings, closed walk, and an acyclic over/under
// pattern.
func (d *Diagram) R3Legal(c, side int) bool {
	_, ok := d.r3Walk(c, side)
	return ok
}

// R3 slides the strand across the triangle at (c, side). Each triangle
// edge has its two crossing passes swapped along their strand; edges that
// already form a 2-cycle are structurally unchanged by the swap and are
// skipped. The crossing count and all signs are preserved.
func (d *Diagram) R3(c, side int) error {
	edges, ok := d.r3Walk(c, side)
	if !ok {
		return fmt.Errorf("%w: R3 at crossing %d side %d", ErrIllegalMove, c, side)
	}
	for _, e := range edges {
		t, h := e[0], e[1]
		if d.next(h) == t {
			continue
		}
		// P -> t -> h -> N becomes P -> h -> t -> N.
		d.rerouteTo(t, h)
		d.rerouteFrom(h, t)
		d.join(h, t)
	}
	return nil
}
