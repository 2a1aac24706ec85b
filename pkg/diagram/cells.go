package diagram

// The planar structure of a diagram is recovered from crossing signs via
// compass ports. Each crossing has four ports in the rotation N, E, S, W.
// The lower strand always enters at W and leaves at E. The upper strand of
// a positive crossing enters at S and leaves at N; a negative crossing
// flips it. A cell (2-cell of the underlying 4-valent planar graph) is
// walked by always leaving through the port clockwise-adjacent to the
// arrival port.

const (
	portN = 0
	portE = 1
	portS = 2
	portW = 3
)

// incidence is one directed side of an arc: the arc itself plus the
// direction it is being walked in. back=false walks with the strand
// orientation and sees the cell on the arc's left; back=true walks
// against it and sees the right.
type incidence struct {
	arc  Arc
	back bool
}

// Side returns 0 when the incidence faces the cell from the arc's left
// and 1 from its right. R2 insertion uses it to orient the new bigon.
func (in incidence) Side() int {
	if in.back {
		return 1
	}
	return 0
}

// outPort returns the port through which the strand leaves pass r.
func (d *Diagram) outPort(r StrandRef) int {
	if r.Strand() == Lower {
		return portE
	}
	if d.crossings[r.Crossing()].sign > 0 {
		return portN
	}
	return portS
}

// inPort returns the port through which the strand arrives at pass r.
func (d *Diagram) inPort(r StrandRef) int {
	if r.Strand() == Lower {
		return portW
	}
	if d.crossings[r.Crossing()].sign > 0 {
		return portS
	}
	return portN
}

// passAtPort returns the pass owning the given port of crossing c, and
// whether the port is an out port (the strand leaves through it).
func (d *Diagram) passAtPort(c, port int) (StrandRef, bool) {
	lo, up := Strand(c, Lower), Strand(c, Upper)
	switch port {
	case portE:
		return lo, true
	case portW:
		return lo, false
	}
	if d.outPort(up) == port {
		return up, true
	}
	return up, false
}

// ccwSlot maps a tangle boundary slot to the next slot counterclockwise
// around the tangle's disc: NW -> SW -> SE -> NE -> NW.
func ccwSlot(s int8) int8 {
	switch s {
	case SlotNW:
		return SlotSW
	case SlotSW:
		return SlotSE
	case SlotSE:
		return SlotNE
	default:
		return SlotNW
	}
}

// arcHead returns the pass an incidence's walk arrives at, or the null
// reference when the walk exits through the tangle boundary. For forward
// incidences this is the arc's target pass; for backward ones its source.
func (d *Diagram) arcHead(in incidence) StrandRef {
	if in.back {
		return in.arc.from
	}
	if in.arc.from.IsNull() {
		c := &d.comps[in.arc.comp]
		if c.closed {
			return NullRef // crossing-free loop, no crossings to arrive at
		}
		return c.begin
	}
	return d.next(in.arc.from)
}

// enterAtSlot returns the incidence that continues a cell walk entering
// the tangle through boundary slot s.
func (d *Diagram) enterAtSlot(s int8) incidence {
	for i := range d.comps {
		c := &d.comps[i]
		if c.closed {
			continue
		}
		if c.beginSlot == s {
			// Enter with the strand: walk its leading arc forward.
			return incidence{arc: LeadingArc(i)}
		}
		if c.endSlot == s {
			// Enter against the strand: walk its last arc backward.
			if c.end.IsNull() {
				return incidence{arc: LeadingArc(i), back: true}
			}
			return incidence{arc: ArcAfter(c.end), back: true}
		}
	}
	return incidence{} // unreachable on a valid tangle
}

// leadingIncidence converts a pass into the incidence of the arc arriving
// at it from behind: the arc after prev(r), or the string's leading arc.
func (d *Diagram) leadingIncidence(r StrandRef, back bool) incidence {
	p := d.prev(r)
	if p.IsNull() {
		return incidence{arc: LeadingArc(d.stringBeginning(r)), back: back}
	}
	return incidence{arc: ArcAfter(p), back: back}
}

// cellStep advances a cell walk by one arc, turning clockwise at the
// arrived crossing or re-entering across the tangle boundary.
func (d *Diagram) cellStep(in incidence) incidence {
	head := d.arcHead(in)
	if head.IsNull() {
		if in.arc.from.IsNull() && d.comps[in.arc.comp].closed {
			// A crossing-free loop bounds its cell alone on each side.
			return in
		}
		// Boundary exit: forward walks leave through the string's end
		// slot, backward walks (head is null only on a leading arc)
		// through its begin slot.
		var slot int8
		switch {
		case in.back:
			slot = d.comps[in.arc.comp].beginSlot
		case in.arc.from.IsNull():
			slot = d.comps[in.arc.comp].endSlot
		default:
			slot = d.comps[d.stringEnding(in.arc.from)].endSlot
		}
		return d.enterAtSlot(ccwSlot(slot))
	}

	// Arrive at head through its in port (forward) or out port (backward),
	// leave through the clockwise-adjacent port.
	var arrive int
	if in.back {
		arrive = d.outPort(head)
	} else {
		arrive = d.inPort(head)
	}
	leave := (arrive + 1) % 4
	r2, isOut := d.passAtPort(head.Crossing(), leave)
	if isOut {
		return incidence{arc: ArcAfter(r2)}
	}
	return d.leadingIncidence(r2, true)
}

// cellFrom collects the cell containing the given incidence, in walk
// order. The walk always closes up on a valid diagram.
func (d *Diagram) cellFrom(start incidence) []incidence {
	cell := []incidence{start}
	cur := start
	limit := 4*d.size + 2*len(d.comps) + 4
	for range limit {
		cur = d.cellStep(cur)
		if cur == start {
			return cell
		}
		cell = append(cell, cur)
	}
	return cell // corrupt diagram; Validate reports the real error
}

// Cells partitions every directed arc incidence of the diagram into its
// planar 2-cells.
func (d *Diagram) Cells() [][]incidence {
	visited := make(map[incidence]bool)
	var cells [][]incidence

	collect := func(start incidence) {
		if visited[start] {
			return
		}
		cell := d.cellFrom(start)
		for _, in := range cell {
			visited[in] = true
		}
		cells = append(cells, cell)
	}

	for i := range d.comps {
		if d.validArc(LeadingArc(i)) {
			collect(incidence{arc: LeadingArc(i)})
			collect(incidence{arc: LeadingArc(i), back: true})
		}
	}
	for c := range d.crossings {
		if d.crossings[c].sign == 0 {
			continue
		}
		for s := 0; s < 2; s++ {
			a := ArcAfter(Strand(c, s))
			collect(incidence{arc: a})
			collect(incidence{arc: a, back: true})
		}
	}
	return cells
}
