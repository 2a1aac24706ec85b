package diagram

import "fmt"

// closedLoop builds a diagram with the given crossing signs and a single
// closed component visiting the listed passes in order.
func closedLoop(signs []int, passes []StrandRef) *Diagram {
	d := New()
	for _, s := range signs {
		d.alloc(s)
	}
	for i, r := range passes {
		d.join(r, passes[(i+1)%len(passes)])
	}
	d.comps = append(d.comps, component{
		closed: true, entry: passes[0], beginSlot: -1, endSlot: -1,
	})
	return d
}

// Unknot returns the crossing-free unknot.
func Unknot() *Diagram {
	d := New()
	d.comps = append(d.comps, component{closed: true, beginSlot: -1, endSlot: -1})
	return d
}

// Trefoil returns the standard left-handed trefoil diagram: three negative
// crossings, each strand alternating under and over.
func Trefoil() *Diagram {
	return closedLoop(
		[]int{-1, -1, -1},
		[]StrandRef{
			Strand(0, Lower), Strand(1, Upper), Strand(2, Lower),
			Strand(0, Upper), Strand(1, Lower), Strand(2, Upper),
		},
	)
}

// FigureEight returns the standard figure-eight knot diagram: four
// crossings, two positive and two negative.
func FigureEight() *Diagram {
	return closedLoop(
		[]int{1, 1, -1, -1},
		[]StrandRef{
			Strand(0, Lower), Strand(1, Upper), Strand(2, Lower), Strand(3, Upper),
			Strand(1, Lower), Strand(0, Upper), Strand(3, Lower), Strand(2, Upper),
		},
	)
}

// IdentityTangle returns the crossing-free two-string tangle whose strings
// run straight down: NW to SW and NE to SE.
func IdentityTangle() *Diagram {
	d := New()
	d.comps = append(d.comps,
		component{beginSlot: SlotNW, endSlot: SlotSW},
		component{beginSlot: SlotNE, endSlot: SlotSE},
	)
	return d
}

// HorizontalTangle returns the crossing-free two-string tangle whose
// strings run straight across: NW to NE and SW to SE.
func HorizontalTangle() *Diagram {
	d := New()
	d.comps = append(d.comps,
		component{beginSlot: SlotNW, endSlot: SlotNE},
		component{beginSlot: SlotSW, endSlot: SlotSE},
	)
	return d
}

// ByName returns a named starting diagram. Recognized names: unknot,
// trefoil, figure8, identity, horizontal.
func ByName(name string) (*Diagram, error) {
	switch name {
	case "unknot":
		return Unknot(), nil
	case "trefoil":
		return Trefoil(), nil
	case "figure8":
		return FigureEight(), nil
	case "identity":
		return IdentityTangle(), nil
	case "horizontal":
		return HorizontalTangle(), nil
	}
	return nil, fmt.Errorf("unknown diagram %q", name)
}

// Reduce greedily applies R1 and R2 reductions until none is legal,
// returning the number of crossings removed. The result is a local
// minimum, not necessarily a minimal diagram.
func (d *Diagram) Reduce() int {
	removed := 0
	for {
		again := false
		for _, c := range d.CrossingIndices() {
			if d.R1DownLegal(c) {
				if d.R1Down(c) == nil {
					removed++
					again = true
					break
				}
			}
			if d.R2DownLegal(c) {
				if d.R2Down(c) == nil {
					removed += 2
					again = true
					break
				}
			}
		}
		if !again {
			return removed
		}
	}
}
