package diagram

import "fmt"

// R2DownLegal reports whether crossing c anchors a removable bigon: its
// upper pass leads directly into the upper pass of a distinct crossing of
// opposite sign, and the two lower passes are likewise adjacent (in either
// direction).
func (d *Diagram) R2DownLegal(c int) bool {
	if c < 0 || c >= len(d.crossings) || d.crossings[c].sign == 0 {
		return false
	}
	x := d.next(Strand(c, Upper))
	if x.IsNull() || x.Crossing() == c || x.Strand() != Upper {
		return false
	}
	e := x.Crossing()
	if d.crossings[e].sign != -d.crossings[c].sign {
		return false
	}
	lo, elo := Strand(c, Lower), Strand(e, Lower)
	return d.next(lo) == elo || d.prev(lo) == elo
}

// R2Down removes the bigon anchored at crossing c, excising both of its
// crossings. The run-based excision handles the degenerate configurations
// where the bigon's strands fold back through the same pair of crossings.
func (d *Diagram) R2Down(c int) error {
	if !d.R2DownLegal(c) {
		return fmt.Errorf("%w: R2 down at crossing %d", ErrIllegalMove, c)
	}
	e := d.next(Strand(c, Upper)).Crossing()
	d.excise(c, e)
	return nil
}

// R2UpLegal reports whether a bigon can be threaded between the two arc
// positions. The arcs must both exist and be distinct; two incidences of
// one arc do not admit the move.
func (d *Diagram) R2UpLegal(upper, lower Arc) bool {
	return d.validArc(upper) && d.validArc(lower) && upper != lower
}

// R2Up threads the upper arc over the lower arc, inserting one positive
// and one negative crossing. upperSide and lowerSide give the side (0 =
// left of the strand direction) from which each arc faces the shared
// cell; they fix the chirality of the new bigon and whether the strands
// run parallel or antiparallel through it. The result is immediately
// removable by R2Down at either new crossing.
func (d *Diagram) R2Up(upper Arc, upperSide int, lower Arc, lowerSide int) error {
	if !d.R2UpLegal(upper, lower) {
		return fmt.Errorf("%w: R2 up between %v and %v", ErrIllegalMove, upper, lower)
	}
	if upperSide&^1 != 0 || lowerSide&^1 != 0 {
		return fmt.Errorf("%w: R2 up sides %d/%d", ErrIllegalMove, upperSide, lowerSide)
	}
	sgn := -1
	if lowerSide == 1 {
		sgn = 1
	}
	d1 := d.alloc(sgn)
	d2 := d.alloc(-sgn)

	// The upper strand passes over both new crossings in order d1, d2.
	d.join(Strand(d1, Upper), Strand(d2, Upper))
	d.spliceArc(upper, Strand(d1, Upper), Strand(d2, Upper))

	if upperSide != lowerSide {
		// Parallel: the lower strand runs the same direction, d1 then d2.
		d.join(Strand(d1, Lower), Strand(d2, Lower))
		d.spliceArc(lower, Strand(d1, Lower), Strand(d2, Lower))
	} else {
		// Antiparallel: the lower strand meets d2 first.
		d.join(Strand(d2, Lower), Strand(d1, Lower))
		d.spliceArc(lower, Strand(d2, Lower), Strand(d1, Lower))
	}
	return nil
}
