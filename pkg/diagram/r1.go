package diagram

import "fmt"

// R1DownLegal reports whether the crossing at index c is a monogon: its
// upper pass connects directly to its own lower pass in either direction.
func (d *Diagram) R1DownLegal(c int) bool {
	if c < 0 || c >= len(d.crossings) || d.crossings[c].sign == 0 {
		return false
	}
	u := Strand(c, Upper)
	if n := d.next(u); !n.IsNull() && n.Crossing() == c {
		return true
	}
	if p := d.prev(u); !p.IsNull() && p.Crossing() == c {
		return true
	}
	return false
}

// R1Down removes the monogon at crossing c. The two passes of c are
// excised and the surviving strand is spliced straight through.
func (d *Diagram) R1Down(c int) error {
	if !d.R1DownLegal(c) {
		return fmt.Errorf("%w: R1 down at crossing %d", ErrIllegalMove, c)
	}
	d.excise(c)
	return nil
}

// R1UpLegal reports whether a kink can be inserted at arc position a. Any
// valid arc position admits the move for both sides and both signs.
func (d *Diagram) R1UpLegal(a Arc) bool {
	return d.validArc(a)
}

// R1Up inserts a kink at arc position a. side selects which side of the
// arc the new monogon bulges toward (0 = left of the strand direction)
// and sign gives the new crossing's sign. The diagram grows by exactly
// one crossing.
func (d *Diagram) R1Up(a Arc, side, sign int) error {
	if !d.validArc(a) {
		return fmt.Errorf("%w: R1 up at %v", ErrIllegalMove, a)
	}
	if (sign != 1 && sign != -1) || (side != 0 && side != 1) {
		return fmt.Errorf("%w: R1 up side=%d sign=%d", ErrIllegalMove, side, sign)
	}
	c := d.alloc(sign)
	lo, up := Strand(c, Lower), Strand(c, Upper)
	// The monogon is the short link between the two passes; side picks
	// which pass the strand reaches first.
	first, second := lo, up
	if side == 1 {
		first, second = up, lo
	}
	d.join(first, second)
	d.spliceArc(a, first, second)
	return nil
}
