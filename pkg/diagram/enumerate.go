package diagram

import "fmt"

// MoveKind identifies one of the five Reidemeister rewrites.
type MoveKind int

const (
	MoveR1Down MoveKind = iota
	MoveR1Up
	MoveR2Down
	MoveR2Up
	MoveR3
)

// String returns the conventional short name of the move kind.
func (k MoveKind) String() string {
	switch k {
	case MoveR1Down:
		return "r1-"
	case MoveR1Up:
		return "r1+"
	case MoveR2Down:
		return "r2-"
	case MoveR2Up:
		return "r2+"
	case MoveR3:
		return "r3"
	}
	return fmt.Sprintf("MoveKind(%d)", int(k))
}

// Move is a fully located Reidemeister move: the kind plus whichever
// parameters that kind needs. Moves are plain values produced by
// enumeration and consumed by Apply.
type Move struct {
	Kind MoveKind

	// Crossing locates R1Down, R2Down and R3.
	Crossing int
	// Side is the cell side for R3 and the bulge side for R1Up.
	Side int
	// Sign is the inserted crossing's sign for R1Up.
	Sign int
	// Arc is the insertion position for R1Up.
	Arc Arc

	// UpperArc/LowerArc and their cell sides locate R2Up.
	UpperArc  Arc
	LowerArc  Arc
	UpperSide int
	LowerSide int
}

// String renders the move compactly for logs.
func (m Move) String() string {
	switch m.Kind {
	case MoveR1Down, MoveR2Down:
		return fmt.Sprintf("%v@%d", m.Kind, m.Crossing)
	case MoveR3:
		return fmt.Sprintf("%v@%d/%d", m.Kind, m.Crossing, m.Side)
	case MoveR1Up:
		return fmt.Sprintf("%v %v side=%d sign=%+d", m.Kind, m.Arc, m.Side, m.Sign)
	case MoveR2Up:
		return fmt.Sprintf("%v %v/%d over %v/%d", m.Kind, m.UpperArc, m.UpperSide, m.LowerArc, m.LowerSide)
	}
	return m.Kind.String()
}

// Grows returns how many crossings applying the move adds (negative for
// the reduction moves).
func (m Move) Grows() int {
	switch m.Kind {
	case MoveR1Down:
		return -1
	case MoveR1Up:
		return 1
	case MoveR2Down:
		return -2
	case MoveR2Up:
		return 2
	}
	return 0
}

// Legal reports whether the move is currently applicable to d.
func (d *Diagram) Legal(m Move) bool {
	switch m.Kind {
	case MoveR1Down:
		return d.R1DownLegal(m.Crossing)
	case MoveR1Up:
		return d.R1UpLegal(m.Arc) && m.Side&^1 == 0 && (m.Sign == 1 || m.Sign == -1)
	case MoveR2Down:
		return d.R2DownLegal(m.Crossing)
	case MoveR2Up:
		return d.R2UpLegal(m.UpperArc, m.LowerArc) && m.UpperSide&^1 == 0 && m.LowerSide&^1 == 0
	case MoveR3:
		return d.R3Legal(m.Crossing, m.Side)
	}
	return false
}

// Apply performs the move, mutating d. On an illegal move d is left
// untouched and ErrIllegalMove is returned.
func (d *Diagram) Apply(m Move) error {
	switch m.Kind {
	case MoveR1Down:
		return d.R1Down(m.Crossing)
	case MoveR1Up:
		return d.R1Up(m.Arc, m.Side, m.Sign)
	case MoveR2Down:
		return d.R2Down(m.Crossing)
	case MoveR2Up:
		return d.R2Up(m.UpperArc, m.UpperSide, m.LowerArc, m.LowerSide)
	case MoveR3:
		return d.R3(m.Crossing, m.Side)
	}
	return fmt.Errorf("%w: unknown kind %v", ErrIllegalMove, m.Kind)
}

// Moves enumerates every legal move whose result has at most maxSize
// crossings. Reduction moves and R3 are offered regardless of the bound;
// insertions are offered only while they fit under it.
func (d *Diagram) Moves(maxSize int) []Move {
	var out []Move
	for _, c := range d.CrossingIndices() {
		if d.R1DownLegal(c) {
			out = append(out, Move{Kind: MoveR1Down, Crossing: c})
		}
		if d.R2DownLegal(c) {
			out = append(out, Move{Kind: MoveR2Down, Crossing: c})
		}
		for side := 0; side < 2; side++ {
			if d.R3Legal(c, side) {
				out = append(out, Move{Kind: MoveR3, Crossing: c, Side: side})
			}
		}
	}
	if d.size+1 <= maxSize {
		for _, a := range d.Arcs() {
			for side := 0; side < 2; side++ {
				for _, sign := range [2]int{1, -1} {
					out = append(out, Move{Kind: MoveR1Up, Arc: a, Side: side, Sign: sign})
				}
			}
		}
	}
	if d.size+2 <= maxSize {
		for _, cell := range d.Cells() {
			for i, up := range cell {
				for j, lo := range cell {
					if i == j || up.arc == lo.arc {
						continue
					}
					out = append(out, Move{
						Kind:      MoveR2Up,
						UpperArc:  up.arc,
						UpperSide: up.Side(),
						LowerArc:  lo.arc,
						LowerSide: lo.Side(),
					})
				}
			}
		}
	}
	return out
}

// Expand applies every move from Moves to a private clone of d and feeds
// the results to emit in enumeration order. Expansion stops early, and
// true is returned, when emit returns true. d itself is never mutated.
func (d *Diagram) Expand(maxSize int, emit func(*Diagram) bool) bool {
	for _, m := range d.Moves(maxSize) {
		child := d.Clone()
		if err := child.Apply(m); err != nil {
			continue
		}
		if emit(child) {
			return true
		}
	}
	return false
}
