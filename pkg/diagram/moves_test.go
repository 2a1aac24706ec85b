package diagram

import (
	"errors"
	"testing"
)

func TestR1RoundTripOnLoop(t *testing.T) {
	for _, side := range []int{0, 1} {
		for _, sign := range []int{1, -1} {
			d := Unknot()
			if err := d.R1Up(LeadingArc(0), side, sign); err != nil {
				t.Fatalf("R1Up(side=%d sign=%d): %v", side, sign, err)
			}
			if err := d.Validate(); err != nil {
				t.Fatalf("invalid after R1Up: %v", err)
			}
			if d.Size() != 1 || d.Writhe() != sign {
				t.Fatalf("Size=%d Writhe=%d after R1Up, want 1 and %d", d.Size(), d.Writhe(), sign)
			}

			if !d.R1DownLegal(0) {
				t.Fatal("kink not recognized by R1DownLegal")
			}
			if err := d.R1Down(0); err != nil {
				t.Fatalf("R1Down: %v", err)
			}
			if err := d.Validate(); err != nil {
				t.Fatalf("invalid after R1Down: %v", err)
			}
			if got := d.Signature(); got != "c:" {
				t.Errorf("Signature = %q after round trip, want %q", got, "c:")
			}
		}
	}
}

func TestR1RoundTripOnString(t *testing.T) {
	d := IdentityTangle()
	want := d.Signature()

	if err := d.R1Up(LeadingArc(0), 0, 1); err != nil {
		t.Fatalf("R1Up: %v", err)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("invalid after R1Up: %v", err)
	}
	if err := d.R1Down(0); err != nil {
		t.Fatalf("R1Down: %v", err)
	}
	if got := d.Signature(); got != want {
		t.Errorf("Signature = %q after round trip, want %q", got, want)
	}
}

func TestR1DownIllegal(t *testing.T) {
	d := Trefoil()
	for _, c := range d.CrossingIndices() {
		if d.R1DownLegal(c) {
			t.Errorf("R1DownLegal(%d) on the trefoil", c)
		}
	}
	if err := d.R1Down(0); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("R1Down = %v, want ErrIllegalMove", err)
	}
	if d.R1DownLegal(-1) || d.R1DownLegal(99) {
		t.Error("R1DownLegal accepts out-of-range indices")
	}
}

func TestR2RoundTrip(t *testing.T) {
	// Thread one string of the identity tangle over the other, in every
	// side combination, then undo the bigon.
	for _, upperSide := range []int{0, 1} {
		for _, lowerSide := range []int{0, 1} {
			d := IdentityTangle()
			if err := d.R2Up(LeadingArc(0), upperSide, LeadingArc(1), lowerSide); err != nil {
				t.Fatalf("R2Up(%d,%d): %v", upperSide, lowerSide, err)
			}
			if err := d.Validate(); err != nil {
				t.Fatalf("invalid after R2Up(%d,%d): %v", upperSide, lowerSide, err)
			}
			if d.Size() != 2 || d.Writhe() != 0 {
				t.Fatalf("Size=%d Writhe=%d after R2Up, want 2 and 0", d.Size(), d.Writhe())
			}

			// The bigon must be removable at one of the two new crossings.
			anchor := -1
			for _, c := range d.CrossingIndices() {
				if d.R2DownLegal(c) {
					anchor = c
					break
				}
			}
			if anchor < 0 {
				t.Fatalf("no R2Down anchor after R2Up(%d,%d)", upperSide, lowerSide)
			}
			if err := d.R2Down(anchor); err != nil {
				t.Fatalf("R2Down: %v", err)
			}
			if err := d.Validate(); err != nil {
				t.Fatalf("invalid after R2Down: %v", err)
			}
			if got := d.Signature(); got != "s02:;s13:" {
				t.Errorf("Signature = %q after round trip, want %q", got, "s02:;s13:")
			}
		}
	}
}

func TestR2UpRejectsSameArc(t *testing.T) {
	d := Unknot()
	if d.R2UpLegal(LeadingArc(0), LeadingArc(0)) {
		t.Error("R2UpLegal accepts one arc twice")
	}
	if err := d.R2Up(LeadingArc(0), 0, LeadingArc(0), 1); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("R2Up = %v, want ErrIllegalMove", err)
	}
}

func TestR2DownIllegal(t *testing.T) {
	d := Trefoil()
	for _, c := range d.CrossingIndices() {
		if d.R2DownLegal(c) {
			t.Errorf("R2DownLegal(%d) on the trefoil", c)
		}
	}
	if err := d.R2Down(1); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("R2Down = %v, want ErrIllegalMove", err)
	}
}

// r3Tangle is a two-string tangle with a slidable triangle: one string
// passes under, over, over; the other runs beneath crossings 1 and 2.
const r3Tangle = "s01:0-l,1-u,2+u,0u;s23:1l,2l"

func r3Moves(d *Diagram) []Move {
	var out []Move
	for _, m := range d.Moves(d.Size()) {
		if m.Kind == MoveR3 {
			out = append(out, m)
		}
	}
	return out
}

func TestR3(t *testing.T) {
	d := mustDecode(t, r3Tangle)
	before := d.Signature()

	moves := r3Moves(d)
	if len(moves) != 1 {
		t.Fatalf("R3 moves = %v, want exactly one", moves)
	}
	if err := d.Apply(moves[0]); err != nil {
		t.Fatalf("Apply(%v): %v", moves[0], err)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("invalid after R3: %v", err)
	}
	if d.Size() != 3 || d.Writhe() != -1 {
		t.Errorf("Size=%d Writhe=%d after R3, want 3 and -1", d.Size(), d.Writhe())
	}
	mid := d.Signature()
	if mid == before {
		t.Fatal("R3 left the signature unchanged")
	}

	// Sliding back across the same triangle restores the diagram.
	moves = r3Moves(d)
	if len(moves) != 1 {
		t.Fatalf("R3 moves after slide = %v, want exactly one", moves)
	}
	if err := d.Apply(moves[0]); err != nil {
		t.Fatalf("Apply(%v): %v", moves[0], err)
	}
	if got := d.Signature(); got != before {
		t.Errorf("Signature = %q after double slide, want %q", got, before)
	}
}

func TestR3IllegalOnTrefoil(t *testing.T) {
	// The trefoil's triangles have the cyclic over/under pattern, so no
	// strand can slide.
	d := Trefoil()
	for _, c := range d.CrossingIndices() {
		for side := 0; side < 2; side++ {
			if d.R3Legal(c, side) {
				t.Errorf("R3Legal(%d, %d) on the trefoil", c, side)
			}
		}
	}
	if err := d.R3(0, 0); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("R3 = %v, want ErrIllegalMove", err)
	}
}

func TestMovesRespectsBound(t *testing.T) {
	d := Trefoil()

	if got := d.Moves(3); len(got) != 0 {
		t.Errorf("Moves(3) = %v, want none on a minimal trefoil", got)
	}

	// One more crossing of headroom admits kinks but not bigons.
	kinds := map[MoveKind]int{}
	for _, m := range d.Moves(4) {
		kinds[m.Kind]++
	}
	// 6 arcs, 2 sides, 2 signs.
	if kinds[MoveR1Up] != 24 {
		t.Errorf("R1Up moves = %d, want 24", kinds[MoveR1Up])
	}
	if kinds[MoveR2Up] != 0 {
		t.Errorf("R2Up moves = %d under a one-crossing budget, want 0", kinds[MoveR2Up])
	}

	kinds = map[MoveKind]int{}
	for _, m := range d.Moves(5) {
		kinds[m.Kind]++
	}
	if kinds[MoveR2Up] == 0 {
		t.Error("no R2Up moves under a two-crossing budget")
	}
}

func TestMovesOnIdentityTangle(t *testing.T) {
	kinds := map[MoveKind]int{}
	for _, m := range IdentityTangle().Moves(2) {
		kinds[m.Kind]++
	}
	// 2 leading arcs, 2 sides, 2 signs.
	if kinds[MoveR1Up] != 8 {
		t.Errorf("R1Up moves = %d, want 8", kinds[MoveR1Up])
	}
	// The middle cell holds one incidence of each string, in both orders.
	if kinds[MoveR2Up] != 2 {
		t.Errorf("R2Up moves = %d, want 2", kinds[MoveR2Up])
	}
}

func TestMovesAllApplyCleanly(t *testing.T) {
	for _, name := range []string{"unknot", "trefoil", "figure8", "identity", "horizontal"} {
		t.Run(name, func(t *testing.T) {
			d := mustBuild(t, name)
			maxSize := d.Size() + 2
			for _, m := range d.Moves(maxSize) {
				if !d.Legal(m) {
					t.Errorf("enumerated move %v not Legal", m)
					continue
				}
				child := d.Clone()
				if err := child.Apply(m); err != nil {
					t.Errorf("Apply(%v): %v", m, err)
					continue
				}
				if err := child.Validate(); err != nil {
					t.Errorf("invalid after %v: %v", m, err)
				}
				if got, want := child.Size(), d.Size()+m.Grows(); got != want {
					t.Errorf("Size = %d after %v, want %d", got, m, want)
				}
				if child.Size() > maxSize {
					t.Errorf("move %v exceeds the size bound", m)
				}
			}
		})
	}
}

func TestExpandStopsEarly(t *testing.T) {
	d := Trefoil()
	seen := 0
	stopped := d.Expand(4, func(*Diagram) bool {
		seen++
		return seen == 3
	})
	if !stopped {
		t.Error("Expand = false, want true when emit stops it")
	}
	if seen != 3 {
		t.Errorf("emit called %d times, want 3", seen)
	}
	if d.Size() != 3 {
		t.Errorf("Expand mutated the receiver: Size = %d", d.Size())
	}
}

func TestMoveKindString(t *testing.T) {
	tests := []struct {
		kind MoveKind
		want string
	}{
		{MoveR1Down, "r1-"},
		{MoveR1Up, "r1+"},
		{MoveR2Down, "r2-"},
		{MoveR2Up, "r2+"},
		{MoveR3, "r3"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestApplyUnknownKind(t *testing.T) {
	d := Unknot()
	if err := d.Apply(Move{Kind: MoveKind(42)}); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Apply = %v, want ErrIllegalMove", err)
	}
}
