package diagram

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove is returned when a move's preconditions do not hold at
	// the requested location. The diagram is left untouched.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidArc is returned when an arc position does not exist in the
	// diagram (freed crossing, out-of-range component, or a leading arc
	// requested on a closed component that has crossings).
	ErrInvalidArc = errors.New("invalid arc position")

	// ErrInvalidSignature is returned by FromSignature when the encoding
	// cannot be parsed or describes an inconsistent diagram.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrCorrupt is returned by Validate when the internal structure
	// violates an invariant. Seeing this error means a move implementation
	// has a bug; it is never the caller's fault.
	ErrCorrupt = errors.New("corrupt diagram")
)

// Boundary slot indices for the four open ends of a tangle.
const (
	SlotNW = 0
	SlotNE = 1
	SlotSW = 2
	SlotSE = 3
)

// crossing is one arena slot: a signed 4-valent node with per-strand
// successor and predecessor links. sign==0 marks a free slot.
type crossing struct {
	sign int8
	next [2]StrandRef
	prev [2]StrandRef
}

// component is one strand of the diagram: a closed loop or an open string.
// For closed components entry is any strand-end on the loop (null for a
// crossing-free unknot component). For open strings begin/end are the
// first/last crossing passes (null if the string crosses nothing) and
// beginSlot/endSlot are the boundary slots the string occupies.
type component struct {
	closed    bool
	entry     StrandRef
	begin     StrandRef
	end       StrandRef
	beginSlot int8
	endSlot   int8
}

// Diagram is a mutable knot, link or tangle diagram. It owns its crossings:
// their lifetime is exactly the diagram's, and removed crossings return to
// an internal free list so strand references keep stable indices.
//
// A Diagram is not safe for concurrent mutation; the exploration engine
// gives every worker a private Clone.
type Diagram struct {
	crossings []crossing
	free      []int32
	comps     []component
	size      int
}

// New returns an empty diagram with no components. Most callers want one
// of the named constructors (Unknot, Trefoil, IdentityTangle, ...) or
// FromSignature instead.
func New() *Diagram {
	return &Diagram{}
}

// Size returns the number of live crossings.
func (d *Diagram) Size() int { return d.size }

// Components returns the number of strands (closed loops plus open strings).
func (d *Diagram) Components() int { return len(d.comps) }

// Strings returns the number of open strings. A tangle has two, a link none.
func (d *Diagram) Strings() int {
	n := 0
	for i := range d.comps {
		if !d.comps[i].closed {
			n++
		}
	}
	return n
}

// Writhe returns the sum of all crossing signs.
func (d *Diagram) Writhe() int {
	w := 0
	for i := range d.crossings {
		if d.crossings[i].sign != 0 {
			w += int(d.crossings[i].sign)
		}
	}
	return w
}

// Sign returns the sign (+1 or -1) of the crossing at the given arena
// index, or 0 if the index is free or out of range.
func (d *Diagram) Sign(crossing int) int {
	if crossing < 0 || crossing >= len(d.crossings) {
		return 0
	}
	return int(d.crossings[crossing].sign)
}

// Next returns the strand-end that follows r along its strand, or the null
// reference if r exits through a tangle boundary.
func (d *Diagram) Next(r StrandRef) StrandRef {
	return d.crossings[r.Crossing()].next[r.Strand()]
}

// Prev returns the strand-end that precedes r along its strand, or the
// null reference if r is the first pass of an open string.
func (d *Diagram) Prev(r StrandRef) StrandRef {
	return d.crossings[r.Crossing()].prev[r.Strand()]
}

// ComponentPasses returns component i's crossing passes in strand order,
// plus its boundary slots (-1 for closed components). Crossing-free
// components return no passes.
func (d *Diagram) ComponentPasses(i int) (passes []StrandRef, beginSlot, endSlot int) {
	comp := &d.comps[i]
	if comp.closed {
		beginSlot, endSlot = -1, -1
		if comp.entry.IsNull() {
			return nil, beginSlot, endSlot
		}
		for r := comp.entry; ; {
			passes = append(passes, r)
			r = d.next(r)
			if r == comp.entry {
				return passes, beginSlot, endSlot
			}
		}
	}
	beginSlot, endSlot = int(comp.beginSlot), int(comp.endSlot)
	for r := comp.begin; !r.IsNull(); r = d.next(r) {
		passes = append(passes, r)
	}
	return passes, beginSlot, endSlot
}

// CrossingIndices returns the arena indices of all live crossings in
// ascending order.
func (d *Diagram) CrossingIndices() []int {
	out := make([]int, 0, d.size)
	for i := range d.crossings {
		if d.crossings[i].sign != 0 {
			out = append(out, i)
		}
	}
	return out
}

// Clone returns an independent deep copy. Arena indices are preserved, so
// strand references into the original identify the same crossings in the
// copy.
func (d *Diagram) Clone() *Diagram {
	c := &Diagram{
		crossings: append([]crossing(nil), d.crossings...),
		free:      append([]int32(nil), d.free...),
		comps:     append([]component(nil), d.comps...),
		size:      d.size,
	}
	return c
}

// cr returns the arena slot for a live strand reference.
func (d *Diagram) cr(r StrandRef) *crossing {
	return &d.crossings[r.Crossing()]
}

func (d *Diagram) next(r StrandRef) StrandRef { return d.cr(r).next[r.Strand()] }
func (d *Diagram) prev(r StrandRef) StrandRef { return d.cr(r).prev[r.Strand()] }

func (d *Diagram) setNext(r, to StrandRef) { d.cr(r).next[r.Strand()] = to }
func (d *Diagram) setPrev(r, to StrandRef) { d.cr(r).prev[r.Strand()] = to }

// join connects from -> to, updating both half-links.
func (d *Diagram) join(from, to StrandRef) {
	d.setNext(from, to)
	d.setPrev(to, from)
}

// alloc takes a crossing slot off the free list (or grows the arena) and
// returns its index.
func (d *Diagram) alloc(sign int) int {
	var idx int32
	if n := len(d.free); n > 0 {
		idx = d.free[n-1]
		d.free = d.free[:n-1]
	} else {
		idx = int32(len(d.crossings))
		d.crossings = append(d.crossings, crossing{})
	}
	d.crossings[idx] = crossing{sign: int8(sign)}
	d.size++
	return int(idx)
}

// release returns a crossing slot to the free list. Callers must already
// have rerouted every external link around the crossing.
func (d *Diagram) release(idx int) {
	d.crossings[idx] = crossing{}
	d.free = append(d.free, int32(idx))
	d.size--
}

// stringBeginning returns the index of the open string whose first pass is
// ref, or -1.
func (d *Diagram) stringBeginning(ref StrandRef) int {
	for i := range d.comps {
		if !d.comps[i].closed && d.comps[i].begin == ref {
			return i
		}
	}
	return -1
}

// stringEnding returns the index of the open string whose last pass is
// ref, or -1.
func (d *Diagram) stringEnding(ref StrandRef) int {
	for i := range d.comps {
		if !d.comps[i].closed && d.comps[i].end == ref {
			return i
		}
	}
	return -1
}

// rerouteTo redirects whatever currently points into oldEnd so that it
// points into newSource instead, updating both half-links. If nothing
// points into oldEnd because it is the first pass of an open string, the
// string's begin field is redirected. newSource must not be null.
func (d *Diagram) rerouteTo(oldEnd, newSource StrandRef) {
	p := d.prev(oldEnd)
	if p.IsNull() {
		i := d.stringBeginning(oldEnd)
		d.comps[i].begin = newSource
		d.setPrev(newSource, NullRef)
		return
	}
	d.join(p, newSource)
}

// rerouteFrom redirects whatever oldStart currently points to so that it
// is pointed to from newTarget instead. If oldStart points at a tangle
// boundary (it is the last pass of an open string), the string's end field
// is redirected. newTarget must not be null.
func (d *Diagram) rerouteFrom(oldStart, newTarget StrandRef) {
	n := d.next(oldStart)
	if n.IsNull() {
		i := d.stringEnding(oldStart)
		d.comps[i].end = newTarget
		d.setNext(newTarget, NullRef)
		return
	}
	d.join(newTarget, n)
}

// splice describes one pending reconnection computed by excise: the strand
// run between p and n is being removed. Null endpoints refer to the open
// string recorded in comp.
type splice struct {
	p, n  StrandRef
	pComp int // string whose begin must change when p is null
	nComp int // string whose end must change when n is null
}

// excise removes whole crossings from the diagram: every strand pass of
// every doomed crossing is cut out and the surviving neighbours are
// spliced together. All external endpoints are read before any pointer is
// written, so the surgery is correct even when the doomed passes sit on
// the same strand in pathological orders (the shared-loop bigon cases).
//
// Component entries and string begin/end fields that referenced a doomed
// crossing are re-seated onto surviving passes, or nulled when a component
// loses all of its crossings.
func (d *Diagram) excise(doomed ...int) {
	inSet := func(r StrandRef) bool {
		if r.IsNull() {
			return false
		}
		for _, c := range doomed {
			if r.Crossing() == c {
				return true
			}
		}
		return false
	}

	// Read phase: collect maximal doomed runs and their survivors.
	var splices []splice
	for _, c := range doomed {
		for s := 0; s < 2; s++ {
			q := Strand(c, s)
			p := d.prev(q)
			if inSet(p) {
				continue // interior of a run
			}
			last := q
			for {
				n := d.next(last)
				if !inSet(n) {
					break
				}
				last = n
			}
			sp := splice{p: p, n: d.next(last), pComp: -1, nComp: -1}
			if sp.p.IsNull() {
				sp.pComp = d.stringBeginning(q)
			}
			if sp.n.IsNull() {
				sp.nComp = d.stringEnding(last)
			}
			splices = append(splices, sp)
		}
	}

	// Re-seat closed-component entries while the old pointers are intact.
	for i := range d.comps {
		comp := &d.comps[i]
		if !comp.closed || comp.entry.IsNull() || !inSet(comp.entry) {
			continue
		}
		seat := NullRef
		cur := comp.entry
		for range 2 * d.size {
			cur = d.next(cur)
			if !inSet(cur) {
				seat = cur
				break
			}
			if cur == comp.entry {
				break // the whole loop is doomed
			}
		}
		comp.entry = seat
	}

	// Write phase: apply the splices.
	for _, sp := range splices {
		switch {
		case sp.p.IsNull() && sp.n.IsNull():
			d.comps[sp.pComp].begin = NullRef
			d.comps[sp.nComp].end = NullRef
		case sp.p.IsNull():
			d.comps[sp.pComp].begin = sp.n
			d.setPrev(sp.n, NullRef)
		case sp.n.IsNull():
			d.comps[sp.nComp].end = sp.p
			d.setNext(sp.p, NullRef)
		default:
			d.join(sp.p, sp.n)
		}
	}

	for _, c := range doomed {
		d.release(c)
	}
}

// spliceArc threads the chain first..last into the arc position a: the arc
// that used to run q -> r becomes q -> first and last -> r, with boundary
// bookkeeping when either side of the arc is a tangle loose end or the
// component is a crossing-free loop. The internal links of the chain must
// already be in place.
func (d *Diagram) spliceArc(a Arc, first, last StrandRef) {
	if a.from.IsNull() {
		comp := &d.comps[a.comp]
		if comp.closed {
			// Crossing-free loop: the chain becomes the whole component.
			d.join(last, first)
			comp.entry = first
			return
		}
		r := comp.begin
		comp.begin = first
		d.setPrev(first, NullRef)
		if r.IsNull() {
			comp.end = last
			d.setNext(last, NullRef)
			return
		}
		d.join(last, r)
		return
	}
	q := a.from
	r := d.next(q)
	d.join(q, first)
	if r.IsNull() {
		i := d.stringEnding(q)
		// q is no longer the string's last pass; last is.
		d.comps[i].end = last
		d.setNext(last, NullRef)
		return
	}
	d.join(last, r)
}

// Validate checks every structural invariant: mutual next/prev links,
// boundary bookkeeping, component reachability, live signs, and that each
// crossing is visited exactly once per strand. It returns nil for a valid
// diagram and an error wrapping ErrCorrupt otherwise.
//
// Validate is cheap (linear in the number of crossings) and is run by the
// test suite after every move.
func (d *Diagram) Validate() error {
	live := 0
	for i := range d.crossings {
		c := &d.crossings[i]
		if c.sign == 0 {
			continue
		}
		live++
		if c.sign != 1 && c.sign != -1 {
			return fmt.Errorf("%w: crossing %d has sign %d", ErrCorrupt, i, c.sign)
		}
		for s := 0; s < 2; s++ {
			r := Strand(i, s)
			if n := c.next[s]; !n.IsNull() {
				if !d.liveRef(n) {
					return fmt.Errorf("%w: %v.next dangles into %v", ErrCorrupt, r, n)
				}
				if d.prev(n) != r {
					return fmt.Errorf("%w: %v.next=%v but %v.prev=%v", ErrCorrupt, r, n, n, d.prev(n))
				}
			} else if d.stringEnding(r) < 0 {
				return fmt.Errorf("%w: %v has null next but is no string's end", ErrCorrupt, r)
			}
			if p := c.prev[s]; !p.IsNull() {
				if !d.liveRef(p) {
					return fmt.Errorf("%w: %v.prev dangles into %v", ErrCorrupt, r, p)
				}
				if d.next(p) != r {
					return fmt.Errorf("%w: %v.prev=%v but %v.next=%v", ErrCorrupt, r, p, p, d.next(p))
				}
			} else if d.stringBeginning(r) < 0 {
				return fmt.Errorf("%w: %v has null prev but is no string's begin", ErrCorrupt, r)
			}
		}
	}
	if live != d.size {
		return fmt.Errorf("%w: size %d but %d live crossings", ErrCorrupt, d.size, live)
	}

	// Every pass must be reachable from exactly one component traversal.
	seen := make(map[StrandRef]bool, 2*d.size)
	slots := make(map[int8]bool, 4)
	for i := range d.comps {
		comp := &d.comps[i]
		if comp.closed {
			if comp.entry.IsNull() {
				continue
			}
			cur := comp.entry
			for {
				if seen[cur] {
					return fmt.Errorf("%w: pass %v on two strands", ErrCorrupt, cur)
				}
				seen[cur] = true
				cur = d.next(cur)
				if cur.IsNull() {
					return fmt.Errorf("%w: closed component %d hits a boundary", ErrCorrupt, i)
				}
				if cur == comp.entry {
					break
				}
			}
			continue
		}
		if slots[comp.beginSlot] || slots[comp.endSlot] || comp.beginSlot == comp.endSlot {
			return fmt.Errorf("%w: boundary slot reused by string %d", ErrCorrupt, i)
		}
		slots[comp.beginSlot] = true
		slots[comp.endSlot] = true
		if comp.begin.IsNull() != comp.end.IsNull() {
			return fmt.Errorf("%w: string %d has mismatched begin/end", ErrCorrupt, i)
		}
		if comp.begin.IsNull() {
			continue
		}
		cur := comp.begin
		for {
			if seen[cur] {
				return fmt.Errorf("%w: pass %v on two strands", ErrCorrupt, cur)
			}
			seen[cur] = true
			if d.next(cur).IsNull() {
				break
			}
			cur = d.next(cur)
		}
		if cur != comp.end {
			return fmt.Errorf("%w: string %d ends at %v, recorded %v", ErrCorrupt, i, cur, comp.end)
		}
	}
	if len(seen) != 2*d.size {
		return fmt.Errorf("%w: %d passes reachable, want %d", ErrCorrupt, len(seen), 2*d.size)
	}
	return nil
}

// liveRef reports whether r points at a live crossing slot.
func (d *Diagram) liveRef(r StrandRef) bool {
	c := r.Crossing()
	return c >= 0 && c < len(d.crossings) && d.crossings[c].sign != 0
}
