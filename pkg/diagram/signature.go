package diagram

import (
	"strconv"
	"strings"
)

// The signature grammar encodes a diagram as its component traversals,
// joined by ';'. An open string reads "s<beginSlot><endSlot>:" followed by
// its passes; a closed component reads "c:". Each pass token is the
// crossing's label (assigned in order of first visit), the crossing's sign
// ('+' or '-', written on the first visit only) and the strand level
// ('l' or 'u'). The crossing-free identity tangle is "s02:;s13:".
//
// Open strings are pinned by their boundary slots and always come first in
// beginSlot order. Closed components are free to start anywhere, so the
// signature minimizes lexicographically over their order and entry passes.
// The result is a complete invariant of the labelled strand graph: equal
// signatures mean isomorphic diagrams.

// sigEncoder carries the label assignment state of one candidate
// traversal.
type sigEncoder struct {
	d      *Diagram
	labels map[int]int
	sb     strings.Builder
}

func (e *sigEncoder) clone() *sigEncoder {
	c := &sigEncoder{d: e.d, labels: make(map[int]int, len(e.labels))}
	for k, v := range e.labels {
		c.labels[k] = v
	}
	c.sb.WriteString(e.sb.String())
	return c
}

func (e *sigEncoder) pass(r StrandRef) {
	c := r.Crossing()
	label, seen := e.labels[c]
	if !seen {
		label = len(e.labels)
		e.labels[c] = label
	}
	e.sb.WriteString(strconv.Itoa(label))
	if !seen {
		if e.d.crossings[c].sign > 0 {
			e.sb.WriteByte('+')
		} else {
			e.sb.WriteByte('-')
		}
	}
	if r.Strand() == Upper {
		e.sb.WriteByte('u')
	} else {
		e.sb.WriteByte('l')
	}
}

// openComp encodes open string i.
func (e *sigEncoder) openComp(i int) {
	comp := &e.d.comps[i]
	e.sb.WriteByte('s')
	e.sb.WriteByte('0' + byte(comp.beginSlot))
	e.sb.WriteByte('0' + byte(comp.endSlot))
	e.sb.WriteByte(':')
	first := true
	for r := comp.begin; !r.IsNull(); r = e.d.next(r) {
		if !first {
			e.sb.WriteByte(',')
		}
		first = false
		e.pass(r)
	}
}

// closedComp encodes closed component i starting at entry.
func (e *sigEncoder) closedComp(i int, entry StrandRef) {
	e.sb.WriteString("c:")
	if entry.IsNull() {
		return
	}
	r := entry
	first := true
	for {
		if !first {
			e.sb.WriteByte(',')
		}
		first = false
		e.pass(r)
		r = e.d.next(r)
		if r == entry {
			return
		}
	}
}

// loopPasses returns every pass of closed component i in strand order.
func (d *Diagram) loopPasses(i int) []StrandRef {
	entry := d.comps[i].entry
	if entry.IsNull() {
		return nil
	}
	var out []StrandRef
	for r := entry; ; {
		out = append(out, r)
		r = d.next(r)
		if r == entry {
			return out
		}
	}
}

// Signature returns the canonical encoding of d.
func (d *Diagram) Signature() string {
	var opens, closed []int
	for i := range d.comps {
		if d.comps[i].closed {
			closed = append(closed, i)
		} else {
			opens = append(opens, i)
		}
	}
	// Open strings are fixed in place; sort by begin slot.
	for a := 1; a < len(opens); a++ {
		for b := a; b > 0 && d.comps[opens[b]].beginSlot < d.comps[opens[b-1]].beginSlot; b-- {
			opens[b], opens[b-1] = opens[b-1], opens[b]
		}
	}

	base := &sigEncoder{d: d, labels: make(map[int]int, d.size)}
	for k, i := range opens {
		if k > 0 {
			base.sb.WriteByte(';')
		}
		base.openComp(i)
	}

	best := ""
	haveBest := false
	used := make([]bool, len(closed))
	var rec func(e *sigEncoder, placed int)
	rec = func(e *sigEncoder, placed int) {
		if placed == len(closed) {
			s := e.sb.String()
			if !haveBest || s < best {
				best, haveBest = s, true
			}
			return
		}
		for k, i := range closed {
			if used[k] {
				continue
			}
			used[k] = true
			entries := d.loopPasses(i)
			if entries == nil {
				entries = []StrandRef{NullRef}
			}
			for _, entry := range entries {
				c := e.clone()
				if placed > 0 || len(opens) > 0 {
					c.sb.WriteByte(';')
				}
				c.closedComp(i, entry)
				rec(c, placed+1)
			}
			used[k] = false
		}
	}
	rec(base, 0)
	if !haveBest {
		return base.sb.String()
	}
	return best
}
