// Package render draws diagrams as Graphviz node-link output: crossings
// become nodes, strand arcs become edges, and tangle boundary slots
// become anchored points. The layout is combinatorial, not a faithful
// planar embedding, but it makes the strand wiring inspectable.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/skeinlab/skein/pkg/diagram"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes strand levels on edge labels. When false, edges
	// are unlabeled.
	Detailed bool
}

var slotNames = [4]string{"NW", "NE", "SW", "SE"}

// ToDOT converts a diagram to Graphviz DOT format. The resulting DOT
// string can be rendered with [SVG].
func ToDOT(d *diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph D {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, c := range d.CrossingIndices() {
		sign := "+"
		if d.Sign(c) < 0 {
			sign = "-"
		}
		fmt.Fprintf(&buf, "  c%d [label=\"%d%s\"];\n", c, c, sign)
	}
	for s := range slotNames {
		if slotUsed(d, s) {
			fmt.Fprintf(&buf, "  b%d [shape=point, xlabel=%q];\n", s, slotNames[s])
		}
	}
	buf.WriteString("\n")

	edge := func(from, to string, strand int) {
		attrs := ""
		if opts.Detailed {
			label := "l"
			if strand == diagram.Upper {
				label = "u"
			}
			attrs = fmt.Sprintf(" [label=%q]", label)
		}
		fmt.Fprintf(&buf, "  %s -- %s%s;\n", from, to, attrs)
	}

	// One edge per arc, walked component by component so boundary stubs
	// attach to their slots.
	forEachArc(d, func(from, to diagram.StrandRef, comp, beginSlot, endSlot int) {
		tail, strand := "", diagram.Lower
		switch {
		case from.IsNull() && to.IsNull():
			// Crossing-free component: a closed loop draws as a self-edge
			// on a synthetic point, an open string joins its two slots.
			if beginSlot >= 0 {
				edge(fmt.Sprintf("b%d", beginSlot), fmt.Sprintf("b%d", endSlot), diagram.Lower)
			} else {
				fmt.Fprintf(&buf, "  u%d [shape=point]; u%d -- u%d;\n", comp, comp, comp)
			}
			return
		case from.IsNull():
			tail = fmt.Sprintf("b%d", beginSlot)
		default:
			tail = fmt.Sprintf("c%d", from.Crossing())
			strand = from.Strand()
		}
		head := fmt.Sprintf("b%d", endSlot)
		if !to.IsNull() {
			head = fmt.Sprintf("c%d", to.Crossing())
		}
		edge(tail, head, strand)
	})

	buf.WriteString("}\n")
	return buf.String()
}

// slotUsed reports whether any open string touches boundary slot s.
func slotUsed(d *diagram.Diagram, s int) bool {
	used := false
	forEachArc(d, func(from, to diagram.StrandRef, comp, beginSlot, endSlot int) {
		if beginSlot == s || endSlot == s {
			used = true
		}
	})
	return used
}

// forEachArc visits every arc of every component, including the boundary
// stubs of open strings. from/to are null at the tangle boundary;
// beginSlot/endSlot are -1 for closed components.
func forEachArc(d *diagram.Diagram, fn func(from, to diagram.StrandRef, comp, beginSlot, endSlot int)) {
	for i := 0; i < d.Components(); i++ {
		passes, beginSlot, endSlot := d.ComponentPasses(i)
		if len(passes) == 0 {
			fn(diagram.NullRef, diagram.NullRef, i, beginSlot, endSlot)
			continue
		}
		if beginSlot >= 0 {
			fn(diagram.NullRef, passes[0], i, beginSlot, endSlot)
			for k := 0; k+1 < len(passes); k++ {
				fn(passes[k], passes[k+1], i, beginSlot, endSlot)
			}
			fn(passes[len(passes)-1], diagram.NullRef, i, beginSlot, endSlot)
			continue
		}
		for k := range passes {
			fn(passes[k], passes[(k+1)%len(passes)], i, beginSlot, endSlot)
		}
	}
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
