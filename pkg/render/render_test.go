package render

import (
	"strings"
	"testing"

	"github.com/skeinlab/skein/pkg/diagram"
)

func TestToDOTTrefoil(t *testing.T) {
	dot := ToDOT(diagram.Trefoil(), Options{})

	if !strings.HasPrefix(dot, "graph D {") {
		t.Errorf("missing graph header:\n%s", dot)
	}
	for _, want := range []string{`c0 [label="0-"]`, `c1 [label="1-"]`, `c2 [label="2-"]`} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in:\n%s", want, dot)
		}
	}
	// A closed 3-crossing loop draws 6 arc edges and no boundary points.
	if got := strings.Count(dot, " -- "); got != 6 {
		t.Errorf("edges = %d, want 6", got)
	}
	if strings.Contains(dot, "b0") {
		t.Errorf("boundary point on a closed diagram:\n%s", dot)
	}
}

func TestToDOTTangle(t *testing.T) {
	dot := ToDOT(diagram.IdentityTangle(), Options{})

	for _, want := range []string{"b0", "b1", "b2", "b3", "xlabel=\"NW\"", "xlabel=\"SE\""} {
		if !strings.Contains(dot, want) {
			t.Errorf("missing %q in:\n%s", want, dot)
		}
	}
	// Two crossing-free strings, one edge each.
	if got := strings.Count(dot, " -- "); got != 2 {
		t.Errorf("edges = %d, want 2", got)
	}
}

func TestToDOTUnknot(t *testing.T) {
	dot := ToDOT(diagram.Unknot(), Options{})
	if !strings.Contains(dot, "u0 -- u0") {
		t.Errorf("crossing-free loop missing its self-edge:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	plain := ToDOT(diagram.Trefoil(), Options{})
	detailed := ToDOT(diagram.Trefoil(), Options{Detailed: true})

	if strings.Contains(plain, `label="u"`) {
		t.Error("plain output carries strand labels")
	}
	if !strings.Contains(detailed, `label="u"`) || !strings.Contains(detailed, `label="l"`) {
		t.Errorf("detailed output missing strand labels:\n%s", detailed)
	}
}
