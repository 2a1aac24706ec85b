package diagram

import (
	"errors"
	"strings"
	"testing"
)

func TestSignatureCanonical(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"unknot", "c:"},
		{"trefoil", "c:0-l,1-u,2-l,0u,1l,2u"},
		{"identity", "s02:;s13:"},
		{"horizontal", "s01:;s23:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustBuild(t, tt.name)
			if got := d.Signature(); got != tt.want {
				t.Errorf("Signature = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSignatureEntryInvariant(t *testing.T) {
	// The same trefoil written from a different entry pass must canonicalize
	// to the same signature.
	rotated := mustDecode(t, "c:0-u,1-l,2-u,0l,1u,2l")
	if got, want := rotated.Signature(), Trefoil().Signature(); got != want {
		t.Errorf("rotated trefoil Signature = %q, want %q", got, want)
	}
}

func TestSignatureMultiComponent(t *testing.T) {
	t.Run("unlink", func(t *testing.T) {
		d := mustDecode(t, "c:;c:")
		if got := d.Signature(); got != "c:;c:" {
			t.Errorf("Signature = %q, want %q", got, "c:;c:")
		}
		if d.Components() != 2 || d.Size() != 0 {
			t.Errorf("Components = %d, Size = %d; want 2, 0", d.Components(), d.Size())
		}
	})

	t.Run("hopf", func(t *testing.T) {
		// Written with the second loop first and awkward entries.
		d := mustDecode(t, "c:0+u,1+l;c:1u,0l")
		if got := d.Signature(); got != "c:0+l,1+u;c:0u,1l" {
			t.Errorf("Signature = %q, want %q", got, "c:0+l,1+u;c:0u,1l")
		}
		if d.Writhe() != 2 {
			t.Errorf("Writhe = %d, want 2", d.Writhe())
		}
	})
}

func TestSignatureRoundTrip(t *testing.T) {
	for _, name := range []string{"unknot", "trefoil", "figure8", "identity", "horizontal"} {
		t.Run(name, func(t *testing.T) {
			sig := mustBuild(t, name).Signature()
			back := mustDecode(t, sig)
			if err := back.Validate(); err != nil {
				t.Fatalf("decoded diagram invalid: %v", err)
			}
			if got := back.Signature(); got != sig {
				t.Errorf("round trip = %q, want %q", got, sig)
			}
		})
	}
}

func TestSignatureRoundTripOverMoves(t *testing.T) {
	// Every neighbour a diagram can reach must survive the encode/decode
	// cycle with its signature intact.
	for _, name := range []string{"trefoil", "identity"} {
		t.Run(name, func(t *testing.T) {
			d := mustBuild(t, name)
			d.Expand(d.Size()+2, func(child *Diagram) bool {
				sig := child.Signature()
				back, err := FromSignature(sig)
				if err != nil {
					t.Fatalf("FromSignature(%q): %v", sig, err)
				}
				if got := back.Signature(); got != sig {
					t.Errorf("round trip = %q, want %q", got, sig)
				}
				return false
			})
		})
	}
}

func TestFromSignatureErrors(t *testing.T) {
	tests := []struct {
		name string
		sig  string
	}{
		{"unknown component kind", "x:"},
		{"short string header", "s02"},
		{"bad slot digit", "s09:"},
		{"slot reused within string", "s00:"},
		{"slot reused across strings", "s02:;s12:"},
		{"missing sign on first visit", "c:0l,0u"},
		{"repeated sign", "c:0+l,0+u"},
		{"strand level revisited", "c:0+l,0l"},
		{"single visit", "c:0+l"},
		{"no level suffix", "c:0+"},
		{"no label", "c:+l"},
		{"garbage label", "c:0x+l"},
		{"empty component", "c:;"},
		{"open string in closed slotless form", "0+l,0u"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromSignature(tt.sig); !errors.Is(err, ErrInvalidSignature) {
				t.Errorf("FromSignature(%q) = %v, want ErrInvalidSignature", tt.sig, err)
			}
		})
	}
}

func TestFromSignatureAcceptsNonCanonical(t *testing.T) {
	// Decoding is deliberately lenient: any structurally sound encoding is
	// accepted, canonicalization happens on re-encode.
	d := mustDecode(t, "s13:;s02:")
	if got := d.Signature(); got != "s02:;s13:" {
		t.Errorf("Signature = %q, want %q", got, "s02:;s13:")
	}
}

func TestSignatureIsStable(t *testing.T) {
	// Signature must not mutate the diagram.
	d := Trefoil()
	first := d.Signature()
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate after Signature: %v", err)
	}
	if second := d.Signature(); second != first {
		t.Errorf("second Signature = %q, want %q", second, first)
	}
}

func TestSignatureGrammar(t *testing.T) {
	// Open components carry their slots and sort first; closed components
	// never carry slots.
	d := mustDecode(t, "c:;s31:;s02:")
	sig := d.Signature()
	parts := strings.Split(sig, ";")
	if len(parts) != 3 {
		t.Fatalf("Signature = %q, want 3 components", sig)
	}
	if parts[0] != "s02:" || parts[1] != "s31:" || parts[2] != "c:" {
		t.Errorf("Signature = %q, want open strings first in begin-slot order", sig)
	}
}
