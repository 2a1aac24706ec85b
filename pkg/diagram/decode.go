package diagram

import (
	"fmt"
	"strings"
)

// FromSignature parses a signature encoding back into a diagram. The input
// need not be canonical, but it must be structurally sound: every crossing
// label appears exactly twice, once per strand level, with its sign on the
// first occurrence, and boundary slots are used at most once. Errors wrap
// ErrInvalidSignature.
func FromSignature(sig string) (*Diagram, error) {
	d := New()
	if sig == "" {
		return d, nil
	}

	labels := make(map[string]int)   // label -> arena index
	strands := make(map[string]int)  // label -> bitmask of seen strand levels
	usedSlots := make(map[int8]bool) // boundary slots

	// decodePass parses one token and returns the pass it names.
	decodePass := func(tok string) (StrandRef, error) {
		if len(tok) < 2 {
			return NullRef, fmt.Errorf("%w: short token %q", ErrInvalidSignature, tok)
		}
		level := tok[len(tok)-1]
		if level != 'l' && level != 'u' {
			return NullRef, fmt.Errorf("%w: token %q has no strand level", ErrInvalidSignature, tok)
		}
		body := tok[:len(tok)-1]
		sign := 0
		if c := body[len(body)-1]; c == '+' || c == '-' {
			sign = 1
			if c == '-' {
				sign = -1
			}
			body = body[:len(body)-1]
		}
		if body == "" {
			return NullRef, fmt.Errorf("%w: token %q has no label", ErrInvalidSignature, tok)
		}
		for i := 0; i < len(body); i++ {
			if body[i] < '0' || body[i] > '9' {
				return NullRef, fmt.Errorf("%w: bad label in token %q", ErrInvalidSignature, tok)
			}
		}

		idx, seen := labels[body]
		switch {
		case !seen && sign == 0:
			return NullRef, fmt.Errorf("%w: first visit of %q carries no sign", ErrInvalidSignature, tok)
		case seen && sign != 0:
			return NullRef, fmt.Errorf("%w: repeated sign on %q", ErrInvalidSignature, tok)
		case !seen:
			idx = d.alloc(sign)
			labels[body] = idx
		}
		s := Lower
		if level == 'u' {
			s = Upper
		}
		bit := 1 << s
		if strands[body]&bit != 0 {
			return NullRef, fmt.Errorf("%w: strand level revisited in token %q", ErrInvalidSignature, tok)
		}
		strands[body] |= bit
		return Strand(idx, s), nil
	}

	// decodeChain parses a token list into linked passes and returns the
	// first and last, or nulls for an empty body.
	decodeChain := func(body string) (first, last StrandRef, err error) {
		if body == "" {
			return NullRef, NullRef, nil
		}
		for _, tok := range strings.Split(body, ",") {
			r, err := decodePass(tok)
			if err != nil {
				return NullRef, NullRef, err
			}
			if first.IsNull() {
				first = r
			} else {
				d.join(last, r)
			}
			last = r
		}
		return first, last, nil
	}

	claimSlot := func(c byte) (int8, error) {
		if c < '0' || c > '3' {
			return 0, fmt.Errorf("%w: boundary slot %q", ErrInvalidSignature, c)
		}
		s := int8(c - '0')
		if usedSlots[s] {
			return 0, fmt.Errorf("%w: boundary slot %c reused", ErrInvalidSignature, c)
		}
		usedSlots[s] = true
		return s, nil
	}

	for _, part := range strings.Split(sig, ";") {
		switch {
		case strings.HasPrefix(part, "c:"):
			first, last, err := decodeChain(part[2:])
			if err != nil {
				return nil, err
			}
			if !first.IsNull() {
				d.join(last, first)
			}
			d.comps = append(d.comps, component{
				closed: true, entry: first, beginSlot: -1, endSlot: -1,
			})
		case len(part) >= 4 && part[0] == 's' && part[3] == ':':
			bs, err := claimSlot(part[1])
			if err != nil {
				return nil, err
			}
			es, err := claimSlot(part[2])
			if err != nil {
				return nil, err
			}
			first, last, err := decodeChain(part[4:])
			if err != nil {
				return nil, err
			}
			d.comps = append(d.comps, component{
				begin: first, end: last, beginSlot: bs, endSlot: es,
			})
		default:
			return nil, fmt.Errorf("%w: component %q", ErrInvalidSignature, part)
		}
	}

	for label, mask := range strands {
		if mask != 0b11 {
			return nil, fmt.Errorf("%w: crossing %q visited on one strand only", ErrInvalidSignature, label)
		}
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return d, nil
}
