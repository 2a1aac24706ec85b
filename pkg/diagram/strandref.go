package diagram

import "fmt"

// Strand indices for the two strands passing through a crossing.
const (
	// Lower is the strand that passes under the crossing.
	Lower = 0
	// Upper is the strand that passes over the crossing.
	Upper = 1
)

// StrandRef identifies a single strand-end: one of the two directed strand
// passes through a specific crossing. The zero value is the null reference,
// which marks the loose ends of a tangle's open strings.
//
// StrandRef is a small value type; compare with == and use freely as a map
// key. References use stable arena indices, so they remain valid across
// unrelated mutations and can never dangle into freed memory silently -
// Validate catches references into free slots.
type StrandRef struct {
	// id packs (crossing<<1 | strand) + 1; zero means null.
	id int32
}

// NullRef is the null strand reference. It equals the zero value.
var NullRef = StrandRef{}

// Strand builds a reference to the given strand (Lower or Upper) of the
// crossing at the given arena index.
func Strand(crossing int, strand int) StrandRef {
	return StrandRef{id: (int32(crossing)<<1 | int32(strand&1)) + 1}
}

// IsNull reports whether r is the null reference.
func (r StrandRef) IsNull() bool { return r.id == 0 }

// Crossing returns the arena index of the referenced crossing, or -1 for
// the null reference.
func (r StrandRef) Crossing() int {
	if r.id == 0 {
		return -1
	}
	return int((r.id - 1) >> 1)
}

// Strand returns the strand index (Lower or Upper). The null reference
// returns Lower.
func (r StrandRef) Strand() int {
	if r.id == 0 {
		return 0
	}
	return int((r.id - 1) & 1)
}

// Other returns the opposite strand-end of the same crossing.
// Calling Other on the null reference returns the null reference.
func (r StrandRef) Other() StrandRef {
	if r.id == 0 {
		return r
	}
	return Strand(r.Crossing(), 1-r.Strand())
}

// String renders the reference as "<index>l" or "<index>u", or "-" for null.
func (r StrandRef) String() string {
	if r.IsNull() {
		return "-"
	}
	if r.Strand() == Upper {
		return fmt.Sprintf("%du", r.Crossing())
	}
	return fmt.Sprintf("%dl", r.Crossing())
}
