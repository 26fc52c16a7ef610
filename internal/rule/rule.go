// Package rule turns sweep identifiers into turmite turning rules.
//
// Bit k of an identifier decides what the ant does on a cell in state k:
// a one turns it clockwise, a zero counter-clockwise. The number of states
// is the identifier's bit length, so identifiers whose bits are all ones
// (and zero, which has no bits) cannot produce a useful rule.
package rule

import (
	"math"
	"math/bits"
	"strings"

	errgo "gopkg.in/errgo.v1"
)

// MaxStates is the largest state count a 64-bit identifier can produce.
const MaxStates = 64

// ErrIneligible is the cause of errors returned by Derive for identifiers
// that cannot produce a rule.
var ErrIneligible = errgo.New("identifier is not eligible")

// Eligible reports whether id can be used as a rule source. Zero and
// identifiers of the form 2^k-1 are not eligible.
func Eligible(id uint64) bool {
	return (id+1)&id != 0
}

// BitLength returns the 1-based position of the most significant set bit
// of id, or 0 when id is zero.
func BitLength(id uint64) int {
	return bits.Len64(id)
}

// Rule is an immutable table of turn decisions, one per cell state.
type Rule struct {
	id    uint64
	n     int
	turns [MaxStates]bool
}

// Derive builds the rule for id. Bit k of id, inverted when invert is set,
// becomes the decision for state k, or for state n-1-k when reverse is set.
func Derive(id uint64, invert, reverse bool) (Rule, error) {
	if !Eligible(id) {
		return Rule{}, errgo.WithCausef(nil, ErrIneligible, "identifier %d is not eligible", id)
	}
	n := BitLength(id)
	r := Rule{id: id, n: n}
	for k := 0; k < n; k++ {
		v := (id>>uint(k))&1 == 1
		if invert {
			v = !v
		}
		if reverse {
			r.turns[n-1-k] = v
		} else {
			r.turns[k] = v
		}
	}
	return r, nil
}

// ID returns the identifier the rule was derived from.
func (r Rule) ID() uint64 { return r.id }

// States returns the number of cell states the rule cycles through.
func (r Rule) States() int { return r.n }

// Turn reports whether the ant turns clockwise on a cell in the given state.
func (r Rule) Turn(state uint8) bool { return r.turns[state] }

// Bits returns a copy of the turn table.
func (r Rule) Bits() []bool {
	out := make([]bool, r.n)
	copy(out, r.turns[:r.n])
	return out
}

// String renders the table as binary digits, state 0 first.
func (r Rule) String() string {
	var sb strings.Builder
	sb.Grow(r.n)
	for _, t := range r.turns[:r.n] {
		if t {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// NextEligible returns the smallest eligible identifier greater than id.
func NextEligible(id uint64) (uint64, bool) {
	for id < math.MaxUint64 {
		id++
		if Eligible(id) {
			return id, true
		}
	}
	return 0, false
}

// PrevEligible returns the largest eligible identifier smaller than id.
func PrevEligible(id uint64) (uint64, bool) {
	for id > 0 {
		id--
		if Eligible(id) {
			return id, true
		}
	}
	return 0, false
}
