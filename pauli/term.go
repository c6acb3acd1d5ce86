package pauli

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the pauli package.
var (
	// ErrEmptyTerm indicates a term with zero qubits.
	ErrEmptyTerm = errors.New("pauli: term has no qubits")

	// ErrBadLabel indicates a character outside {I, X, Y, Z}.
	ErrBadLabel = errors.New("pauli: invalid Pauli label")

	// ErrBadPhase indicates a phase exponent outside {0, 1, 2, 3}.
	ErrBadPhase = errors.New("pauli: phase must be a power of (-i) in 0..3")

	// ErrLengthMismatch indicates terms of different qubit counts were mixed.
	ErrLengthMismatch = errors.New("pauli: qubit count mismatch")

	// ErrBadIndex indicates a qubit index out of range for the term.
	ErrBadIndex = errors.New("pauli: qubit index out of range")
)

// Label is a single-qubit Pauli operator.
type Label byte

// The four single-qubit Pauli operators.
const (
	I Label = iota
	X
	Y
	Z
)

// String returns the one-letter name of the label.
func (l Label) String() string {
	switch l {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

// parseLabel converts a single character into a Label.
func parseLabel(c byte) (Label, error) {
	switch c {
	case 'I':
		return I, nil
	case 'X':
		return X, nil
	case 'Y':
		return Y, nil
	case 'Z':
		return Z, nil
	default:
		return I, fmt.Errorf("%w: %q", ErrBadLabel, string(c))
	}
}

// Term is a tensor product of single-qubit Pauli labels over a fixed number
// of qubits, together with a global phase recorded as a power of (-i):
// the physical operator is (-i)^phase · ⊗ labels.
//
// A Term is an immutable value: all methods return new values and never
// mutate the receiver.
type Term struct {
	labels []Label // labels[q] is the operator on qubit q
	phase  uint8   // power of (-i), always in 0..3
}

// NewTerm builds a Term from per-qubit labels (index = qubit index) and a
// phase exponent. The label slice is copied.
func NewTerm(labels []Label, phase int) (Term, error) {
	if len(labels) == 0 {
		return Term{}, ErrEmptyTerm
	}
	if phase < 0 || phase > 3 {
		return Term{}, fmt.Errorf("%w: got %d", ErrBadPhase, phase)
	}
	for _, l := range labels {
		if l > Z {
			return Term{}, fmt.Errorf("%w: byte %d", ErrBadLabel, l)
		}
	}
	cp := make([]Label, len(labels))
	copy(cp, labels)

	return Term{labels: cp, phase: uint8(phase)}, nil
}

// ParseTerm parses a Pauli string in little-endian convention: the rightmost
// character addresses qubit 0. An optional "+", "-", "i" or "-i" prefix sets
// the global phase ((+1, -1, +i, -i) respectively).
func ParseTerm(s string) (Term, error) {
	phase := 0
	switch {
	case strings.HasPrefix(s, "-i"):
		phase, s = 1, s[2:]
	case strings.HasPrefix(s, "-"):
		phase, s = 2, s[1:]
	case strings.HasPrefix(s, "+i"), strings.HasPrefix(s, "i"):
		phase, s = 3, strings.TrimPrefix(strings.TrimPrefix(s, "+"), "i")
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if len(s) == 0 {
		return Term{}, ErrEmptyTerm
	}
	n := len(s)
	labels := make([]Label, n)
	var err error
	for i := 0; i < n; i++ {
		// character i counts from the left; it addresses qubit n-1-i
		if labels[n-1-i], err = parseLabel(s[i]); err != nil {
			return Term{}, err
		}
	}

	return Term{labels: labels, phase: uint8(phase)}, nil
}

// MustParseTerm is ParseTerm that panics on error; intended for fixtures.
func MustParseTerm(s string) Term {
	t, err := ParseTerm(s)
	if err != nil {
		panic(err)
	}

	return t
}

// NumQubits returns the number of qubits the term acts on.
func (t Term) NumQubits() int { return len(t.labels) }

// Phase returns the phase exponent: the operator carries a factor (-i)^Phase.
func (t Term) Phase() int { return int(t.phase) }

// PhaseFactor returns the complex value of (-i)^Phase.
func (t Term) PhaseFactor() complex128 {
	switch t.phase {
	case 1:
		return complex(0, -1)
	case 2:
		return complex(-1, 0)
	case 3:
		return complex(0, 1)
	default:
		return complex(1, 0)
	}
}

// At returns the label acting on qubit q.
func (t Term) At(q int) (Label, error) {
	if q < 0 || q >= len(t.labels) {
		return I, fmt.Errorf("%w: qubit %d of %d", ErrBadIndex, q, len(t.labels))
	}

	return t.labels[q], nil
}

// Labels returns a copy of the per-qubit labels (index = qubit index).
func (t Term) Labels() []Label {
	out := make([]Label, len(t.labels))
	copy(out, t.labels)

	return out
}

// IsIdentity reports whether every qubit carries the label I.
func (t Term) IsIdentity() bool {
	for _, l := range t.labels {
		if l != I {
			return false
		}
	}

	return true
}

// Support returns the qubit indices with a non-I label, in increasing order.
func (t Term) Support() []int {
	idx := make([]int, 0, len(t.labels))
	for q, l := range t.labels {
		if l != I {
			idx = append(idx, q)
		}
	}

	return idx
}

// CommutesQubitWise reports whether t and other commute qubit-wise: for every
// qubit, the labels are equal or at least one of them is I.
func (t Term) CommutesQubitWise(other Term) (bool, error) {
	if len(t.labels) != len(other.labels) {
		return false, fmt.Errorf("%w: %d vs %d qubits", ErrLengthMismatch, len(t.labels), len(other.labels))
	}
	for q := range t.labels {
		a, b := t.labels[q], other.labels[q]
		if a != I && b != I && a != b {
			return false, nil
		}
	}

	return true, nil
}

// Restrict projects the term onto the given qubit indices, producing a term
// over len(indices) qubits whose qubit j carries the label of indices[j].
// The phase is preserved. Indices must be in range; duplicates are allowed.
func (t Term) Restrict(indices []int) (Term, error) {
	if len(indices) == 0 {
		return Term{}, ErrEmptyTerm
	}
	labels := make([]Label, len(indices))
	for j, q := range indices {
		if q < 0 || q >= len(t.labels) {
			return Term{}, fmt.Errorf("%w: qubit %d of %d", ErrBadIndex, q, len(t.labels))
		}
		labels[j] = t.labels[q]
	}

	return Term{labels: labels, phase: t.phase}, nil
}

// WithoutPhase returns the same tensor product with phase reset to 0.
func (t Term) WithoutPhase() Term {
	if t.phase == 0 {
		return t
	}

	return Term{labels: t.labels, phase: 0}
}

// Equal reports label-by-label and phase equality.
func (t Term) Equal(other Term) bool {
	if len(t.labels) != len(other.labels) || t.phase != other.phase {
		return false
	}
	for q := range t.labels {
		if t.labels[q] != other.labels[q] {
			return false
		}
	}

	return true
}

// String renders the term in the same little-endian convention ParseTerm
// reads, with a phase prefix when the phase is non-trivial.
func (t Term) String() string {
	var sb strings.Builder
	switch t.phase {
	case 1:
		sb.WriteString("-i")
	case 2:
		sb.WriteString("-")
	case 3:
		sb.WriteString("i")
	}
	for q := len(t.labels) - 1; q >= 0; q-- {
		sb.WriteString(t.labels[q].String())
	}

	return sb.String()
}

// Key returns the canonical phase-free map key for the tensor product.
func (t Term) Key() string {
	return t.WithoutPhase().String()
}
