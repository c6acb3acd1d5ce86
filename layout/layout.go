package layout

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors returned by the layout package.
var (
	// ErrNilTranspiler indicates a Tracker built without a transpiler.
	ErrNilTranspiler = errors.New("layout: transpiler is nil")

	// ErrNotCircuit indicates a nil circuit where one is required.
	ErrNotCircuit = errors.New("layout: input is not a circuit")

	// ErrNotInjective indicates two logical qubits sharing a physical image.
	ErrNotInjective = errors.New("layout: mapping is not injective")

	// ErrNegativeIndex indicates a negative qubit index in a mapping.
	ErrNegativeIndex = errors.New("layout: qubit index must be non-negative")

	// ErrUnmapped indicates a logical qubit without a physical image.
	ErrUnmapped = errors.New("layout: logical qubit is unmapped")

	// ErrLayoutInference indicates the transpiled circuit does not measure
	// every classical bit the inference needs.
	ErrLayoutInference = errors.New("layout: cannot infer final layout from measurements")

	// ErrMeasureAllOrder indicates the original circuit's measurements are
	// not an in-order measure-all.
	ErrMeasureAllOrder = errors.New("layout: original measurements are not an in-order measure-all")

	// ErrBitstringWidth indicates an outcome bitstring too narrow to cover
	// every mapped physical qubit.
	ErrBitstringWidth = errors.New("layout: bitstring does not cover the mapped physical qubits")
)

// Layout is an injective mapping from logical (circuit-declared) qubit
// indices to physical (device) qubit indices. Physical qubits without a
// preimage are unmapped. A Layout is immutable after construction.
type Layout struct {
	l2p map[int]int
	p2l map[int]int
}

// NewLayout validates and builds a layout from a logical→physical mapping.
func NewLayout(logicalToPhysical map[int]int) (Layout, error) {
	l2p := make(map[int]int, len(logicalToPhysical))
	p2l := make(map[int]int, len(logicalToPhysical))
	for logical, physical := range logicalToPhysical {
		if logical < 0 || physical < 0 {
			return Layout{}, fmt.Errorf("%w: %d→%d", ErrNegativeIndex, logical, physical)
		}
		if prior, taken := p2l[physical]; taken {
			return Layout{}, fmt.Errorf("%w: logical %d and %d both map to physical %d", ErrNotInjective, prior, logical, physical)
		}
		l2p[logical] = physical
		p2l[physical] = logical
	}

	return Layout{l2p: l2p, p2l: p2l}, nil
}

// Physical returns the physical image of a logical qubit.
func (l Layout) Physical(logical int) (int, bool) {
	p, ok := l.l2p[logical]

	return p, ok
}

// Logical returns the logical preimage of a physical qubit.
func (l Layout) Logical(physical int) (int, bool) {
	q, ok := l.p2l[physical]

	return q, ok
}

// Len returns the number of mapped logical qubits.
func (l Layout) Len() int { return len(l.l2p) }

// Apply maps each logical index to its physical image, preserving order.
// A missing image fails with ErrUnmapped.
func (l Layout) Apply(logical []int) ([]int, error) {
	out := make([]int, len(logical))
	for i, q := range logical {
		p, ok := l.l2p[q]
		if !ok {
			return nil, fmt.Errorf("%w: qubit %d", ErrUnmapped, q)
		}
		out[i] = p
	}

	return out, nil
}

// PermuteBitstring reorders a physical-indexed outcome bitstring into
// logical order: bit q of the result is the bit the input carries at
// logical qubit q's physical image. Bitstrings are little-endian (the
// rightmost character is index 0), so the result has Len() characters with
// logical qubit 0 rightmost.
//
// This is how counts keyed by physical qubits (a transpiled measure-all
// execution) are attributed back to the qubits the caller declared. The
// layout must map the contiguous logical range 0..Len()-1, and the input
// must be wide enough to cover every physical image.
func (l Layout) PermuteBitstring(physical string) (string, error) {
	width := len(physical)
	out := make([]byte, l.Len())
	for q := 0; q < len(out); q++ {
		p, ok := l.l2p[q]
		if !ok {
			return "", fmt.Errorf("%w: qubit %d", ErrUnmapped, q)
		}
		if p >= width {
			return "", fmt.Errorf("%w: physical qubit %d in a %d-bit string", ErrBitstringWidth, p, width)
		}
		out[len(out)-1-q] = physical[width-1-p]
	}

	return string(out), nil
}

// Logicals returns the mapped logical indices in increasing order.
func (l Layout) Logicals() []int {
	out := make([]int, 0, len(l.l2p))
	for q := range l.l2p {
		out = append(out, q)
	}
	sort.Ints(out)

	return out
}

// Equal reports whether both layouts hold the same mapping.
func (l Layout) Equal(other Layout) bool {
	if len(l.l2p) != len(other.l2p) {
		return false
	}
	for logical, physical := range l.l2p {
		if op, ok := other.l2p[logical]; !ok || op != physical {
			return false
		}
	}

	return true
}

// String renders the mapping in increasing logical order.
func (l Layout) String() string {
	s := "layout{"
	for i, q := range l.Logicals() {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d→%d", q, l.l2p[q])
	}

	return s + "}"
}
