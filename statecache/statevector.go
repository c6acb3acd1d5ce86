package statecache

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/qpest/pauli"
)

// Sentinel errors returned by the statecache package.
var (
	// ErrNilEvaluator indicates a cache built without an evaluator.
	ErrNilEvaluator = errors.New("statecache: evaluator is nil")

	// ErrCircuitIndex indicates an out-of-range circuit index.
	ErrCircuitIndex = errors.New("statecache: circuit index out of range")

	// ErrDimension indicates a statevector/operator qubit-count mismatch.
	ErrDimension = errors.New("statecache: dimension mismatch")
)

// Statevector is the exact quantum state of a fully bound circuit:
// 2^NumQubits complex amplitudes in computational-basis order, where basis
// index bit q corresponds to qubit q.
type Statevector struct {
	Amplitudes []complex128
	NumQubits  int
}

// Equal reports amplitude-wise equality within eps.
func (s Statevector) Equal(other Statevector, eps float64) bool {
	if s.NumQubits != other.NumQubits || len(s.Amplitudes) != len(other.Amplitudes) {
		return false
	}
	for i := range s.Amplitudes {
		if cmplx.Abs(s.Amplitudes[i]-other.Amplitudes[i]) > eps {
			return false
		}
	}

	return true
}

// ExpectationValue computes ⟨ψ|P|ψ⟩ for the Pauli term P.
//
// For a basis state |b⟩, P|b⟩ = c(b)·|b⊕m⟩ where m is the bitmask of X/Y
// positions and c(b) collects (-1) per Z or Y on a set bit and ±i per Y.
// The sum Σ_b conj(ψ[b⊕m])·c(b)·ψ[b], scaled by the term's phase factor,
// is the expectation value.
func (s Statevector) ExpectationValue(term pauli.Term) (complex128, error) {
	if term.NumQubits() != s.NumQubits {
		return 0, fmt.Errorf("%w: state has %d qubits, term has %d", ErrDimension, s.NumQubits, term.NumQubits())
	}
	dim := 1 << s.NumQubits
	if len(s.Amplitudes) != dim {
		return 0, fmt.Errorf("%w: %d amplitudes for %d qubits", ErrDimension, len(s.Amplitudes), s.NumQubits)
	}

	labels := term.Labels()
	var flipMask int
	for q, l := range labels {
		if l == pauli.X || l == pauli.Y {
			flipMask |= 1 << q
		}
	}

	var sum complex128
	for b := 0; b < dim; b++ {
		factor := complex(1, 0)
		for q, l := range labels {
			bit := (b >> q) & 1
			switch l {
			case pauli.Z:
				if bit == 1 {
					factor = -factor
				}
			case pauli.Y:
				if bit == 0 {
					factor *= complex(0, 1)
				} else {
					factor *= complex(0, -1)
				}
			case pauli.X, pauli.I:
				// no phase contribution
			}
		}
		sum += cmplx.Conj(s.Amplitudes[b^flipMask]) * factor * s.Amplitudes[b]
	}

	return term.PhaseFactor() * sum, nil
}
