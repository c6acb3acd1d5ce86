package measure

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qpest/circuit"
	"github.com/katalvlaran/qpest/decompose"
	"github.com/katalvlaran/qpest/pauli"
)

// Metadata keys attached to synthesized measurement circuits.
const (
	// MetaMeasuredQubits holds the []int of measured qubit indices.
	MetaMeasuredQubits = "measured_qubit_indices"

	// MetaPaulis holds the []pauli.Term restricted to measured qubits.
	MetaPaulis = "paulis"

	// MetaCoeffs holds the []float64 of real-projected coefficients.
	MetaCoeffs = "coeffs"

	// MetaDiscardedImag holds the float64 largest imaginary magnitude the
	// real projection of the coefficients dropped.
	MetaDiscardedImag = "discarded_imag"
)

// BuildPauliMeasurement synthesizes the basis-change-plus-measurement
// circuit for a single Pauli term. Qubits labelled I are neither touched
// nor measured; the all-identity term measures qubit 0 by convention.
func BuildPauliMeasurement(term pauli.Term) (*circuit.Circuit, error) {
	n := term.NumQubits()
	if n == 0 {
		return nil, pauli.ErrEmptyTerm
	}

	indices := term.Support()
	if len(indices) == 0 {
		indices = []int{0}
	}

	circ, err := circuit.New(n, len(indices))
	if err != nil {
		return nil, err
	}
	if err = applyBasisChange(circ, term); err != nil {
		return nil, err
	}
	for cb, q := range indices {
		if err = circ.Measure(q, cb); err != nil {
			return nil, err
		}
	}
	circ.Metadata[MetaMeasuredQubits] = indices

	return circ, nil
}

// BuildSingleMeasurementCircuit synthesizes one measurement circuit for all
// terms of obs at once. The terms must commute qubit-wise: the union basis
// is otherwise ambiguous and the call fails with decompose.ErrNonCommuting.
//
// The returned circuit's metadata records the measured qubit indices, the
// terms restricted to the measured-qubit subspace, and the real-projected
// coefficients aligned with those terms.
func BuildSingleMeasurementCircuit(obs *pauli.Observable) (*circuit.Circuit, error) {
	if obs == nil {
		return nil, pauli.ErrNilObservable
	}

	basis, err := decompose.GroupBasis(obs.Terms())
	if err != nil {
		return nil, err
	}

	circ, err := BuildPauliMeasurement(basis)
	if err != nil {
		return nil, err
	}

	indices, ok := circ.Metadata[MetaMeasuredQubits].([]int)
	if !ok {
		return nil, fmt.Errorf("measure: missing measured indices on synthesized circuit")
	}

	terms := obs.Terms()
	restricted := make([]pauli.Term, len(terms))
	for i, t := range terms {
		if restricted[i], err = t.Restrict(indices); err != nil {
			return nil, err
		}
	}

	coeffs, discarded := RealProjection(obs.Coefficients())

	circ.Metadata[MetaPaulis] = restricted
	circ.Metadata[MetaCoeffs] = coeffs
	circ.Metadata[MetaDiscardedImag] = discarded

	return circ, nil
}

// applyBasisChange appends the pre-measurement rotations for term onto circ,
// visiting qubits from highest to lowest index.
func applyBasisChange(circ *circuit.Circuit, term pauli.Term) error {
	for q := term.NumQubits() - 1; q >= 0; q-- {
		l, err := term.At(q)
		if err != nil {
			return err
		}
		switch l {
		case pauli.X:
			if err = circ.H(q); err != nil {
				return err
			}
		case pauli.Y:
			if err = circ.Sdg(q); err != nil {
				return err
			}
			if err = circ.H(q); err != nil {
				return err
			}
		case pauli.Z, pauli.I:
			// Z measures natively; I is untouched.
		}
	}

	return nil
}

// RealProjection keeps the real part of each coefficient and returns the
// projected values together with the largest imaginary magnitude discarded.
// This is the deliberate approximation expectation-value estimation relies
// on: coefficients are assumed effectively real after canonicalization.
func RealProjection(coeffs []complex128) ([]float64, float64) {
	out := make([]float64, len(coeffs))
	var maxImag float64
	for i, c := range coeffs {
		out[i] = real(c)
		if im := math.Abs(imag(c)); im > maxImag {
			maxImag = im
		}
	}

	return out, maxImag
}
