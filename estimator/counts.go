package estimator

import (
	"fmt"

	"github.com/katalvlaran/qpest/circuit"
	"github.com/katalvlaran/qpest/measure"
	"github.com/katalvlaran/qpest/pauli"
)

// ExpectationFromCounts combines per-group measurement outcomes into the
// observable's expectation value. circs must be the circuits returned by
// PreprocessCircuits and counts their execution results, index-aligned.
//
// For each restricted term the eigenvalue of an outcome bitstring is
// (-1)^(parity of the measured bits on the term's support); the term
// contributes coefficient · eigenvalue weighted by shot frequency.
func (e *Estimator) ExpectationFromCounts(circs []*circuit.Circuit, counts []Counts) (float64, error) {
	if len(circs) != len(counts) {
		return 0, fmt.Errorf("%w: %d circuits, %d counts", ErrCountsMismatch, len(circs), len(counts))
	}

	var total float64
	for i, circ := range circs {
		groupValue, err := groupExpectation(circ, counts[i])
		if err != nil {
			return 0, fmt.Errorf("group %d: %w", i, err)
		}
		total += groupValue
	}

	return total, nil
}

// groupExpectation evaluates one measurement circuit's restricted terms
// against its counts.
func groupExpectation(circ *circuit.Circuit, counts Counts) (float64, error) {
	if circ == nil {
		return 0, ErrNilCircuit
	}
	terms, ok := circ.Metadata[measure.MetaPaulis].([]pauli.Term)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingMetadata, measure.MetaPaulis)
	}
	coeffs, ok := circ.Metadata[measure.MetaCoeffs].([]float64)
	if !ok || len(coeffs) != len(terms) {
		return 0, fmt.Errorf("%w: %s", ErrMissingMetadata, measure.MetaCoeffs)
	}

	shots := 0
	for _, n := range counts {
		shots += n
	}
	if shots == 0 {
		return 0, ErrEmptyCounts
	}

	width := 0
	if len(terms) > 0 {
		width = terms[0].NumQubits()
	}

	var value float64
	for bitstring, n := range counts {
		if len(bitstring) < width {
			return 0, fmt.Errorf("%w: %q for %d classical bits", ErrBitstringLength, bitstring, width)
		}
		weight := float64(n) / float64(shots)
		for ti, t := range terms {
			value += coeffs[ti] * eigenvalue(t, bitstring) * weight
		}
	}

	return value, nil
}

// eigenvalue returns ±1: the parity of the measured bits on the term's
// support. Bitstrings are little-endian, so classical bit j is the j-th
// character from the right.
func eigenvalue(t pauli.Term, bitstring string) float64 {
	parity := 0
	last := len(bitstring) - 1
	for _, j := range t.Support() {
		if bitstring[last-j] == '1' {
			parity ^= 1
		}
	}
	if parity == 1 {
		return -1
	}

	return 1
}
