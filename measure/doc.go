// Package measure synthesizes basis-change-plus-measurement circuits for
// Pauli terms and for whole commuting term sets.
//
// Basis changes follow the standard rotations into the computational basis:
//
//   - X → Hadamard before measuring
//   - Y → inverse-S, then Hadamard, before measuring
//   - Z → nothing
//   - I → the qubit is not touched and not measured
//
// Classical bits are allocated 1:1 with measured qubits in increasing qubit
// order, and each measured qubit lands in its classical bit in that same
// order. A term that is the identity on every qubit still measures qubit 0 —
// a fixed bookkeeping convention, not an empty measurement.
//
// The synthesized circuit carries its bookkeeping in Metadata:
//
//   - MetaMeasuredQubits ([]int)        — the measured qubit indices.
//   - MetaPaulis        ([]pauli.Term)  — group terms restricted to the
//     measured-qubit subspace (BuildSingleMeasurementCircuit only).
//   - MetaCoeffs        ([]float64)     — real-projected coefficients
//     aligned with MetaPaulis (BuildSingleMeasurementCircuit only).
//   - MetaDiscardedImag (float64)       — the largest imaginary magnitude
//     the projection dropped (BuildSingleMeasurementCircuit only).
//
// RealProjection is the explicit approximation step that discards imaginary
// coefficient parts for expectation-value use; it reports the largest
// magnitude it dropped so callers can assert the approximation was benign.
//
// BuildSingleMeasurementCircuit requires its input terms to commute
// qubit-wise; a non-commuting set makes the union basis ambiguous and fails
// fast with decompose.ErrNonCommuting (the caller, typically a decomposer,
// must guarantee commutation).
package measure
