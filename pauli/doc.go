// Package pauli provides the data model for multi-qubit Pauli operators:
// single-qubit labels, tensor-product terms with a global phase, and
// weighted observables built from such terms.
//
// Overview:
//
//   - Label is one of the four single-qubit Pauli operators {I, X, Y, Z}.
//   - Term is a fixed-length tensor product of Labels (one per qubit) together
//     with a global phase, recorded as a power of (-i) in {0, 1, 2, 3}.
//   - Observable is an insertion-ordered mapping Term → complex coefficient,
//     the weighted Pauli sum whose expectation value downstream packages
//     estimate.
//
// String convention (little-endian):
//
//	Term strings are written with the highest qubit first, so the RIGHTMOST
//	character addresses qubit 0. ParseTerm("XY") yields Y on qubit 0 and X on
//	qubit 1. An optional "+", "-", "i" or "-i" prefix sets the global phase.
//
// Canonicalization:
//
//	Observable.Add folds a term's phase into its coefficient and stores the
//	phase-free term, so two physically identical contributions always land on
//	the same entry. Adding an existing term sums coefficients; entries whose
//	coefficient cancels to zero are removed. Duplicate terms and zero
//	coefficients therefore never survive inside an Observable.
//
// Commutation:
//
//	Term.CommutesQubitWise reports the qubit-wise commutation relation used by
//	measurement grouping: two terms commute qubit-wise when, for every qubit,
//	their labels are equal or at least one of them is I. This is stricter than
//	general Pauli commutation and is exactly the condition under which two
//	terms share a single measurement basis.
//
// JSON interchange:
//
//	ObservableFromJSON / Observable.MarshalJSON read and write the operator
//	list format used by estimation front ends:
//
//	    [{"pauli": "XX", "coeff": 1.5}, {"pauli": "ZY", "coeff": {"re": 0, "im": 1.2}}]
//
// Errors (sentinel):
//
//   - ErrEmptyTerm      if a term with zero qubits is constructed or parsed.
//   - ErrBadLabel       if a string contains a character outside {I, X, Y, Z}.
//   - ErrBadPhase       if a phase outside {0, 1, 2, 3} is supplied.
//   - ErrLengthMismatch if terms of different qubit counts are mixed.
//   - ErrBadIndex       if a qubit index is out of range for the term.
//   - ErrBadJSON        if the observable JSON is malformed.
//
// All types in this package are immutable values after construction and are
// safe for concurrent use.
package pauli
