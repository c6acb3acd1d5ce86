// Package decompose partitions an observable's Pauli terms into measurement
// groups: sets of terms that can be estimated from a single basis-change
// plus measurement circuit.
//
// Two interchangeable strategies implement the Decomposer interface:
//
//   - Naive — every term becomes its own singleton group. Maximal circuit
//     count, trivially correct: a term always commutes with itself.
//   - Abelian — greedy first-fit grouping. Terms are visited in the
//     observable's insertion order; each term joins the first open group
//     whose per-qubit basis is compatible with the term's non-I labels
//     (equal or I on every qubit), widening that group's basis, or opens a
//     new group. Deterministic and sound; global minimality of the group
//     count is NOT guaranteed.
//
// Both strategies are stateless value types. Construct a fresh value per
// use; there is nothing to share or reuse.
//
// Soundness invariant: every pair of terms inside a produced group commutes
// qubit-wise. Completeness invariant: the groups partition the observable's
// term list exactly — every term appears in exactly one group.
//
// Decomposing an empty observable yields an empty group slice and no error.
//
// GroupBasis computes the union measurement basis of a commuting term set
// and is shared with the measurement-circuit builder; it fails fast with
// ErrNonCommuting when two terms demand different bases on the same qubit.
package decompose
