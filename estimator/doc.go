// Package estimator orchestrates expectation-value estimation: it turns a
// (circuit, observable, parameter values) triple into executable
// measurement circuits, and turns execution results back into a scalar
// expectation value.
//
// Pipeline:
//
//	observable ──► decomposer ──► measurement groups
//	                                   │
//	base circuit ──► transpile ──► layout-aware composition ──► executable circuits
//	                                   │
//	counts (external execution) ──► ExpectationFromCounts ──► ⟨O⟩
//
// Grouping strategy:
//
//	The AbelianGrouping flag (default true) selects between the Abelian and
//	Naive decomposers. Decomposer() resolves the flag to a FRESH stateless
//	strategy value on every access — strategies are never reused or
//	identity-compared across calls.
//
// Transpilation:
//
//	The base circuit is transpiled once per identity through
//	layout.Tracker and memoized; the inferred final layout routes each
//	measurement circuit's logical qubits onto the physical qubits the
//	transpiler chose. WithSkipTranspilation bypasses the external
//	transpiler entirely and uses the identity layout.
//
// Exact path:
//
//	When the backend is an exact simulator and WithEvaluator is configured,
//	ExpectationExact computes ⟨ψ|O|ψ⟩ from memoized statevectors instead of
//	counts (see package statecache).
//
// Observability:
//
//	The estimator logs through the dependency-free Logger interface,
//	configured with WithLogger; without one it stays silent. No logging
//	dependency is forced on importers.
//
// Execution itself — job submission, queuing, shots — is out of scope and
// belongs to the caller; Backend is an opaque capability handle.
package estimator
