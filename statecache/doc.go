// Package statecache memoizes exact-state computations: the expensive
// mapping (circuit identity, bound parameter values) → statevector.
//
// The cache owns a fixed list of circuits and an external Evaluator (the
// exact-state linear-algebra collaborator, treated as a pure deterministic
// function of the fully bound circuit). BuildStatevector binds parameter
// values positionally onto the circuit at the given index — failing fast
// with circuit.ErrParameterCount on any length mismatch — evaluates, and
// memoizes the result.
//
// Cache-key contract:
//
//	Keys combine the circuit's UUID identity with the exact bit patterns of
//	the parameter values, in order. Two calls hit the same entry if and only
//	if they name the same circuit and bitwise-equal values in the same
//	order. A circuit with zero free parameters is evaluated directly and
//	cached under its identity alone.
//
// Retention:
//
//	Unbounded by default — entries live as long as the cache, matching the
//	source discipline. WithCapacity(n) opts into a FIFO-evicting bound for
//	long parameter sweeps; FIFO is deliberate: hit order carries no reuse
//	signal in sweeps, and it keeps the critical section trivial.
//
// Concurrency:
//
//	A single mutex serializes lookups, evaluation and insertion — the
//	single-writer discipline. Identical keys therefore never compute twice,
//	and a failed evaluation is never memoized, so caching can never mask an
//	error.
//
// Statevector additionally offers ExpectationValue, the ⟨ψ|P|ψ⟩ kernel used
// by the exact estimation path.
package statecache
