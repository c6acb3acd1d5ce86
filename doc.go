// Package qpest is an estimation core for Pauli-observable expectation
// values: decompose an observable into commuting groups, synthesize the
// measurement circuits, track the transpiler's qubit layout, and fold
// sampled counts or exact statevectors back into a single scalar.
//
// 🚀 What is qpest?
//
//	A small, concurrency-safe toolkit that brings together:
//		• Pauli primitives: terms, phases, observables, JSON interchange
//		• Decomposition: naive singleton and greedy Abelian grouping
//		• Measurement synthesis: basis changes + sparse-support readout
//		• Layout tracking: infer logical→physical maps across transpilation
//		• State caching: memoized exact statevectors per parameter binding
//		• Estimation: counts → expectation and exact ⟨ψ|O|ψ⟩ paths
//
// ✨ Why choose qpest?
//
//   - Deterministic – insertion-ordered observables, reproducible grouping
//   - Collaborator-friendly – transpiler, pass manager and simulator stay
//     behind small interfaces; bring your own
//   - Concurrency-safe – mutex-guarded caches, one estimator per many callers
//   - Explicit errors – every failure mode has a sentinel you can errors.Is
//
// Everything is organized under seven subpackages:
//
//	pauli/      — Pauli terms, observables & the operator-list JSON format
//	circuit/    — gate-list circuits, parameters, compose & OpenQASM export
//	decompose/  — qubit-wise commuting measurement groups
//	measure/    — basis-change + measurement circuit synthesis
//	layout/     — transpilation driving & final-layout inference
//	statecache/ — exact statevectors with per-binding memoization
//	estimator/  — the orchestrating facade over all of the above
//
// Quick sketch of the sampled path:
//
//	observable ──decompose──▶ groups ──measure──▶ circuits
//	     base circuit ──layout──▶ physical qubits ──┘
//	          counts ──estimator──▶ expectation value
//
// Start with estimator.New, or use the subpackages directly.
package qpest
