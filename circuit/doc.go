// Package circuit provides a minimal gate-list quantum circuit model:
// enough structure for basis-change synthesis, measure-all capture,
// composition under a qubit mapping, positional parameter binding, and
// OpenQASM 2.0 export.
//
// Model:
//
//   - Instruction is one operation: an op name, qubit operands, classical
//     operands, and optional angle arguments that are either bound values or
//     free named parameters.
//   - Circuit is an ordered instruction list over NumQubits qubits and
//     NumClbits classical bits, plus a Metadata map for annotations attached
//     by downstream packages (measured indices, inferred layouts, ...).
//   - Every circuit carries a UUID identity assigned at construction. Copy,
//     Compose and BindParameters return circuits with fresh identities; the
//     identity is what caches key on, so a derived circuit never aliases its
//     parent's cache entries.
//
// Parameters:
//
//	Free parameters are named; their declared order is their first-use order
//	in the instruction list. BindParameters binds positionally against that
//	order and fails fast with ErrParameterCount on any length mismatch.
//	A circuit with no free parameters binds against an empty value list and
//	is returned as-is.
//
// Composition:
//
//	Compose(other, qubits) appends other's instructions onto a copy of the
//	receiver, sending other's qubit i to qubits[i] and offsetting other's
//	classical bits past the receiver's. This is how a measurement circuit is
//	attached to a (possibly transpiled) base circuit on chosen physical
//	qubits.
//
// Errors (sentinel):
//
//   - ErrNilCircuit     if a nil *Circuit is passed where a value is required.
//   - ErrNoQubits       if a circuit with zero qubits is constructed.
//   - ErrQubitRange     if a qubit operand is out of range.
//   - ErrClbitRange     if a classical operand is out of range.
//   - ErrParameterCount if bound values do not match the free-parameter count.
//   - ErrUnboundParam   if an export requires a value for a free parameter.
//   - ErrArityMismatch  if a qubit mapping does not cover the composed circuit.
//
// Circuits are not safe for concurrent mutation; treat a circuit as owned by
// one goroutine until fully built, after which read-only use is safe.
package circuit
