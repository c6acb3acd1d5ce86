// Package layout tracks how compilation remaps logical circuit qubits onto
// physical device qubits, so measurement results can be attributed to the
// qubits the caller originally addressed.
//
// Layout:
//
//	An injective mapping logical → physical. Every logical qubit of the
//	source circuit has exactly one physical image; physical qubits without a
//	preimage are simply absent from the mapping.
//
//	PermuteBitstring reorders a physical-indexed outcome bitstring back into
//	logical order, so counts from a transpiled measure-all execution can be
//	attributed to the qubits the caller declared.
//
// Tracker:
//
//	Drives an external Transpiler exactly once per Transpile call. Before
//	handing the circuit over, the tracker appends a measure-all so every
//	qubit's journey through compilation is captured; afterwards it infers
//	the final layout from the transpiled circuit's own measurement
//	instructions and attaches it under Metadata[MetaFinalLayout].
//	Diagnostics go through an optional Logger installed with WithLogger;
//	without one they are discarded.
//
// Layout inference contract:
//
//	InferFinalLayout pairs classical bit i with logical qubit i and reads
//	the physical qubit measured into classical bit i from the transpiled
//	circuit. This is only meaningful under two invariants the CALLER must
//	guarantee: the original circuit's measurements come from an in-order,
//	unconditional measure-all, and the transpiler preserves the relative
//	order of classical bits. The fast path does not verify either
//	invariant. WithValidation opts into a
//	verification pass that rejects inputs violating either invariant
//	(ErrMeasureAllOrder / ErrLayoutInference) instead of returning a
//	meaningless layout.
//
// Bound pass manager:
//
//	RunBoundPassManager forwards a fully bound circuit through an optional
//	secondary PassManager configured with WithBoundPassManager. Without one
//	it returns its input unchanged. A nil circuit fails with ErrNotCircuit.
//
// Errors (sentinel):
//
//   - ErrNilTranspiler   if a Tracker is built without a transpiler.
//   - ErrNotCircuit      if a nil circuit is passed where one is required.
//   - ErrNotInjective    if a layout maps two logical qubits to one physical.
//   - ErrNegativeIndex   if a layout contains a negative qubit index.
//   - ErrUnmapped        if a logical qubit has no physical image.
//   - ErrBitstringWidth  if an outcome bitstring is too narrow to cover the
//     mapped physical qubits.
//   - ErrLayoutInference if the transpiled circuit does not measure every
//     classical bit the inference needs.
//   - ErrMeasureAllOrder if validation finds the original circuit's
//     measurements are not an in-order measure-all.
package layout
