package layout

import (
	"fmt"

	"github.com/katalvlaran/qpest/circuit"
)

// MetaFinalLayout is the metadata key the tracker attaches the inferred
// Layout under on transpiled circuits.
const MetaFinalLayout = "final_layout"

// Transpiler is the external compilation collaborator. It is called exactly
// once per Tracker.Transpile invocation; its output circuit is opaque
// (arbitrary qubit count, ordering and structure) — only its measurement
// instructions and classical-bit ordering are ever inspected.
type Transpiler interface {
	Transpile(c *circuit.Circuit, backend any) (*circuit.Circuit, error)
}

// PassManager is a secondary compilation stage run on fully bound circuits.
type PassManager interface {
	Run(c *circuit.Circuit) (*circuit.Circuit, error)
}

// Tracker drives the external transpiler and infers the resulting
// logical→physical layout.
type Tracker struct {
	transpiler Transpiler
	backend    any
	bound      PassManager
	validate   bool
	log        Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithBoundPassManager installs the secondary pass manager applied by
// RunBoundPassManager. Without it, RunBoundPassManager is the identity.
func WithBoundPassManager(pm PassManager) Option {
	return func(t *Tracker) { t.bound = pm }
}

// WithValidation enables the opt-in verification of the layout-inference
// invariants (in-order measure-all, each needed classical bit measured
// exactly once). Off by default, preserving the original fragile contract.
func WithValidation() Option {
	return func(t *Tracker) { t.validate = true }
}

// WithLogger installs the logger the tracker reports through.
func WithLogger(l Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTracker builds a tracker around the external transpiler and an opaque
// backend handle that is passed through on every transpile call.
func NewTracker(transpiler Transpiler, backend any, opts ...Option) (*Tracker, error) {
	if transpiler == nil {
		return nil, ErrNilTranspiler
	}
	t := &Tracker{transpiler: transpiler, backend: backend, log: nopLogger{}}
	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Transpile appends a measure-all to a copy of c (capturing every qubit
// before transformation), invokes the external transpiler exactly once, and
// attaches the inferred final layout to the result's metadata under
// MetaFinalLayout.
func (t *Tracker) Transpile(c *circuit.Circuit) (*circuit.Circuit, error) {
	if c == nil {
		return nil, ErrNotCircuit
	}

	measured := c.Copy()
	measured.MeasureAll()

	transpiled, err := t.transpiler.Transpile(measured, t.backend)
	if err != nil {
		t.log.Error("transpile failed", "qubits", c.NumQubits, "err", err)
		return nil, fmt.Errorf("layout: transpile failed: %w", err)
	}
	if transpiled == nil {
		return nil, fmt.Errorf("layout: transpiler returned no circuit: %w", ErrNotCircuit)
	}

	var lay Layout
	if t.validate {
		if err = VerifyMeasureAllOrder(measured); err != nil {
			return nil, err
		}
		lay, err = inferFinalLayout(measured, transpiled, true)
	} else {
		lay, err = inferFinalLayout(measured, transpiled, false)
	}
	if err != nil {
		return nil, err
	}

	if transpiled.Metadata == nil {
		transpiled.Metadata = make(map[string]any)
	}
	transpiled.Metadata[MetaFinalLayout] = lay
	t.log.Debug("final layout inferred",
		"logical_qubits", c.NumQubits, "physical_qubits", transpiled.NumQubits, "layout", lay.String())

	return transpiled, nil
}

// InferFinalLayout reads, for each classical bit i of the original
// measure-all, the physical qubit the transpiled circuit measures into that
// bit, and pairs it with logical qubit i.
//
// Correctness rests on two invariants the caller must guarantee: the
// original circuit's measurements come from an unconditional in-order
// measure-all (classical bit i ↔ original qubit i), and the transpiler
// preserved the relative order of classical bits. Violate either and the
// returned layout is meaningless — this fast path does not check.
func InferFinalLayout(original, transpiled *circuit.Circuit) (Layout, error) {
	return inferFinalLayout(original, transpiled, false)
}

func inferFinalLayout(original, transpiled *circuit.Circuit, strict bool) (Layout, error) {
	if original == nil || transpiled == nil {
		return Layout{}, ErrNotCircuit
	}

	// clbit → physical qubit, read off the transpiled measurements.
	clbitToPhysical := make(map[int]int)
	seen := make(map[int]int)
	for _, m := range transpiled.Measurements() {
		clbitToPhysical[m.Clbit] = m.Qubit
		seen[m.Clbit]++
	}

	mapping := make(map[int]int, original.NumQubits)
	for logical := 0; logical < original.NumQubits; logical++ {
		physical, ok := clbitToPhysical[logical]
		if !ok {
			return Layout{}, fmt.Errorf("%w: classical bit %d is never measured", ErrLayoutInference, logical)
		}
		if strict && seen[logical] != 1 {
			return Layout{}, fmt.Errorf("%w: classical bit %d measured %d times", ErrLayoutInference, logical, seen[logical])
		}
		mapping[logical] = physical
	}

	return NewLayout(mapping)
}

// VerifyMeasureAllOrder checks that c's measurements form an in-order,
// complete measure-all: exactly one measurement per qubit, qubit i into
// classical bit i. This is the invariant layout inference silently assumes;
// the check exists for callers that prefer failing loudly over a
// meaningless layout.
func VerifyMeasureAllOrder(c *circuit.Circuit) error {
	if c == nil {
		return ErrNotCircuit
	}
	ms := c.Measurements()
	if len(ms) != c.NumQubits {
		return fmt.Errorf("%w: %d measurements for %d qubits", ErrMeasureAllOrder, len(ms), c.NumQubits)
	}
	for i, m := range ms {
		if m.Qubit != i || m.Clbit != i {
			return fmt.Errorf("%w: measurement %d maps qubit %d to clbit %d", ErrMeasureAllOrder, i, m.Qubit, m.Clbit)
		}
	}

	return nil
}

// RunBoundPassManager forwards c through the configured secondary pass
// manager, or returns c unchanged when none is configured. A nil circuit
// fails with ErrNotCircuit.
func (t *Tracker) RunBoundPassManager(c *circuit.Circuit) (*circuit.Circuit, error) {
	if c == nil {
		return nil, ErrNotCircuit
	}
	if t.bound == nil {
		return c, nil
	}
	out, err := t.bound.Run(c)
	if err != nil {
		t.log.Error("bound pass manager failed", "err", err)
		return nil, fmt.Errorf("layout: bound pass manager failed: %w", err)
	}
	t.log.Debug("bound pass manager ran", "qubits", out.NumQubits)

	return out, nil
}
