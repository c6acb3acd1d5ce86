package circuit

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors returned by the circuit package.
var (
	// ErrNilCircuit indicates a nil *Circuit where a value is required.
	ErrNilCircuit = errors.New("circuit: circuit is nil")

	// ErrNoQubits indicates an attempt to build a circuit with zero qubits.
	ErrNoQubits = errors.New("circuit: number of qubits must be positive")

	// ErrQubitRange indicates a qubit operand out of range.
	ErrQubitRange = errors.New("circuit: qubit index out of range")

	// ErrClbitRange indicates a classical operand out of range.
	ErrClbitRange = errors.New("circuit: classical bit index out of range")

	// ErrParameterCount indicates a positional binding length mismatch.
	ErrParameterCount = errors.New("circuit: number of values does not match number of parameters")

	// ErrUnboundParam indicates an operation that requires all angles bound.
	ErrUnboundParam = errors.New("circuit: unbound parameter")

	// ErrArityMismatch indicates a qubit mapping of the wrong length.
	ErrArityMismatch = errors.New("circuit: qubit mapping does not match circuit arity")
)

// Operation names used by this package.
const (
	OpH       = "h"
	OpX       = "x"
	OpS       = "s"
	OpSdg     = "sdg"
	OpRZ      = "rz"
	OpCX      = "cx"
	OpBarrier = "barrier"
	OpMeasure = "measure"
)

// Parameter is a named free angle parameter.
type Parameter struct {
	Name string
}

// Arg is one angle argument of an instruction: either a bound value or a
// reference to a free parameter.
type Arg struct {
	value float64
	param string // parameter name; empty when bound
}

// Val builds a bound argument.
func Val(x float64) Arg { return Arg{value: x} }

// Free builds an argument referencing the free parameter p.
func Free(p Parameter) Arg { return Arg{param: p.Name} }

// Bound reports whether the argument carries a concrete value.
func (a Arg) Bound() bool { return a.param == "" }

// Value returns the bound value; valid only when Bound.
func (a Arg) Value() float64 { return a.value }

// ParamName returns the referenced parameter name; empty when bound.
func (a Arg) ParamName() string { return a.param }

// Instruction is a single operation in a circuit.
type Instruction struct {
	Op     string
	Qubits []int
	Clbits []int
	Args   []Arg
}

// Measurement is one (qubit, classical bit) measurement pairing.
type Measurement struct {
	Qubit int
	Clbit int
}

// Circuit is an ordered gate list over a fixed qubit and classical register.
type Circuit struct {
	NumQubits int
	NumClbits int
	Instrs    []Instruction
	Metadata  map[string]any

	id     uuid.UUID
	params []string // free parameter names, first-use order
}

// New builds an empty circuit with the given register sizes.
func New(numQubits, numClbits int) (*Circuit, error) {
	if numQubits <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoQubits, numQubits)
	}
	if numClbits < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrClbitRange, numClbits)
	}

	return &Circuit{
		NumQubits: numQubits,
		NumClbits: numClbits,
		Metadata:  make(map[string]any),
		id:        uuid.New(),
	}, nil
}

// MustNew is New that panics on error; intended for fixtures.
func MustNew(numQubits, numClbits int) *Circuit {
	c, err := New(numQubits, numClbits)
	if err != nil {
		panic(err)
	}

	return c
}

// ID returns the circuit's identity. Derived circuits get fresh identities.
func (c *Circuit) ID() uuid.UUID { return c.id }

// checkQubits validates qubit operands.
func (c *Circuit) checkQubits(qubits ...int) error {
	for _, q := range qubits {
		if q < 0 || q >= c.NumQubits {
			return fmt.Errorf("%w: qubit %d of %d", ErrQubitRange, q, c.NumQubits)
		}
	}

	return nil
}

// append records an instruction, tracking first use of free parameters.
func (c *Circuit) append(ins Instruction) {
	for _, a := range ins.Args {
		if !a.Bound() && !c.hasParam(a.param) {
			c.params = append(c.params, a.param)
		}
	}
	c.Instrs = append(c.Instrs, ins)
}

func (c *Circuit) hasParam(name string) bool {
	for _, p := range c.params {
		if p == name {
			return true
		}
	}

	return false
}

// H appends a Hadamard gate on qubit q.
func (c *Circuit) H(q int) error {
	if err := c.checkQubits(q); err != nil {
		return err
	}
	c.append(Instruction{Op: OpH, Qubits: []int{q}})

	return nil
}

// X appends a Pauli-X gate on qubit q.
func (c *Circuit) X(q int) error {
	if err := c.checkQubits(q); err != nil {
		return err
	}
	c.append(Instruction{Op: OpX, Qubits: []int{q}})

	return nil
}

// S appends a phase gate on qubit q.
func (c *Circuit) S(q int) error {
	if err := c.checkQubits(q); err != nil {
		return err
	}
	c.append(Instruction{Op: OpS, Qubits: []int{q}})

	return nil
}

// Sdg appends an inverse phase gate on qubit q.
func (c *Circuit) Sdg(q int) error {
	if err := c.checkQubits(q); err != nil {
		return err
	}
	c.append(Instruction{Op: OpSdg, Qubits: []int{q}})

	return nil
}

// CX appends a controlled-X gate with the given control and target.
func (c *Circuit) CX(control, target int) error {
	if err := c.checkQubits(control, target); err != nil {
		return err
	}
	c.append(Instruction{Op: OpCX, Qubits: []int{control, target}})

	return nil
}

// RZ appends a Z-rotation with angle arg on qubit q. The angle may be a
// bound value (Val) or a free parameter (Free).
func (c *Circuit) RZ(arg Arg, q int) error {
	if err := c.checkQubits(q); err != nil {
		return err
	}
	c.append(Instruction{Op: OpRZ, Qubits: []int{q}, Args: []Arg{arg}})

	return nil
}

// Barrier appends a scheduling barrier over all qubits.
func (c *Circuit) Barrier() {
	c.append(Instruction{Op: OpBarrier})
}

// Measure appends a measurement of qubit q into classical bit cb.
func (c *Circuit) Measure(q, cb int) error {
	if err := c.checkQubits(q); err != nil {
		return err
	}
	if cb < 0 || cb >= c.NumClbits {
		return fmt.Errorf("%w: clbit %d of %d", ErrClbitRange, cb, c.NumClbits)
	}
	c.append(Instruction{Op: OpMeasure, Qubits: []int{q}, Clbits: []int{cb}})

	return nil
}

// MeasureAll appends a barrier, grows the classical register by NumQubits,
// and measures every qubit i into the i-th new classical bit, in order.
func (c *Circuit) MeasureAll() {
	c.Barrier()
	base := c.NumClbits
	c.NumClbits += c.NumQubits
	for q := 0; q < c.NumQubits; q++ {
		c.append(Instruction{Op: OpMeasure, Qubits: []int{q}, Clbits: []int{base + q}})
	}
}

// Measurements returns the (qubit, clbit) pairs of all measure instructions,
// in instruction order.
func (c *Circuit) Measurements() []Measurement {
	var out []Measurement
	for _, ins := range c.Instrs {
		if ins.Op == OpMeasure {
			out = append(out, Measurement{Qubit: ins.Qubits[0], Clbit: ins.Clbits[0]})
		}
	}

	return out
}

// FreeParameters returns the free parameter names in declared (first-use) order.
func (c *Circuit) FreeParameters() []string {
	out := make([]string, len(c.params))
	copy(out, c.params)

	return out
}

// NumFreeParameters returns the number of distinct free parameters.
func (c *Circuit) NumFreeParameters() int { return len(c.params) }

// Copy returns a deep copy with a fresh identity. Metadata is copied
// shallowly (one level).
func (c *Circuit) Copy() *Circuit {
	cp := &Circuit{
		NumQubits: c.NumQubits,
		NumClbits: c.NumClbits,
		Instrs:    make([]Instruction, len(c.Instrs)),
		Metadata:  make(map[string]any, len(c.Metadata)),
		id:        uuid.New(),
		params:    make([]string, len(c.params)),
	}
	copy(cp.params, c.params)
	for k, v := range c.Metadata {
		cp.Metadata[k] = v
	}
	for i, ins := range c.Instrs {
		cp.Instrs[i] = copyInstruction(ins)
	}

	return cp
}

func copyInstruction(ins Instruction) Instruction {
	out := Instruction{Op: ins.Op}
	if len(ins.Qubits) > 0 {
		out.Qubits = append([]int(nil), ins.Qubits...)
	}
	if len(ins.Clbits) > 0 {
		out.Clbits = append([]int(nil), ins.Clbits...)
	}
	if len(ins.Args) > 0 {
		out.Args = append([]Arg(nil), ins.Args...)
	}

	return out
}

// BindParameters binds values positionally against FreeParameters order and
// returns the bound circuit. Any length mismatch fails with ErrParameterCount.
// A circuit with no free parameters is returned as-is for an empty value list.
func (c *Circuit) BindParameters(values []float64) (*Circuit, error) {
	if c == nil {
		return nil, ErrNilCircuit
	}
	if len(values) != len(c.params) {
		return nil, fmt.Errorf("%w: %d values for %d parameters", ErrParameterCount, len(values), len(c.params))
	}
	if len(values) == 0 {
		return c, nil
	}

	byName := make(map[string]float64, len(values))
	for i, name := range c.params {
		byName[name] = values[i]
	}

	bound := c.Copy()
	bound.params = nil
	for i := range bound.Instrs {
		for j, a := range bound.Instrs[i].Args {
			if !a.Bound() {
				bound.Instrs[i].Args[j] = Val(byName[a.param])
			}
		}
	}

	return bound, nil
}

// Compose appends other's instructions onto a copy of the receiver, sending
// other's qubit i to qubits[i]. Other's classical bits are appended after the
// receiver's. Other's metadata entries overwrite same-key entries on the copy.
func (c *Circuit) Compose(other *Circuit, qubits []int) (*Circuit, error) {
	if c == nil || other == nil {
		return nil, ErrNilCircuit
	}
	if len(qubits) != other.NumQubits {
		return nil, fmt.Errorf("%w: %d targets for %d qubits", ErrArityMismatch, len(qubits), other.NumQubits)
	}
	if err := c.checkQubits(qubits...); err != nil {
		return nil, err
	}

	out := c.Copy()
	clOffset := out.NumClbits
	out.NumClbits += other.NumClbits
	for _, ins := range other.Instrs {
		mapped := copyInstruction(ins)
		for i, q := range mapped.Qubits {
			mapped.Qubits[i] = qubits[q]
		}
		for i, cb := range mapped.Clbits {
			mapped.Clbits[i] = clOffset + cb
		}
		out.append(mapped)
	}
	for k, v := range other.Metadata {
		out.Metadata[k] = v
	}

	return out, nil
}

// RemoveMeasurements returns a copy with every measure instruction dropped
// and the classical register emptied. Barriers and gates are preserved.
func (c *Circuit) RemoveMeasurements() *Circuit {
	out := c.Copy()
	kept := out.Instrs[:0]
	for _, ins := range out.Instrs {
		if ins.Op != OpMeasure {
			kept = append(kept, ins)
		}
	}
	out.Instrs = kept
	out.NumClbits = 0

	return out
}

// Equal reports structural equality: registers, instruction sequence and
// parameter order. Identity and metadata are ignored.
func (c *Circuit) Equal(other *Circuit) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.NumQubits != other.NumQubits || c.NumClbits != other.NumClbits {
		return false
	}
	if len(c.Instrs) != len(other.Instrs) || len(c.params) != len(other.params) {
		return false
	}
	for i := range c.params {
		if c.params[i] != other.params[i] {
			return false
		}
	}
	for i := range c.Instrs {
		if !instructionEqual(c.Instrs[i], other.Instrs[i]) {
			return false
		}
	}

	return true
}

func instructionEqual(a, b Instruction) bool {
	if a.Op != b.Op || len(a.Qubits) != len(b.Qubits) || len(a.Clbits) != len(b.Clbits) || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Qubits {
		if a.Qubits[i] != b.Qubits[i] {
			return false
		}
	}
	for i := range a.Clbits {
		if a.Clbits[i] != b.Clbits[i] {
			return false
		}
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}

	return true
}
