package estimator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/qpest/circuit"
	"github.com/katalvlaran/qpest/decompose"
	"github.com/katalvlaran/qpest/layout"
	"github.com/katalvlaran/qpest/measure"
	"github.com/katalvlaran/qpest/pauli"
	"github.com/katalvlaran/qpest/statecache"
)

// Sentinel errors returned by the estimator package.
var (
	// ErrNilBackend indicates an estimator built without a backend.
	ErrNilBackend = errors.New("estimator: backend is nil")

	// ErrNilCircuit indicates a nil base circuit.
	ErrNilCircuit = errors.New("estimator: circuit is nil")

	// ErrNilObservable indicates a nil observable.
	ErrNilObservable = errors.New("estimator: observable is nil")

	// ErrQubitMismatch indicates observable and circuit qubit counts differ.
	ErrQubitMismatch = errors.New("estimator: observable and circuit qubit counts differ")

	// ErrQubitOverflow indicates the circuit is wider than the backend.
	ErrQubitOverflow = errors.New("estimator: circuit is wider than the backend")

	// ErrNoEvaluator indicates the exact path was used without WithEvaluator.
	ErrNoEvaluator = errors.New("estimator: no exact-state evaluator configured")

	// ErrNotSimulator indicates the exact path on a non-simulator backend.
	ErrNotSimulator = errors.New("estimator: exact path requires a simulator backend")

	// ErrCountsMismatch indicates counts and circuit lists of different length.
	ErrCountsMismatch = errors.New("estimator: counts do not match measurement circuits")

	// ErrEmptyCounts indicates a counts map with zero total shots.
	ErrEmptyCounts = errors.New("estimator: counts contain no shots")

	// ErrBitstringLength indicates a counts key of the wrong width.
	ErrBitstringLength = errors.New("estimator: bitstring width does not match classical register")

	// ErrMissingMetadata indicates a measurement circuit without bookkeeping.
	ErrMissingMetadata = errors.New("estimator: measurement circuit is missing metadata")
)

// Counts holds measurement outcomes: bitstring → occurrences. Bitstrings
// are little-endian (the rightmost character is classical bit 0).
type Counts map[string]int

// Backend is the opaque execution target handle. Execution itself is out of
// scope; the estimator only consults capability queries.
type Backend interface {
	Name() string
	MaxQubits() int
	IsSimulator() bool
}

// Estimator composes decomposition, measurement synthesis and layout
// tracking into executable circuits and scalar expectation values.
//
// The transpile memo and the statevector cache are the only shared mutable
// state; both are mutex-guarded, so one Estimator may serve concurrent
// callers.
type Estimator struct {
	backend Backend
	tracker *layout.Tracker
	log     Logger
	skip    bool

	mu         sync.Mutex
	abelian    bool
	transpiled map[uuid.UUID]*circuit.Circuit
	cache      *statecache.Cache
}

// Option configures an Estimator.
type Option func(*Estimator) error

// WithAbelianGrouping selects the grouping strategy: true for Abelian
// (the default), false for Naive singleton grouping.
func WithAbelianGrouping(enabled bool) Option {
	return func(e *Estimator) error {
		e.abelian = enabled
		return nil
	}
}

// WithLogger installs the logger the estimator reports through.
func WithLogger(l Logger) Option {
	return func(e *Estimator) error {
		if l != nil {
			e.log = l
		}
		return nil
	}
}

// WithSkipTranspilation bypasses the external transpiler; circuits are
// composed under the identity layout.
func WithSkipTranspilation() Option {
	return func(e *Estimator) error {
		e.skip = true
		return nil
	}
}

// WithEvaluator enables the exact estimation path backed by a statevector
// cache over the given evaluator.
func WithEvaluator(ev statecache.Evaluator) Option {
	return func(e *Estimator) error {
		cache, err := statecache.New(ev, nil)
		if err != nil {
			return err
		}
		e.cache = cache
		return nil
	}
}

// New builds an estimator over a backend and an external transpiler.
// The transpiler may be nil only together with WithSkipTranspilation.
// Tracker behavior (bound pass manager, layout validation) is configured
// through trackerOpts.
func New(backend Backend, transpiler layout.Transpiler, trackerOpts []layout.Option, opts ...Option) (*Estimator, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}

	e := &Estimator{
		backend:    backend,
		log:        nopLogger{},
		abelian:    true,
		transpiled: make(map[uuid.UUID]*circuit.Circuit),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if transpiler != nil {
		tracker, err := layout.NewTracker(transpiler, backend, trackerOpts...)
		if err != nil {
			return nil, err
		}
		e.tracker = tracker
	} else if !e.skip {
		return nil, layout.ErrNilTranspiler
	}

	return e, nil
}

// AbelianGrouping reports the current grouping strategy flag.
func (e *Estimator) AbelianGrouping() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.abelian
}

// SetAbelianGrouping switches the grouping strategy flag.
func (e *Estimator) SetAbelianGrouping(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.abelian = enabled
}

// Decomposer resolves the grouping flag to a strategy. Every access
// constructs a fresh stateless value; callers must not rely on identity.
func (e *Estimator) Decomposer() decompose.Decomposer {
	if e.AbelianGrouping() {
		return decompose.Abelian{}
	}

	return decompose.Naive{}
}

// PreprocessCircuits turns (base circuit, observable, parameter values)
// into one executable circuit per measurement group. Each result carries
// measure.MetaPaulis, measure.MetaCoeffs, and measure.MetaMeasuredQubits
// re-expressed in PHYSICAL qubit indices under the inferred final layout.
func (e *Estimator) PreprocessCircuits(base *circuit.Circuit, obs *pauli.Observable, params []float64) ([]*circuit.Circuit, error) {
	if base == nil {
		return nil, ErrNilCircuit
	}
	if obs == nil {
		return nil, ErrNilObservable
	}
	if obs.Len() > 0 && obs.NumQubits() != base.NumQubits {
		return nil, fmt.Errorf("%w: observable %d, circuit %d", ErrQubitMismatch, obs.NumQubits(), base.NumQubits)
	}
	if max := e.backend.MaxQubits(); max > 0 && base.NumQubits > max {
		return nil, fmt.Errorf("%w: circuit %d, backend %q %d", ErrQubitOverflow, base.NumQubits, e.backend.Name(), max)
	}

	groups, err := e.Decomposer().Decompose(obs)
	if err != nil {
		return nil, err
	}
	e.log.Debug("observable decomposed", "terms", obs.Len(), "groups", len(groups))
	if len(groups) == 0 {
		return []*circuit.Circuit{}, nil
	}

	prepared, lay, err := e.prepareBase(base, params)
	if err != nil {
		return nil, err
	}

	out := make([]*circuit.Circuit, 0, len(groups))
	for _, g := range groups {
		composed, cErr := e.composeGroup(prepared, lay, obs, g)
		if cErr != nil {
			return nil, cErr
		}
		out = append(out, composed)
	}
	e.log.Debug("measurement circuits prepared", "count", len(out))

	return out, nil
}

// prepareBase transpiles (memoized), strips the layout-capture
// measurements, binds parameters and runs the bound pass manager.
// It returns the executable base and the layout to compose through.
func (e *Estimator) prepareBase(base *circuit.Circuit, params []float64) (*circuit.Circuit, layout.Layout, error) {
	var (
		stripped *circuit.Circuit
		lay      layout.Layout
		err      error
	)

	if e.skip {
		stripped = base
		lay, err = identityLayout(base.NumQubits)
		if err != nil {
			return nil, layout.Layout{}, err
		}
	} else {
		transpiled, tErr := e.transpileCached(base)
		if tErr != nil {
			return nil, layout.Layout{}, tErr
		}
		var ok bool
		lay, ok = transpiled.Metadata[layout.MetaFinalLayout].(layout.Layout)
		if !ok {
			return nil, layout.Layout{}, fmt.Errorf("%w: %s", ErrMissingMetadata, layout.MetaFinalLayout)
		}
		// The measure-all only existed to witness the layout; the
		// executable circuit must not carry it.
		stripped = transpiled.RemoveMeasurements()
	}

	bound, err := stripped.BindParameters(params)
	if err != nil {
		return nil, layout.Layout{}, err
	}

	if e.tracker != nil {
		if bound, err = e.tracker.RunBoundPassManager(bound); err != nil {
			return nil, layout.Layout{}, err
		}
	}

	return bound, lay, nil
}

// composeGroup builds the group's measurement circuit and attaches it to
// the prepared base on the physical qubits the layout dictates.
func (e *Estimator) composeGroup(prepared *circuit.Circuit, lay layout.Layout, obs *pauli.Observable, g decompose.MeasurementGroup) (*circuit.Circuit, error) {
	groupObs, err := obs.Select(g.Terms)
	if err != nil {
		return nil, err
	}
	meas, err := measure.BuildSingleMeasurementCircuit(groupObs)
	if err != nil {
		return nil, err
	}

	logicalMeasured, ok := meas.Metadata[measure.MetaMeasuredQubits].([]int)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingMetadata, measure.MetaMeasuredQubits)
	}

	// Send each of the measurement circuit's logical qubits to its
	// physical image.
	targets := make([]int, meas.NumQubits)
	for q := range targets {
		targets[q] = q
	}
	targets, err = lay.Apply(targets)
	if err != nil {
		return nil, err
	}

	composed, err := prepared.Compose(meas, targets)
	if err != nil {
		return nil, err
	}

	physicalMeasured, err := lay.Apply(logicalMeasured)
	if err != nil {
		return nil, err
	}
	composed.Metadata[measure.MetaMeasuredQubits] = physicalMeasured

	return composed, nil
}

// transpileCached runs the tracker once per base-circuit identity.
func (e *Estimator) transpileCached(base *circuit.Circuit) (*circuit.Circuit, error) {
	e.mu.Lock()
	if cached, ok := e.transpiled[base.ID()]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	transpiled, err := e.tracker.Transpile(base)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.transpiled[base.ID()] = transpiled
	e.mu.Unlock()
	e.log.Debug("base circuit transpiled", "backend", e.backend.Name(), "qubits", transpiled.NumQubits)

	return transpiled, nil
}

// identityLayout maps every logical qubit to itself.
func identityLayout(n int) (layout.Layout, error) {
	m := make(map[int]int, n)
	for q := 0; q < n; q++ {
		m[q] = q
	}

	return layout.NewLayout(m)
}
