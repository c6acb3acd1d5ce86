package estimator

import (
	"fmt"

	"github.com/katalvlaran/qpest/circuit"
	"github.com/katalvlaran/qpest/measure"
	"github.com/katalvlaran/qpest/pauli"
)

// RegisterCircuit adds a circuit to the exact-path statevector cache and
// returns its index for later ExpectationExact calls. Requires
// WithEvaluator.
func (e *Estimator) RegisterCircuit(c *circuit.Circuit) (int, error) {
	if e.cache == nil {
		return 0, ErrNoEvaluator
	}
	if c == nil {
		return 0, ErrNilCircuit
	}

	return e.cache.Register(c)
}

// ExpectationExact computes ⟨ψ|O|ψ⟩ from the memoized exact state of the
// registered circuit at circuitIndex, bound with the given parameter
// values. The backend must be an exact simulator and WithEvaluator must be
// configured. The residual imaginary part of the accumulated value is
// discarded through the same real projection the sampled path applies.
func (e *Estimator) ExpectationExact(circuitIndex int, obs *pauli.Observable, params []float64) (float64, error) {
	if e.cache == nil {
		return 0, ErrNoEvaluator
	}
	if !e.backend.IsSimulator() {
		return 0, fmt.Errorf("%w: backend %q", ErrNotSimulator, e.backend.Name())
	}
	if obs == nil {
		return 0, ErrNilObservable
	}

	sv, err := e.cache.BuildStatevector(circuitIndex, params)
	if err != nil {
		return 0, err
	}

	terms, coeffs := obs.Terms(), obs.Coefficients()
	var total complex128
	for i, t := range terms {
		ev, evErr := sv.ExpectationValue(t)
		if evErr != nil {
			return 0, evErr
		}
		total += coeffs[i] * ev
	}

	projected, discarded := measure.RealProjection([]complex128{total})
	if discarded > 1e-9 {
		e.log.Warn("discarded imaginary expectation component", "imag", discarded)
	}

	return projected[0], nil
}
