package statecache_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qpest/circuit"
	"github.com/katalvlaran/qpest/statecache"
)

// countingEvaluator returns |0⟩ for every circuit and counts invocations.
type countingEvaluator struct {
	calls int
	err   error
}

func (e *countingEvaluator) Evaluate(c *circuit.Circuit) (statecache.Statevector, error) {
	e.calls++
	if e.err != nil {
		return statecache.Statevector{}, e.err
	}
	dim := 1 << c.NumQubits
	amps := make([]complex128, dim)
	amps[0] = 1

	return statecache.Statevector{Amplitudes: amps, NumQubits: c.NumQubits}, nil
}

// paramCircuit returns a one-qubit circuit with the given free angles.
func paramCircuit(t *testing.T, names ...string) *circuit.Circuit {
	t.Helper()
	c := circuit.MustNew(1, 0)
	for _, n := range names {
		require.NoError(t, c.RZ(circuit.Free(circuit.Parameter{Name: n}), 0))
	}

	return c
}

// ------------------------------------------------------------------------
// 1. Memoization.
// ------------------------------------------------------------------------

func TestBuildStatevector_MemoizesPerParameterValues(t *testing.T) {
	eval := &countingEvaluator{}
	cache, err := statecache.New(eval, []*circuit.Circuit{paramCircuit(t, "a", "b")})
	require.NoError(t, err)

	first, err := cache.BuildStatevector(0, []float64{0.1, 0.2})
	require.NoError(t, err)
	require.Equal(t, 1, eval.calls)

	// Same circuit, same values: served from the cache.
	second, err := cache.BuildStatevector(0, []float64{0.1, 0.2})
	require.NoError(t, err)
	require.Equal(t, 1, eval.calls)
	require.True(t, first.Equal(second, 0))

	// Any value change forces a fresh evaluation.
	_, err = cache.BuildStatevector(0, []float64{0.1, 0.3})
	require.NoError(t, err)
	require.Equal(t, 2, eval.calls)
	require.Equal(t, 2, cache.Len())
}

func TestBuildStatevector_ZeroParameterCircuit(t *testing.T) {
	eval := &countingEvaluator{}
	c := circuit.MustNew(2, 0)
	require.NoError(t, c.H(0))
	cache, err := statecache.New(eval, []*circuit.Circuit{c})
	require.NoError(t, err)

	_, err = cache.BuildStatevector(0, nil)
	require.NoError(t, err)
	_, err = cache.BuildStatevector(0, []float64{})
	require.NoError(t, err)
	require.Equal(t, 1, eval.calls)
}

func TestBuildStatevector_DistinguishesCircuits(t *testing.T) {
	eval := &countingEvaluator{}
	cache, err := statecache.New(eval, []*circuit.Circuit{
		paramCircuit(t, "a"),
		paramCircuit(t, "a"),
	})
	require.NoError(t, err)

	_, err = cache.BuildStatevector(0, []float64{1})
	require.NoError(t, err)
	_, err = cache.BuildStatevector(1, []float64{1})
	require.NoError(t, err)
	require.Equal(t, 2, eval.calls)
}

// ------------------------------------------------------------------------
// 2. Failure modes.
// ------------------------------------------------------------------------

func TestNew_NilEvaluator(t *testing.T) {
	_, err := statecache.New(nil, nil)
	require.ErrorIs(t, err, statecache.ErrNilEvaluator)
}

func TestBuildStatevector_IndexOutOfRange(t *testing.T) {
	cache, err := statecache.New(&countingEvaluator{}, []*circuit.Circuit{paramCircuit(t, "a")})
	require.NoError(t, err)

	_, err = cache.BuildStatevector(-1, nil)
	require.ErrorIs(t, err, statecache.ErrCircuitIndex)
	_, err = cache.BuildStatevector(1, nil)
	require.ErrorIs(t, err, statecache.ErrCircuitIndex)
}

func TestBuildStatevector_ParameterCountMismatch(t *testing.T) {
	eval := &countingEvaluator{}
	cache, err := statecache.New(eval, []*circuit.Circuit{paramCircuit(t, "a", "b")})
	require.NoError(t, err)

	for _, values := range [][]float64{nil, {1}, {1, 2, 3}} {
		_, err = cache.BuildStatevector(0, values)
		require.ErrorIs(t, err, circuit.ErrParameterCount)
	}
	require.Equal(t, 0, eval.calls)
}

func TestBuildStatevector_FailedEvaluationNotCached(t *testing.T) {
	boom := errors.New("simulator crashed")
	eval := &countingEvaluator{err: boom}
	cache, err := statecache.New(eval, []*circuit.Circuit{paramCircuit(t, "a")})
	require.NoError(t, err)

	_, err = cache.BuildStatevector(0, []float64{1})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, cache.Len())

	// Recovery: the next identical request re-evaluates.
	eval.err = nil
	_, err = cache.BuildStatevector(0, []float64{1})
	require.NoError(t, err)
	require.Equal(t, 2, eval.calls)
	require.Equal(t, 1, cache.Len())
}

// ------------------------------------------------------------------------
// 3. Capacity, registration, purge.
// ------------------------------------------------------------------------

func TestCache_CapacityEvictsFIFO(t *testing.T) {
	eval := &countingEvaluator{}
	cache, err := statecache.New(eval, []*circuit.Circuit{paramCircuit(t, "a")}, statecache.WithCapacity(2))
	require.NoError(t, err)

	for _, v := range []float64{1, 2, 3} {
		_, err = cache.BuildStatevector(0, []float64{v})
		require.NoError(t, err)
	}
	require.Equal(t, 2, cache.Len())
	require.Equal(t, 3, eval.calls)

	// The oldest entry (v=1) was evicted; asking again re-evaluates.
	_, err = cache.BuildStatevector(0, []float64{1})
	require.NoError(t, err)
	require.Equal(t, 4, eval.calls)

	// The newest (v=3) is still memoized.
	_, err = cache.BuildStatevector(0, []float64{3})
	require.NoError(t, err)
	require.Equal(t, 4, eval.calls)
}

func TestCache_RegisterAndPurge(t *testing.T) {
	eval := &countingEvaluator{}
	cache, err := statecache.New(eval, nil)
	require.NoError(t, err)
	require.Equal(t, 0, cache.NumCircuits())

	_, err = cache.Register(nil)
	require.ErrorIs(t, err, circuit.ErrNilCircuit)

	idx, err := cache.Register(paramCircuit(t, "a"))
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, 1, cache.NumCircuits())

	_, err = cache.BuildStatevector(idx, []float64{math.Pi})
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	cache.Purge()
	require.Equal(t, 0, cache.Len())

	_, err = cache.BuildStatevector(idx, []float64{math.Pi})
	require.NoError(t, err)
	require.Equal(t, 2, eval.calls)
}
