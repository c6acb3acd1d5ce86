package estimator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qpest/circuit"
	"github.com/katalvlaran/qpest/estimator"
	"github.com/katalvlaran/qpest/pauli"
)

// ------------------------------------------------------------------------
// 1. Bell-state expectations from sampled counts.
// ------------------------------------------------------------------------

func TestExpectationFromCounts_BellState(t *testing.T) {
	est := skipEstimator(t)
	obs := observableOf(t, map[string]float64{"ZZ": 0.5, "XX": 1.5}, "ZZ", "XX")

	circs, err := est.PreprocessCircuits(bellCircuit(t), obs, nil)
	require.NoError(t, err)
	require.Len(t, circs, 2)

	// A Bell state is perfectly correlated in both the Z and the X basis.
	counts := []estimator.Counts{
		{"00": 500, "11": 500},
		{"00": 512, "11": 488},
	}
	value, err := est.ExpectationFromCounts(circs, counts)
	require.NoError(t, err)
	require.InDelta(t, 0.5+1.5, value, 1e-12)
}

func TestExpectationFromCounts_NoisyCorrelations(t *testing.T) {
	est := skipEstimator(t)
	obs := observableOf(t, map[string]float64{"ZZ": 1}, "ZZ")

	circs, err := est.PreprocessCircuits(bellCircuit(t), obs, nil)
	require.NoError(t, err)
	require.Len(t, circs, 1)

	counts := []estimator.Counts{{"00": 425, "01": 75, "10": 85, "11": 415}}
	value, err := est.ExpectationFromCounts(circs, counts)
	require.NoError(t, err)
	// (425 + 415 - 75 - 85) / 1000
	require.InDelta(t, 0.68, value, 1e-12)
}

func TestExpectationFromCounts_SingleQubitTermsShareCircuit(t *testing.T) {
	est := skipEstimator(t)
	obs := observableOf(t, map[string]float64{"ZZ": 1, "ZI": 0.5, "IZ": -0.5}, "ZZ", "ZI", "IZ")

	circs, err := est.PreprocessCircuits(bellCircuit(t), obs, nil)
	require.NoError(t, err)
	// All three terms are Z-basis compatible.
	require.Len(t, circs, 1)

	// Anti-correlated outcomes: ⟨ZZ⟩ = -1, ⟨ZI⟩ = ⟨IZ⟩ = 0.
	counts := []estimator.Counts{{"01": 500, "10": 500}}
	value, err := est.ExpectationFromCounts(circs, counts)
	require.NoError(t, err)
	require.InDelta(t, -1, value, 1e-12)
}

// ------------------------------------------------------------------------
// 2. Failure modes.
// ------------------------------------------------------------------------

func TestExpectationFromCounts_LengthMismatch(t *testing.T) {
	est := skipEstimator(t)
	obs := observableOf(t, map[string]float64{"ZZ": 1}, "ZZ")
	circs, err := est.PreprocessCircuits(bellCircuit(t), obs, nil)
	require.NoError(t, err)

	_, err = est.ExpectationFromCounts(circs, nil)
	require.ErrorIs(t, err, estimator.ErrCountsMismatch)

	_, err = est.ExpectationFromCounts(circs, []estimator.Counts{{"00": 1}, {"00": 1}})
	require.ErrorIs(t, err, estimator.ErrCountsMismatch)
}

func TestExpectationFromCounts_EmptyCounts(t *testing.T) {
	est := skipEstimator(t)
	obs := observableOf(t, map[string]float64{"ZZ": 1}, "ZZ")
	circs, err := est.PreprocessCircuits(bellCircuit(t), obs, nil)
	require.NoError(t, err)

	_, err = est.ExpectationFromCounts(circs, []estimator.Counts{{}})
	require.ErrorIs(t, err, estimator.ErrEmptyCounts)
}

func TestExpectationFromCounts_ShortBitstring(t *testing.T) {
	est := skipEstimator(t)
	obs := observableOf(t, map[string]float64{"ZZ": 1}, "ZZ")
	circs, err := est.PreprocessCircuits(bellCircuit(t), obs, nil)
	require.NoError(t, err)

	_, err = est.ExpectationFromCounts(circs, []estimator.Counts{{"0": 100}})
	require.ErrorIs(t, err, estimator.ErrBitstringLength)
}

func TestExpectationFromCounts_MissingMetadata(t *testing.T) {
	est := skipEstimator(t)
	bare := circuit.MustNew(2, 2)
	_, err := est.ExpectationFromCounts([]*circuit.Circuit{bare}, []estimator.Counts{{"00": 1}})
	require.ErrorIs(t, err, estimator.ErrMissingMetadata)
}

func TestExpectationFromCounts_IdentityOnlyGroup(t *testing.T) {
	est := skipEstimator(t)
	obs := pauli.NewObservable()
	require.NoError(t, obs.Add(pauli.MustParseTerm("II"), 2.5))

	circs, err := est.PreprocessCircuits(bellCircuit(t), obs, nil)
	require.NoError(t, err)
	require.Len(t, circs, 1)

	// An identity term contributes its coefficient regardless of outcomes.
	value, err := est.ExpectationFromCounts(circs, []estimator.Counts{{"0": 600, "1": 400}})
	require.NoError(t, err)
	require.InDelta(t, 2.5, value, 1e-12)
}
