package decompose_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qpest/decompose"
	"github.com/katalvlaran/qpest/pauli"
)

// observableOf builds an observable with unit coefficients, in order.
func observableOf(t *testing.T, labels ...string) *pauli.Observable {
	t.Helper()
	obs := pauli.NewObservable()
	for _, l := range labels {
		require.NoError(t, obs.Add(pauli.MustParseTerm(l), 1))
	}

	return obs
}

// ------------------------------------------------------------------------
// 1. Union basis.
// ------------------------------------------------------------------------

func TestGroupBasis(t *testing.T) {
	terms := []pauli.Term{
		pauli.MustParseTerm("XY"),
		pauli.MustParseTerm("II"),
		pauli.MustParseTerm("XI"),
		pauli.MustParseTerm("IY"),
	}
	basis, err := decompose.GroupBasis(terms)
	require.NoError(t, err)
	require.Equal(t, "XY", basis.String())
}

func TestGroupBasis_Errors(t *testing.T) {
	_, err := decompose.GroupBasis(nil)
	require.ErrorIs(t, err, decompose.ErrEmptyGroup)

	_, err = decompose.GroupBasis([]pauli.Term{
		pauli.MustParseTerm("XX"),
		pauli.MustParseTerm("ZZ"),
	})
	require.ErrorIs(t, err, decompose.ErrNonCommuting)

	_, err = decompose.GroupBasis([]pauli.Term{
		pauli.MustParseTerm("XX"),
		pauli.MustParseTerm("X"),
	})
	require.ErrorIs(t, err, pauli.ErrLengthMismatch)
}

// ------------------------------------------------------------------------
// 2. Naive grouping.
// ------------------------------------------------------------------------

func TestNaive_SingletonPerTerm(t *testing.T) {
	obs := observableOf(t, "ZZ", "XX", "IZ")
	groups, err := decompose.Naive{}.Decompose(obs)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	for i, g := range groups {
		require.Len(t, g.Terms, 1)
		require.True(t, g.Terms[0].Equal(obs.Terms()[i]))
		require.True(t, g.Basis.Equal(g.Terms[0].WithoutPhase()))
	}
}

func TestNaive_NilAndEmpty(t *testing.T) {
	_, err := decompose.Naive{}.Decompose(nil)
	require.ErrorIs(t, err, decompose.ErrNilObservable)

	groups, err := decompose.Naive{}.Decompose(pauli.NewObservable())
	require.NoError(t, err)
	require.Empty(t, groups)
}

// ------------------------------------------------------------------------
// 3. Abelian grouping.
// ------------------------------------------------------------------------

func TestAbelian_MergesCompatibleTerms(t *testing.T) {
	obs := observableOf(t, "XY", "II", "XI", "IY")
	groups, err := decompose.Abelian{}.Decompose(obs)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Terms, 4)
	require.Equal(t, "XY", groups[0].Basis.String())
}

func TestAbelian_SplitsConflictingTerms(t *testing.T) {
	// ZZ-compatible terms share a group; XX opens its own.
	obs := observableOf(t, "II", "IZ", "ZI", "ZZ", "XX")
	groups, err := decompose.Abelian{}.Decompose(obs)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Len(t, groups[0].Terms, 4)
	require.Equal(t, "ZZ", groups[0].Basis.String())
	require.Len(t, groups[1].Terms, 1)
	require.Equal(t, "XX", groups[1].Basis.String())
}

func TestAbelian_PartitionIsSoundAndComplete(t *testing.T) {
	obs := observableOf(t, "XYZ", "ZZI", "IYI", "XII", "ZIZ", "IIZ")
	groups, err := decompose.Abelian{}.Decompose(obs)
	require.NoError(t, err)

	total := 0
	for _, g := range groups {
		total += len(g.Terms)
		// Every member must commute qubit-wise with every other member.
		for i := range g.Terms {
			for j := i + 1; j < len(g.Terms); j++ {
				ok, cErr := g.Terms[i].CommutesQubitWise(g.Terms[j])
				require.NoError(t, cErr)
				require.True(t, ok, "%s vs %s", g.Terms[i], g.Terms[j])
			}
		}
		// The recorded basis must equal the recomputed union basis.
		basis, bErr := decompose.GroupBasis(g.Terms)
		require.NoError(t, bErr)
		require.True(t, g.Basis.Equal(basis))
	}
	require.Equal(t, obs.Len(), total)
}

func TestAbelian_NilAndEmpty(t *testing.T) {
	_, err := decompose.Abelian{}.Decompose(nil)
	require.ErrorIs(t, err, decompose.ErrNilObservable)

	groups, err := decompose.Abelian{}.Decompose(pauli.NewObservable())
	require.NoError(t, err)
	require.Empty(t, groups)
}

func TestAbelian_IsDeterministic(t *testing.T) {
	obs := observableOf(t, "XX", "ZZ", "XI", "IZ")
	first, err := decompose.Abelian{}.Decompose(obs)
	require.NoError(t, err)
	second, err := decompose.Abelian{}.Decompose(obs)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for gi := range first {
		require.Len(t, second[gi].Terms, len(first[gi].Terms))
		for ti := range first[gi].Terms {
			require.True(t, first[gi].Terms[ti].Equal(second[gi].Terms[ti]))
		}
	}
}
