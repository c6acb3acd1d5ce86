package pauli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qpest/pauli"
)

// ------------------------------------------------------------------------
// 1. Parsing and rendering.
// ------------------------------------------------------------------------

func TestParseTerm_LittleEndian(t *testing.T) {
	// "XY" puts Y on qubit 0 (rightmost char) and X on qubit 1.
	term, err := pauli.ParseTerm("XY")
	require.NoError(t, err)
	require.Equal(t, 2, term.NumQubits())

	l0, err := term.At(0)
	require.NoError(t, err)
	require.Equal(t, pauli.Y, l0)

	l1, err := term.At(1)
	require.NoError(t, err)
	require.Equal(t, pauli.X, l1)

	require.Equal(t, "XY", term.String())
}

func TestParseTerm_PhasePrefixes(t *testing.T) {
	cases := []struct {
		in     string
		phase  int
		factor complex128
	}{
		{"XX", 0, 1},
		{"+XX", 0, 1},
		{"-iXX", 1, complex(0, -1)},
		{"-XX", 2, -1},
		{"iXX", 3, complex(0, 1)},
		{"+iXX", 3, complex(0, 1)},
	}
	for _, tc := range cases {
		term, err := pauli.ParseTerm(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.phase, term.Phase(), tc.in)
		require.Equal(t, tc.factor, term.PhaseFactor(), tc.in)
	}
}

func TestParseTerm_Errors(t *testing.T) {
	_, err := pauli.ParseTerm("")
	require.ErrorIs(t, err, pauli.ErrEmptyTerm)

	_, err = pauli.ParseTerm("-")
	require.ErrorIs(t, err, pauli.ErrEmptyTerm)

	_, err = pauli.ParseTerm("XQZ")
	require.ErrorIs(t, err, pauli.ErrBadLabel)
}

func TestNewTerm_Validation(t *testing.T) {
	_, err := pauli.NewTerm(nil, 0)
	require.ErrorIs(t, err, pauli.ErrEmptyTerm)

	_, err = pauli.NewTerm([]pauli.Label{pauli.X}, 4)
	require.ErrorIs(t, err, pauli.ErrBadPhase)
}

// ------------------------------------------------------------------------
// 2. Structure queries.
// ------------------------------------------------------------------------

func TestTerm_SupportAndIdentity(t *testing.T) {
	term := pauli.MustParseTerm("IXII")
	require.Equal(t, []int{2}, term.Support())
	require.False(t, term.IsIdentity())

	id := pauli.MustParseTerm("III")
	require.Empty(t, id.Support())
	require.True(t, id.IsIdentity())
}

func TestTerm_Restrict(t *testing.T) {
	// "YIX": X on qubit 0, I on qubit 1, Y on qubit 2.
	term := pauli.MustParseTerm("YIX")
	restricted, err := term.Restrict([]int{0, 2})
	require.NoError(t, err)
	require.Equal(t, "YX", restricted.String())

	_, err = term.Restrict([]int{0, 7})
	require.ErrorIs(t, err, pauli.ErrBadIndex)

	_, err = term.Restrict(nil)
	require.ErrorIs(t, err, pauli.ErrEmptyTerm)
}

// ------------------------------------------------------------------------
// 3. Qubit-wise commutation.
// ------------------------------------------------------------------------

func TestTerm_CommutesQubitWise(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"XX", "XI", true},
		{"XX", "IX", true},
		{"XX", "II", true},
		{"XX", "ZZ", false},
		{"XY", "IY", true},
		{"XY", "YX", false},
		{"ZI", "IZ", true},
	}
	for _, tc := range cases {
		a, b := pauli.MustParseTerm(tc.a), pauli.MustParseTerm(tc.b)
		got, err := a.CommutesQubitWise(b)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "%s vs %s", tc.a, tc.b)

		// Commutation is symmetric.
		sym, err := b.CommutesQubitWise(a)
		require.NoError(t, err)
		require.Equal(t, got, sym)
	}
}

func TestTerm_CommutesQubitWise_LengthMismatch(t *testing.T) {
	a, b := pauli.MustParseTerm("XX"), pauli.MustParseTerm("X")
	_, err := a.CommutesQubitWise(b)
	require.ErrorIs(t, err, pauli.ErrLengthMismatch)
}
