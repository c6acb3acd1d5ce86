package decompose

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qpest/pauli"
)

// Sentinel errors returned by the decompose package.
var (
	// ErrNilObservable indicates a nil observable was passed to a decomposer.
	ErrNilObservable = errors.New("decompose: observable is nil")

	// ErrNonCommuting indicates a term set with an ambiguous union basis.
	ErrNonCommuting = errors.New("decompose: terms do not commute qubit-wise")

	// ErrEmptyGroup indicates a group construction from zero terms.
	ErrEmptyGroup = errors.New("decompose: measurement group needs at least one term")
)

// MeasurementGroup is a set of qubit-wise commuting terms together with
// their resolved union measurement basis. The basis is a phase-free term
// whose label on qubit q is the (unique) non-I label any group member
// carries there, or I when no member measures q.
type MeasurementGroup struct {
	Terms []pauli.Term
	Basis pauli.Term
}

// Decomposer partitions an observable's terms into measurement groups.
// Implementations are stateless values; construct a fresh one per use.
type Decomposer interface {
	Decompose(obs *pauli.Observable) ([]MeasurementGroup, error)
}

// GroupBasis computes the union measurement basis of a commuting term set.
// It fails with ErrNonCommuting as soon as two terms demand different
// non-I labels on the same qubit — the union would be ambiguous, so no
// basis is ever silently picked.
func GroupBasis(terms []pauli.Term) (pauli.Term, error) {
	if len(terms) == 0 {
		return pauli.Term{}, ErrEmptyGroup
	}
	n := terms[0].NumQubits()
	basis := make([]pauli.Label, n)

	for _, t := range terms {
		if t.NumQubits() != n {
			return pauli.Term{}, fmt.Errorf("%w: %d vs %d qubits", pauli.ErrLengthMismatch, n, t.NumQubits())
		}
		for _, q := range t.Support() {
			l, _ := t.At(q)
			switch basis[q] {
			case pauli.I:
				basis[q] = l
			case l:
				// already assigned the same basis
			default:
				return pauli.Term{}, fmt.Errorf("%w: qubit %d needs both %s and %s", ErrNonCommuting, q, basis[q], l)
			}
		}
	}

	return pauli.NewTerm(basis, 0)
}

// NewMeasurementGroup validates that the terms pairwise commute qubit-wise
// (via their union basis) and returns the group.
func NewMeasurementGroup(terms []pauli.Term) (MeasurementGroup, error) {
	basis, err := GroupBasis(terms)
	if err != nil {
		return MeasurementGroup{}, err
	}
	cp := make([]pauli.Term, len(terms))
	copy(cp, terms)

	return MeasurementGroup{Terms: cp, Basis: basis}, nil
}

// Naive decomposes every term into its own singleton group.
type Naive struct{}

// Decompose returns one singleton group per term, in insertion order.
func (Naive) Decompose(obs *pauli.Observable) ([]MeasurementGroup, error) {
	if obs == nil {
		return nil, ErrNilObservable
	}
	terms := obs.Terms()
	groups := make([]MeasurementGroup, 0, len(terms))
	for _, t := range terms {
		g, err := NewMeasurementGroup([]pauli.Term{t})
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, nil
}

// Abelian decomposes terms greedily into qubit-wise commuting groups.
type Abelian struct{}

// Decompose visits terms in insertion order and adds each to the first open
// group whose basis is compatible (equal or I per qubit) with the term's
// non-I labels, widening that basis; otherwise it opens a new group.
// The result is deterministic and sound but not guaranteed minimal.
func (Abelian) Decompose(obs *pauli.Observable) ([]MeasurementGroup, error) {
	if obs == nil {
		return nil, ErrNilObservable
	}
	terms := obs.Terms()
	if len(terms) == 0 {
		return []MeasurementGroup{}, nil
	}

	n := obs.NumQubits()
	var members [][]pauli.Term
	var bases [][]pauli.Label

nextTerm:
	for _, t := range terms {
		for gi := range bases {
			if fits(bases[gi], t) {
				widen(bases[gi], t)
				members[gi] = append(members[gi], t)
				continue nextTerm
			}
		}
		basis := make([]pauli.Label, n)
		widen(basis, t)
		bases = append(bases, basis)
		members = append(members, []pauli.Term{t})
	}

	groups := make([]MeasurementGroup, len(members))
	for gi := range members {
		basis, err := pauli.NewTerm(bases[gi], 0)
		if err != nil {
			return nil, err
		}
		groups[gi] = MeasurementGroup{Terms: members[gi], Basis: basis}
	}

	return groups, nil
}

// fits reports whether t's non-I labels are compatible with the group basis.
func fits(basis []pauli.Label, t pauli.Term) bool {
	for _, q := range t.Support() {
		l, _ := t.At(q)
		if basis[q] != pauli.I && basis[q] != l {
			return false
		}
	}

	return true
}

// widen assigns t's non-I labels into the group basis.
func widen(basis []pauli.Label, t pauli.Term) {
	for _, q := range t.Support() {
		basis[q], _ = t.At(q)
	}
}
