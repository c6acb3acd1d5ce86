package pauli

import (
	"errors"
	"fmt"
)

// ErrNilObservable indicates a nil *Observable was passed where a value is required.
var ErrNilObservable = errors.New("pauli: observable is nil")

// zeroTolerance is the magnitude below which a coefficient is dropped.
const zeroTolerance = 1e-12

// Observable is a weighted sum of Pauli terms over a fixed qubit count.
//
// Terms are kept in insertion order, which downstream grouping relies on for
// determinism. Phases are canonicalized away on Add: the stored terms are
// always phase-free and the phase factor lives in the coefficient.
type Observable struct {
	numQubits int
	order     []string
	terms     map[string]Term
	coeffs    map[string]complex128
}

// NewObservable returns an empty observable. The qubit count is fixed by the
// first term added.
func NewObservable() *Observable {
	return &Observable{
		terms:  make(map[string]Term),
		coeffs: make(map[string]complex128),
	}
}

// Add accumulates coeff·t into the observable. The term's phase is folded
// into the coefficient and the phase-free term is stored. Adding onto an
// existing term sums coefficients; a sum that cancels below tolerance removes
// the entry entirely.
func (o *Observable) Add(t Term, coeff complex128) error {
	if o == nil {
		return ErrNilObservable
	}
	if t.NumQubits() == 0 {
		return ErrEmptyTerm
	}
	if o.numQubits == 0 {
		o.numQubits = t.NumQubits()
	} else if t.NumQubits() != o.numQubits {
		return fmt.Errorf("%w: observable has %d qubits, term has %d", ErrLengthMismatch, o.numQubits, t.NumQubits())
	}

	// Fold the phase into the coefficient; store the bare tensor product.
	coeff *= t.PhaseFactor()
	key := t.Key()

	if _, exists := o.coeffs[key]; exists {
		sum := o.coeffs[key] + coeff
		if isZero(sum) {
			o.remove(key)
			return nil
		}
		o.coeffs[key] = sum
		return nil
	}

	if isZero(coeff) {
		return nil
	}
	o.order = append(o.order, key)
	o.terms[key] = t.WithoutPhase()
	o.coeffs[key] = coeff

	return nil
}

// remove drops the entry for key, preserving the order of the remainder.
func (o *Observable) remove(key string) {
	delete(o.terms, key)
	delete(o.coeffs, key)
	for i, k := range o.order {
		if k == key {
			o.order = append(o.order[:i], o.order[i+1:]...)
			return
		}
	}
}

// isZero reports whether both parts of c are below the drop tolerance.
func isZero(c complex128) bool {
	re, im := real(c), imag(c)
	if re < 0 {
		re = -re
	}
	if im < 0 {
		im = -im
	}

	return re < zeroTolerance && im < zeroTolerance
}

// Len returns the number of stored terms.
func (o *Observable) Len() int {
	if o == nil {
		return 0
	}

	return len(o.order)
}

// NumQubits returns the fixed qubit count, or 0 for an empty observable.
func (o *Observable) NumQubits() int {
	if o == nil {
		return 0
	}

	return o.numQubits
}

// Terms returns the stored (phase-free) terms in insertion order.
func (o *Observable) Terms() []Term {
	if o == nil {
		return nil
	}
	out := make([]Term, len(o.order))
	for i, k := range o.order {
		out[i] = o.terms[k]
	}

	return out
}

// Coefficients returns the coefficients aligned with Terms.
func (o *Observable) Coefficients() []complex128 {
	if o == nil {
		return nil
	}
	out := make([]complex128, len(o.order))
	for i, k := range o.order {
		out[i] = o.coeffs[k]
	}

	return out
}

// Coefficient returns the coefficient of t's tensor product (phase ignored)
// and whether the term is present.
func (o *Observable) Coefficient(t Term) (complex128, bool) {
	if o == nil {
		return 0, false
	}
	c, ok := o.coeffs[t.Key()]

	return c, ok
}

// Select builds a new observable holding only the given terms with their
// current coefficients. Terms absent from o are skipped.
func (o *Observable) Select(terms []Term) (*Observable, error) {
	if o == nil {
		return nil, ErrNilObservable
	}
	sub := NewObservable()
	for _, t := range terms {
		if c, ok := o.coeffs[t.Key()]; ok {
			if err := sub.Add(t.WithoutPhase(), c); err != nil {
				return nil, err
			}
		}
	}

	return sub, nil
}

// Equal reports whether both observables hold the same terms with the same
// coefficients, regardless of insertion order.
func (o *Observable) Equal(other *Observable) bool {
	if o == nil || other == nil {
		return o == other
	}
	if len(o.order) != len(other.order) || o.numQubits != other.numQubits {
		return false
	}
	for k, c := range o.coeffs {
		if oc, ok := other.coeffs[k]; !ok || !isZero(c-oc) {
			return false
		}
	}

	return true
}
