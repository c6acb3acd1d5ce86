package pauli

import (
	"encoding/json"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// ErrBadJSON indicates malformed observable JSON.
var ErrBadJSON = errors.New("pauli: malformed observable JSON")

// codec is the jsoniter instance used for observable interchange.
var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// operatorJSON is one entry of the operator-list interchange format.
type operatorJSON struct {
	Pauli string          `json:"pauli"`
	Coeff json.RawMessage `json:"coeff"`
}

// complexJSON is the two-field form of a complex coefficient.
type complexJSON struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// ObservableFromJSON parses the operator-list format:
//
//	[{"pauli": "XX", "coeff": 1.5}, {"pauli": "ZY", "coeff": {"re": 0, "im": 1.2}}]
//
// A coefficient may be a plain number (real) or a {"re", "im"} object.
// Entries sharing a tensor product accumulate, exactly as Observable.Add.
func ObservableFromJSON(data []byte) (*Observable, error) {
	var ops []operatorJSON
	if err := codec.Unmarshal(data, &ops); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadJSON, err)
	}

	obs := NewObservable()
	for i, op := range ops {
		term, err := ParseTerm(op.Pauli)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBadJSON, i, err)
		}
		coeff, err := parseCoeff(op.Coeff)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBadJSON, i, err)
		}
		if err = obs.Add(term, coeff); err != nil {
			return nil, err
		}
	}

	return obs, nil
}

// parseCoeff accepts a bare number or a {"re", "im"} object.
func parseCoeff(raw json.RawMessage) (complex128, error) {
	if len(raw) == 0 {
		return 0, errors.New("missing coeff")
	}
	var re float64
	if err := codec.Unmarshal(raw, &re); err == nil {
		return complex(re, 0), nil
	}
	var c complexJSON
	if err := codec.Unmarshal(raw, &c); err != nil {
		return 0, err
	}

	return complex(c.Re, c.Im), nil
}

// MarshalJSON renders the observable in the same operator-list format,
// in insertion order. Real coefficients are written as bare numbers.
func (o *Observable) MarshalJSON() ([]byte, error) {
	if o == nil {
		return nil, ErrNilObservable
	}
	type entry struct {
		Pauli string `json:"pauli"`
		Coeff any    `json:"coeff"`
	}
	terms, coeffs := o.Terms(), o.Coefficients()
	ops := make([]entry, len(terms))
	for i := range terms {
		ops[i].Pauli = terms[i].String()
		if imag(coeffs[i]) == 0 {
			ops[i].Coeff = real(coeffs[i])
		} else {
			ops[i].Coeff = complexJSON{Re: real(coeffs[i]), Im: imag(coeffs[i])}
		}
	}

	return codec.Marshal(ops)
}
