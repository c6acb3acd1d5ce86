package estimator_test

import (
	"fmt"

	"github.com/katalvlaran/qpest/circuit"
	"github.com/katalvlaran/qpest/estimator"
	"github.com/katalvlaran/qpest/pauli"
)

type simBackend struct{}

func (simBackend) Name() string      { return "local-sim" }
func (simBackend) MaxQubits() int    { return 8 }
func (simBackend) IsSimulator() bool { return true }

// ExampleEstimator_ExpectationFromCounts walks the sampled path end to end:
// decompose a Bell-state observable into measurement groups, synthesize one
// circuit per group, and fold ideal counts back into ⟨ZZ⟩·0.5 + ⟨XX⟩·1.5.
func ExampleEstimator_ExpectationFromCounts() {
	est, err := estimator.New(simBackend{}, nil, nil, estimator.WithSkipTranspilation())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	bell := circuit.MustNew(2, 0)
	if err = bell.H(0); err != nil {
		fmt.Println("error:", err)
		return
	}
	if err = bell.CX(0, 1); err != nil {
		fmt.Println("error:", err)
		return
	}

	obs := pauli.NewObservable()
	if err = obs.Add(pauli.MustParseTerm("ZZ"), 0.5); err != nil {
		fmt.Println("error:", err)
		return
	}
	if err = obs.Add(pauli.MustParseTerm("XX"), 1.5); err != nil {
		fmt.Println("error:", err)
		return
	}

	circs, err := est.PreprocessCircuits(bell, obs, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("measurement circuits:", len(circs))

	// A Bell state is perfectly correlated in both bases.
	counts := []estimator.Counts{
		{"00": 500, "11": 500},
		{"00": 500, "11": 500},
	}
	value, err := est.ExpectationFromCounts(circs, counts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("expectation: %.2f\n", value)
	// Output:
	// measurement circuits: 2
	// expectation: 2.00
}
