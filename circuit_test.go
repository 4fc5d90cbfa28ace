package grover

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// recordingBackend remembers every operator applied and the norm right after it.
type recordingBackend struct {
	*Simulator
	steps []string
	norms []float64
}

func (rb *recordingBackend) ApplyHadamard() error {
	err := rb.Simulator.ApplyHadamard()
	rb.record("hadamard")
	return err
}

func (rb *recordingBackend) ApplyDiagonal(signs SignVector) error {
	err := rb.Simulator.ApplyDiagonal(signs)
	rb.record("diagonal")
	return err
}

func (rb *recordingBackend) record(step string) {
	rb.steps = append(rb.steps, step)
	rb.norms = append(rb.norms, rb.State().Norm())
}

// driftingBackend corrupts the state on every diagonal operator.
type driftingBackend struct {
	*Simulator
}

func (db *driftingBackend) ApplyDiagonal(signs SignVector) error {
	if err := db.Simulator.ApplyDiagonal(signs); err != nil {
		return err
	}
	db.State().Amplitudes[0] *= 1.1
	return nil
}

func newTestCircuit(n int, oracle Oracle, cfg *Config) (*Circuit, error) {
	sim, err := NewSimulator(n, cfg)
	if err != nil {
		return nil, err
	}

	ops, err := BuildOperators(n, oracle)
	if err != nil {
		return nil, err
	}

	return NewCircuit(sim, ops, cfg)
}

func TestIterations(t *testing.T) {
	Convey("Given register sizes 1 through 8", t, func() {
		want := map[int]int{1: 1, 2: 1, 3: 2, 4: 3, 5: 4, 6: 6, 7: 8, 8: 12}

		Convey("Iterations should be floor(π/4 · √(2^n))", func() {
			for n, iterations := range want {
				So(Iterations(n), ShouldEqual, iterations)
			}
		})
	})
}

func TestNewCircuit(t *testing.T) {
	Convey("Given a 3-qubit circuit marking 100", t, func() {
		circuit, err := newTestCircuit(3, MatchOracle("100"), nil)
		So(err, ShouldBeNil)
		defer circuit.Backend().Close()

		Convey("It should be ready with two iterations applied", func() {
			So(circuit.State(), ShouldEqual, CircuitReady)
			So(circuit.State().String(), ShouldEqual, "ready")
			So(circuit.Iterations(), ShouldEqual, 2)
			So(circuit.Operators().Marked, ShouldEqual, 1)
		})

		Convey("The marked string should carry nearly all of the mass", func() {
			probs := circuit.Backend().Probabilities()
			So(probs[4], ShouldAlmostEqual, 0.9453125, 1e-9)
		})

		Convey("Running it should move it to executed", func() {
			counts, err := circuit.Run(context.Background(), 1000, 7)
			So(err, ShouldBeNil)
			So(counts.Total(), ShouldEqual, 1000)

			mode, _ := counts.Mode()
			So(mode, ShouldEqual, "100")
			So(circuit.State(), ShouldEqual, CircuitExecuted)

			Convey("And running again should stay executed", func() {
				again, err := circuit.Run(context.Background(), 1000, 7)
				So(err, ShouldBeNil)
				So(again, ShouldResemble, counts)
				So(circuit.State(), ShouldEqual, CircuitExecuted)
			})
		})

		Convey("A non-positive trial count should be rejected", func() {
			for _, trials := range []int{0, -5} {
				_, err := circuit.Run(context.Background(), trials, 1)
				So(errors.Is(err, ErrInvalidTrialCount), ShouldBeTrue)
			}
			So(circuit.State(), ShouldEqual, CircuitReady)
		})

		Convey("The register and oracle should be immutable", func() {
			So(errors.Is(circuit.SetQubits(4), ErrImmutableCircuit), ShouldBeTrue)
			So(errors.Is(circuit.SetOracle(MatchOracle("001")), ErrImmutableCircuit), ShouldBeTrue)
			So(circuit.Operators().Oracle[4], ShouldEqual, int8(-1))
		})
	})

	Convey("Given operators for the wrong register size", t, func() {
		sim, err := NewSimulator(3, nil)
		So(err, ShouldBeNil)
		defer sim.Close()

		ops, err := BuildOperators(2, MatchOracle("10"))
		So(err, ShouldBeNil)

		_, err = NewCircuit(sim, ops, nil)
		So(errors.Is(err, ErrInvalidDimension), ShouldBeTrue)
	})
}

func TestCircuitNormalization(t *testing.T) {
	Convey("Given strict normalization and a recording backend", t, func() {
		cfg := NewConfig()
		cfg.StrictNormalization = true

		sim, err := NewSimulator(4, cfg)
		So(err, ShouldBeNil)
		defer sim.Close()

		rb := &recordingBackend{Simulator: sim}
		ops, err := BuildOperators(4, MatchOracle("1011"))
		So(err, ShouldBeNil)

		_, err = NewCircuit(rb, ops, cfg)
		So(err, ShouldBeNil)

		Convey("Every operator should keep the norm at one", func() {
			So(len(rb.steps), ShouldEqual, 1+5*Iterations(4))
			for _, norm := range rb.norms {
				So(math.Abs(norm-1), ShouldBeLessThanOrEqualTo, 1e-9)
			}
		})

		Convey("Each round should run oracle, H, Z_0, H and -I", func() {
			So(rb.steps[1:6], ShouldResemble, []string{
				"diagonal", "hadamard", "diagonal", "hadamard", "diagonal",
			})
		})
	})

	Convey("Given a backend that drifts", t, func() {
		for _, strict := range []bool{true, false} {
			cfg := NewConfig()
			cfg.StrictNormalization = strict

			sim, err := NewSimulator(3, cfg)
			So(err, ShouldBeNil)

			ops, err := BuildOperators(3, MatchOracle("011"))
			So(err, ShouldBeNil)

			_, err = NewCircuit(&driftingBackend{Simulator: sim}, ops, cfg)
			So(errors.Is(err, ErrNumericDrift), ShouldBeTrue)
			sim.Close()
		}
	})

	Convey("Given the global negation step is disabled", t, func() {
		cfg := NewConfig()
		cfg.GlobalNegation = false

		plain, err := newTestCircuit(5, MatchOracle("10101"), cfg)
		So(err, ShouldBeNil)
		defer plain.Backend().Close()

		negated, err := newTestCircuit(5, MatchOracle("10101"), nil)
		So(err, ShouldBeNil)
		defer negated.Backend().Close()

		Convey("Every probability should be unchanged", func() {
			a, b := plain.Backend().Probabilities(), negated.Backend().Probabilities()
			for i := range a {
				So(a[i], ShouldAlmostEqual, b[i], 1e-12)
			}
		})
	})
}

func TestCircuitEdgeCases(t *testing.T) {
	Convey("Given a single qubit marking 1", t, func() {
		circuit, err := newTestCircuit(1, MatchOracle("1"), nil)
		So(err, ShouldBeNil)
		defer circuit.Backend().Close()

		Convey("One iteration leaves an even split", func() {
			So(circuit.Iterations(), ShouldEqual, 1)
			probs := circuit.Backend().Probabilities()
			So(probs[0], ShouldAlmostEqual, 0.5, 1e-9)
			So(probs[1], ShouldAlmostEqual, 0.5, 1e-9)
		})
	})

	Convey("Given an oracle marking nothing on 2 qubits", t, func() {
		circuit, err := newTestCircuit(2, MatchOracle(), nil)
		So(err, ShouldBeNil)
		defer circuit.Backend().Close()

		Convey("The state should stay uniform", func() {
			So(circuit.Operators().Marked, ShouldEqual, 0)
			for _, p := range circuit.Backend().Probabilities() {
				So(p, ShouldAlmostEqual, 0.25, 1e-9)
			}
		})
	})

	Convey("Given two of four strings marked", t, func() {
		circuit, err := newTestCircuit(2, MatchOracle("01", "10"), nil)
		So(err, ShouldBeNil)
		defer circuit.Backend().Close()

		Convey("Both are reflected and share half the mass", func() {
			probs := circuit.Backend().Probabilities()
			So(probs[1], ShouldAlmostEqual, probs[2], 1e-12)
			So(probs[1]+probs[2], ShouldAlmostEqual, 0.5, 1e-9)
		})
	})
}
