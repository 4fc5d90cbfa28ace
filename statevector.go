package grover

import (
	"fmt"
	"math"

	"github.com/theapemachine/errnie"
)

/*
StateVector holds the 2^n complex amplitudes of an n-qubit register. Index i is
the basis state whose bit string is Bitstring(i, n), MSB first.

All mutations happen in place. Once a circuit is ready the vector is only read.
*/
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// QubitProbability is the marginal distribution of a single qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

/*
NewStateVector allocates |0...0⟩ for n qubits after the register governor of
cfg admits the size. A nil cfg uses NewConfig.
*/
func NewStateVector(n int, cfg *Config) (*StateVector, error) {
	if err := NewResourceGovernor(cfg).Admit(n); err != nil {
		return nil, err
	}

	amps := make([]complex128, 1<<uint(n))
	amps[0] = 1

	errnie.Info("NewStateVector - qubits %d, dimension %d", n, len(amps))

	return &StateVector{Amplitudes: amps, NumQubits: n}, nil
}

// Dimension is N = 2^n.
func (s *StateVector) Dimension() int {
	return len(s.Amplitudes)
}

// Amplitude returns the amplitude of basis state i.
func (s *StateVector) Amplitude(i int) (complex128, error) {
	if i < 0 || i >= len(s.Amplitudes) {
		return 0, fmt.Errorf("basis index %d of %d: %w", i, len(s.Amplitudes), ErrInvalidDimension)
	}
	return s.Amplitudes[i], nil
}

/*
ApplyHadamardAll applies H⊗n with the fast Walsh-Hadamard butterfly. Each
stage handles one qubit: amplitudes whose indices differ only in that bit are
paired and replaced by (a+b)/√2 and (a-b)/√2. O(N log N), no extra storage.
*/
func (s *StateVector) ApplyHadamardAll() {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)

	for half := 1; half < n; half <<= 1 {
		for block := 0; block < n; block += half << 1 {
			for i := block; i < block+half; i++ {
				a, b := s.Amplitudes[i], s.Amplitudes[i+half]
				s.Amplitudes[i] = hFactor * (a + b)
				s.Amplitudes[i+half] = hFactor * (a - b)
			}
		}
	}
}

// ApplyDiagonalSign multiplies amplitude i by signs[i].
func (s *StateVector) ApplyDiagonalSign(signs SignVector) error {
	if len(signs) != len(s.Amplitudes) {
		return fmt.Errorf(
			"sign vector of length %d on dimension %d: %w",
			len(signs), len(s.Amplitudes), ErrInvalidDimension,
		)
	}

	for i, sign := range signs {
		if sign < 0 {
			s.Amplitudes[i] = -s.Amplitudes[i]
		}
	}
	return nil
}

// Probabilities returns |amplitude|² for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		probs[i] = real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return probs
}

// Norm returns the sum of squared magnitudes.
func (s *StateVector) Norm() float64 {
	total := 0.0
	for _, amp := range s.Amplitudes {
		total += real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return total
}

// Validate fails with ErrNumericDrift when the norm is off by more than tolerance.
func (s *StateVector) Validate(tolerance float64) error {
	norm := s.Norm()
	if drift := math.Abs(norm - 1); drift > tolerance || math.IsNaN(norm) {
		return fmt.Errorf("norm %.17g drifts by %.3g (tolerance %.3g): %w", norm, drift, tolerance, ErrNumericDrift)
	}
	return nil
}

/*
QubitProbabilities returns the marginal P(0)/P(1) per qubit. Qubit k is
character k of the outcome bit string, so qubit 0 is the most significant bit.
*/
func (s *StateVector) QubitProbabilities() []QubitProbability {
	return marginals(s.Probabilities(), s.NumQubits)
}

func marginals(probabilities []float64, n int) []QubitProbability {
	out := make([]QubitProbability, n)

	for i, prob := range probabilities {
		for q := 0; q < n; q++ {
			if i&(1<<uint(n-1-q)) != 0 {
				out[q].Prob1 += prob
			} else {
				out[q].Prob0 += prob
			}
		}
	}

	return out
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}
