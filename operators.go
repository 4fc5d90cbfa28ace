package grover

import "fmt"

// Oracle reports whether an n-bit string is marked.
type Oracle func(bits string) bool

/*
SignVector is a diagonal ±1 operator stored as its diagonal. Every reflection
Grover needs is diagonal, so this replaces an N×N matrix with N bytes.
*/
type SignVector []int8

// Flipped counts the -1 entries.
func (sv SignVector) Flipped() int {
	count := 0
	for _, sign := range sv {
		if sign < 0 {
			count++
		}
	}
	return count
}

func identitySigns(n int) (SignVector, error) {
	if n <= 0 || n > HardMaxQubits {
		return nil, fmt.Errorf("%d qubits: %w", n, ErrInvalidDimension)
	}

	signs := make(SignVector, 1<<uint(n))
	for i := range signs {
		signs[i] = 1
	}
	return signs, nil
}

/*
BuildOracleReflection returns Z_f: -1 on every index whose bit string the
oracle marks, +1 elsewhere. Every marked string is flipped, not only the first.
An oracle that marks nothing yields the identity.
*/
func BuildOracleReflection(n int, oracle Oracle) (SignVector, error) {
	if oracle == nil {
		return nil, fmt.Errorf("nil oracle: %w", ErrInvalidDimension)
	}

	signs, err := identitySigns(n)
	if err != nil {
		return nil, err
	}

	for i := range signs {
		if oracle(Bitstring(i, n)) {
			signs[i] = -1
		}
	}
	return signs, nil
}

// BuildZeroReflection returns Z_0: -1 at index 0, +1 elsewhere.
func BuildZeroReflection(n int) (SignVector, error) {
	signs, err := identitySigns(n)
	if err != nil {
		return nil, err
	}

	signs[0] = -1
	return signs, nil
}

/*
BuildGlobalNegation returns -I. It only moves the global phase and leaves every
measured probability unchanged.
*/
func BuildGlobalNegation(n int) (SignVector, error) {
	signs, err := identitySigns(n)
	if err != nil {
		return nil, err
	}

	for i := range signs {
		signs[i] = -1
	}
	return signs, nil
}

/*
Operators bundles the three reflections of a Grover circuit. They are built
once from (n, oracle) and never change afterwards.
*/
type Operators struct {
	Qubits   int
	Oracle   SignVector
	Zero     SignVector
	Negation SignVector
	Marked   int
}

func BuildOperators(n int, oracle Oracle) (*Operators, error) {
	zf, err := BuildOracleReflection(n, oracle)
	if err != nil {
		return nil, err
	}

	z0, err := BuildZeroReflection(n)
	if err != nil {
		return nil, err
	}

	ne, err := BuildGlobalNegation(n)
	if err != nil {
		return nil, err
	}

	return &Operators{
		Qubits:   n,
		Oracle:   zf,
		Zero:     z0,
		Negation: ne,
		Marked:   zf.Flipped(),
	}, nil
}

/*
MatchOracle marks exactly the given bit strings. With no targets it marks
nothing.
*/
func MatchOracle(targets ...string) Oracle {
	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		set[target] = struct{}{}
	}

	return func(bits string) bool {
		_, ok := set[bits]
		return ok
	}
}
