package grover

import "sort"

/*
Outcome is one measured basis state with how often it was observed and its
share of the trials.
*/
type Outcome struct {
	Bits        string
	Count       int
	Probability float64
}

// Counts maps an outcome bit string to how many trials produced it.
type Counts map[string]int

// Total sums every count.
func (c Counts) Total() int {
	total := 0
	for _, count := range c {
		total += count
	}
	return total
}

/*
Mode returns the most frequent outcome. Ties go to the lexicographically
smallest bit string so the answer does not depend on map order.
*/
func (c Counts) Mode() (string, int) {
	var (
		best  string
		count = -1
	)

	for bits, n := range c {
		if n > count || (n == count && bits < best) {
			best, count = bits, n
		}
	}

	if count < 0 {
		return "", 0
	}
	return best, count
}

// Sorted lists the outcomes by descending count, then by bit string.
func (c Counts) Sorted() []Outcome {
	total := float64(c.Total())
	out := make([]Outcome, 0, len(c))

	for bits, n := range c {
		o := Outcome{Bits: bits, Count: n}
		if total > 0 {
			o.Probability = float64(n) / total
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Bits < out[j].Bits
	})
	return out
}

// Frequencies returns the observed share of every drawn outcome.
func (c Counts) Frequencies() map[string]float64 {
	total := float64(c.Total())
	freq := make(map[string]float64, len(c))
	if total == 0 {
		return freq
	}

	for bits, n := range c {
		freq[bits] = float64(n) / total
	}
	return freq
}

// Dense returns a copy holding every n-bit outcome, zero-valued when never drawn.
func (c Counts) Dense(n int) Counts {
	dense := make(Counts, 1<<uint(n))
	for i := 0; i < 1<<uint(n); i++ {
		dense[Bitstring(i, n)] = 0
	}
	for bits, count := range c {
		dense[bits] += count
	}
	return dense
}

// merge adds other into c.
func (c Counts) merge(other Counts) {
	for bits, n := range other {
		c[bits] += n
	}
}
