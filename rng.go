package grover

import "math/rand"

/*
Source is the random-number source measurement sampling draws from.
*math/rand.Rand satisfies it. A Source is not expected to be goroutine-safe,
so every sampling partition gets its own.
*/
type Source interface {
	Float64() float64
}

// defaultSeed is used whenever a caller passes seed == 0.
const defaultSeed int64 = 1

func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

/*
deriveSeed mixes a parent seed and a stream id into an independent seed with a
SplitMix64 finalizer, so neighbouring partitions do not get correlated streams.
*/
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// deriveRNG returns the rng substream for one sampling partition.
func deriveRNG(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(deriveSeed(seed, stream)))
}
