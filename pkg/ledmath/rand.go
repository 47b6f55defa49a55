package ledmath

// Linear congruential parameters, X(n+1) = 2053*X(n) + 13849 over uint16.
const (
	randMul = 2053
	randInc = 13849

	// DefaultSeed is the generator state NewRand substitutes for seed 0.
	DefaultSeed = 1337
)

// Rand is a deterministic 16-bit linear congruential generator. It is small
// enough to copy by value, which is how effects snapshot the state to replay
// the same pattern over several frames.
type Rand struct {
	seed uint16
}

// NewRand returns a generator starting at seed, or at DefaultSeed when seed
// is 0.
func NewRand(seed uint16) Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return Rand{seed: seed}
}

// Seed returns the current generator state.
func (r *Rand) Seed() uint16 { return r.seed }

// SetSeed replaces the generator state.
func (r *Rand) SetSeed(seed uint16) { r.seed = seed }

// AddEntropy folds outside entropy into the generator state.
func (r *Rand) AddEntropy(entropy uint16) { r.seed += entropy }

// Uint8 advances the generator and returns the low byte of the new state.
func (r *Rand) Uint8() uint8 {
	r.seed = r.seed*randMul + randInc
	return uint8(r.seed)
}

// Uint16 advances the generator and returns the new state.
func (r *Rand) Uint16() uint16 {
	r.seed = r.seed*randMul + randInc
	return r.seed
}

// Intn8 returns a random byte below limit. Limit 0 yields 0.
func (r *Rand) Intn8(limit uint8) uint8 {
	return uint8((uint16(r.Uint8()) * uint16(limit)) >> 8)
}

// Intn16 returns a random value below limit. Limit 0 yields 0.
func (r *Rand) Intn16(limit uint16) uint16 {
	return uint16((uint32(r.Uint16()) * uint32(limit)) >> 16)
}

// Range8 returns a random byte in [min, max], both inclusive. An inverted
// range collapses to min.
func (r *Rand) Range8(min, max uint8) uint8 {
	if min > max {
		return min
	}
	delta := max - min
	if delta == 255 {
		return r.Uint8()
	}
	return r.Intn8(delta+1) + min
}

// Range16 returns a random value in [min, max], both inclusive. An inverted
// range collapses to min.
func (r *Rand) Range16(min, max uint16) uint16 {
	if min > max {
		return min
	}
	delta := max - min
	if delta == 65535 {
		return r.Uint16()
	}
	return r.Intn16(delta+1) + min
}
