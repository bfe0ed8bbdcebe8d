package core

// RNG is the single source of randomness for the simulation.
// Every probability roll (crits, drops, spawns, encounter outcomes)
// goes through it so a seeded run is reproducible.
type RNG interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n); 0 when n <= 0.
	Intn(n int) int
}

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a simple LCG (Linear Congruential Generator).
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
// Only the top 53 bits are used so the result never rounds up to 1.
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// State returns the internal state, used by snapshot hashing.
func (r *SimpleRNG) State() uint64 {
	return r.state
}

// ScriptRNG replays a fixed sequence of Float64 values, cycling when
// exhausted. Tests use it to force crit, drop and spawn rolls.
type ScriptRNG struct {
	Values []float64
	pos    int
}

// NewScriptRNG creates a scripted RNG over the given values.
func NewScriptRNG(values ...float64) *ScriptRNG {
	return &ScriptRNG{Values: values}
}

// Float64 returns the next scripted value (0 if the script is empty).
func (r *ScriptRNG) Float64() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	v := r.Values[r.pos%len(r.Values)]
	r.pos++
	return ClampF(v, 0, 0.999999999)
}

// Intn maps the next scripted value onto [0, n).
func (r *ScriptRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float64() * float64(n))
}

// Uniform returns a value in [min, max) drawn from rng.
func Uniform(rng RNG, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// IntRange returns an integer in [min, max] drawn from rng.
func IntRange(rng RNG, min, max int) int {
	if max < min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
