// Package dist provides the statistical distributions used by the call-centre
// simulation model. Each distribution owns its own random number generator so
// that the sampling streams of the model stay independent of one another.
package dist

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Distribution generates samples from a parameterized family. Implementations
// are deterministic given their seed: two instances built with identical
// parameters and seed produce identical sample sequences.
type Distribution interface {
	// Sample returns a single draw.
	Sample() float64
}

// SampleN draws n samples from d into a new slice.
func SampleN(d Distribution, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Sample()
	}
	return out
}

// Exponential samples inter-arrival style durations with the given mean.
type Exponential struct {
	Mean float64
	rng  *rand.Rand
}

// NewExponential validates the mean and constructs an Exponential seeded with seed.
func NewExponential(mean float64, seed int64) (*Exponential, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("exponential: mean must be > 0, got %v", mean)
	}
	return &Exponential{Mean: mean, rng: rand.New(rand.NewSource(seed))}, nil
}

func (d *Exponential) Sample() float64 {
	return d.rng.ExpFloat64() * d.Mean
}

// Triangular samples service durations from a triangular distribution
// with bounds [Low, High] and most frequent value Mode.
type Triangular struct {
	Low, Mode, High float64
	rng             *rand.Rand
}

// NewTriangular validates low <= mode <= high and constructs a Triangular.
func NewTriangular(low, mode, high float64, seed int64) (*Triangular, error) {
	if low > mode || mode > high {
		return nil, fmt.Errorf("triangular: require low <= mode <= high, got %v/%v/%v", low, mode, high)
	}
	return &Triangular{Low: low, Mode: mode, High: high, rng: rand.New(rand.NewSource(seed))}, nil
}

// Sample draws via the inverse CDF of the triangular distribution.
func (d *Triangular) Sample() float64 {
	if d.High == d.Low {
		return d.Low
	}
	u := d.rng.Float64()
	fc := (d.Mode - d.Low) / (d.High - d.Low)
	if u < fc {
		return d.Low + math.Sqrt(u*(d.High-d.Low)*(d.Mode-d.Low))
	}
	return d.High - math.Sqrt((1-u)*(d.High-d.Low)*(d.High-d.Mode))
}

// Uniform samples durations uniformly from [Low, High).
type Uniform struct {
	Low, High float64
	rng       *rand.Rand
}

// NewUniform validates low <= high and constructs a Uniform.
func NewUniform(low, high float64, seed int64) (*Uniform, error) {
	if low > high {
		return nil, fmt.Errorf("uniform: require low <= high, got %v/%v", low, high)
	}
	return &Uniform{Low: low, High: high, rng: rand.New(rand.NewSource(seed))}, nil
}

func (d *Uniform) Sample() float64 {
	return d.Low + d.rng.Float64()*(d.High-d.Low)
}

// Bernoulli samples success (1) with probability P, failure (0) otherwise.
// Used to decide whether a caller receives a nurse callback.
type Bernoulli struct {
	P   float64
	rng *rand.Rand
}

// NewBernoulli validates p in [0, 1] and constructs a Bernoulli.
func NewBernoulli(p float64, seed int64) (*Bernoulli, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("bernoulli: probability must be in [0, 1], got %v", p)
	}
	return &Bernoulli{P: p, rng: rand.New(rand.NewSource(seed))}, nil
}

func (d *Bernoulli) Sample() float64 {
	if d.rng.Float64() < d.P {
		return 1
	}
	return 0
}

// Lognormal samples from a lognormal distribution parameterized by the mean
// and standard deviation of the distribution itself (not of the underlying
// normal). The underlying normal moments are recovered at construction.
type Lognormal struct {
	Mean, Stdev float64
	mu, sigma   float64
	rng         *rand.Rand
}

// NewLognormal validates mean > 0 and stdev >= 0 and constructs a Lognormal.
func NewLognormal(mean, stdev float64, seed int64) (*Lognormal, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("lognormal: mean must be > 0, got %v", mean)
	}
	if stdev < 0 {
		return nil, fmt.Errorf("lognormal: stdev must be >= 0, got %v", stdev)
	}
	v := stdev * stdev
	phi := math.Sqrt(v + mean*mean)
	mu := math.Log(mean * mean / phi)
	sigma := math.Sqrt(math.Log(phi * phi / (mean * mean)))
	return &Lognormal{Mean: mean, Stdev: stdev, mu: mu, sigma: sigma, rng: rand.New(rand.NewSource(seed))}, nil
}

func (d *Lognormal) Sample() float64 {
	return math.Exp(d.mu + d.sigma*d.rng.NormFloat64())
}

// Discrete samples from an empirical distribution of values with relative
// frequencies. Frequencies are normalized at construction; sampling uses
// inverse-CDF lookup via binary search.
type Discrete struct {
	values []float64
	cdf    []float64
	rng    *rand.Rand
}

// NewDiscrete validates that values and freqs have equal positive length and
// that total frequency is positive.
func NewDiscrete(values, freqs []float64, seed int64) (*Discrete, error) {
	if len(values) == 0 || len(values) != len(freqs) {
		return nil, fmt.Errorf("discrete: values and freqs must be equal-length and non-empty (got %d, %d)",
			len(values), len(freqs))
	}
	total := 0.0
	for _, f := range freqs {
		if f < 0 {
			return nil, fmt.Errorf("discrete: negative frequency %v", f)
		}
		total += f
	}
	if total <= 0 {
		return nil, fmt.Errorf("discrete: frequencies sum to zero")
	}
	d := &Discrete{rng: rand.New(rand.NewSource(seed))}
	cumulative := 0.0
	for i, f := range freqs {
		if f == 0 {
			continue
		}
		cumulative += f / total
		d.values = append(d.values, values[i])
		d.cdf = append(d.cdf, cumulative)
	}
	d.cdf[len(d.cdf)-1] = 1.0
	return d, nil
}

func (d *Discrete) Sample() float64 {
	if len(d.values) == 1 {
		return d.values[0]
	}
	u := d.rng.Float64()
	idx := sort.SearchFloat64s(d.cdf, u)
	if idx >= len(d.values) {
		idx = len(d.values) - 1
	}
	return d.values[idx]
}

// Fixed always returns the same value. Useful for zero-variance what-if
// scenarios and deterministic tests.
type Fixed struct {
	Value float64
}

// NewFixed constructs a Fixed distribution.
func NewFixed(value float64) *Fixed {
	return &Fixed{Value: value}
}

func (d *Fixed) Sample() float64 {
	return d.Value
}
