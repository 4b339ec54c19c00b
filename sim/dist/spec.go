package dist

import "fmt"

// Spec parameterizes a distribution family by name. It mirrors the shape used
// in YAML scenario files: a type tag plus a flat map of numeric parameters.
type Spec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// New creates a Distribution from a Spec, seeded with seed.
// Parameter-domain violations are reported as errors, never clamped.
func New(spec Spec, seed int64) (Distribution, error) {
	switch spec.Type {
	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return NewExponential(spec.Params["mean"], seed)

	case "triangular":
		if err := requireParam(spec.Params, "low", "mode", "high"); err != nil {
			return nil, err
		}
		return NewTriangular(spec.Params["low"], spec.Params["mode"], spec.Params["high"], seed)

	case "uniform":
		if err := requireParam(spec.Params, "low", "high"); err != nil {
			return nil, err
		}
		return NewUniform(spec.Params["low"], spec.Params["high"], seed)

	case "bernoulli":
		if err := requireParam(spec.Params, "p"); err != nil {
			return nil, err
		}
		return NewBernoulli(spec.Params["p"], seed)

	case "lognormal":
		if err := requireParam(spec.Params, "mean", "stdev"); err != nil {
			return nil, err
		}
		return NewLognormal(spec.Params["mean"], spec.Params["stdev"], seed)

	case "fixed":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return NewFixed(spec.Params["value"]), nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
