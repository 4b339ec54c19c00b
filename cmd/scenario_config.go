package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/callcentre-sim/callcentre-sim/sim"
	"github.com/callcentre-sim/callcentre-sim/sim/dist"
)

// ScenarioFile is the top-level YAML schema for scenario comparison runs.
type ScenarioFile struct {
	// Defaults apply to every scenario unless overridden.
	Defaults  ScenarioSpec   `yaml:"defaults"`
	Scenarios []ScenarioSpec `yaml:"scenarios"`

	RCPeriod     float64 `yaml:"rc_period"`
	Replications int     `yaml:"replications"`
}

// ScenarioSpec defines one named experiment. Numeric fields are pointers so
// an explicit zero in the file is distinguishable from an absent field: absent
// falls back to the file defaults, then to the model defaults.
type ScenarioSpec struct {
	Name           string     `yaml:"name"`
	Operators      *int       `yaml:"operators"`
	Nurses         *int       `yaml:"nurses"`
	MeanIAT        *float64   `yaml:"mean_iat"`
	CallLow        *float64   `yaml:"call_low"`
	CallMode       *float64   `yaml:"call_mode"`
	CallHigh       *float64   `yaml:"call_high"`
	Callback       bool       `yaml:"callback"`
	ChanceCallback *float64   `yaml:"chance_callback"`
	NurseLow       *float64   `yaml:"nurse_low"`
	NurseHigh      *float64   `yaml:"nurse_high"`
	ArrivalDist    *dist.Spec `yaml:"arrival_distribution,omitempty"`
	CallDist       *dist.Spec `yaml:"call_distribution,omitempty"`
	NurseDist      *dist.Spec `yaml:"nurse_distribution,omitempty"`
}

// LoadScenarioFile reads and validates a YAML scenario file.
func LoadScenarioFile(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	var f ScenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scenario file: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario file %s defines no scenarios", path)
	}
	seen := make(map[string]bool, len(f.Scenarios))
	for i, s := range f.Scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
	}
	if f.RCPeriod == 0 {
		f.RCPeriod = sim.DefaultCollectionPeriod
	}
	if f.Replications == 0 {
		f.Replications = 5
	}
	return &f, nil
}

// merge overlays spec onto the defaults, field by field. Nil means the field
// was absent from the scenario entry.
func (s ScenarioSpec) merge(d ScenarioSpec) ScenarioSpec {
	out := s
	if out.Operators == nil {
		out.Operators = d.Operators
	}
	if out.Nurses == nil {
		out.Nurses = d.Nurses
	}
	if out.MeanIAT == nil {
		out.MeanIAT = d.MeanIAT
	}
	if out.CallLow == nil {
		out.CallLow = d.CallLow
	}
	if out.CallMode == nil {
		out.CallMode = d.CallMode
	}
	if out.CallHigh == nil {
		out.CallHigh = d.CallHigh
	}
	if !out.Callback {
		out.Callback = d.Callback
	}
	if out.ChanceCallback == nil {
		out.ChanceCallback = d.ChanceCallback
	}
	if out.NurseLow == nil {
		out.NurseLow = d.NurseLow
	}
	if out.NurseHigh == nil {
		out.NurseHigh = d.NurseHigh
	}
	if out.ArrivalDist == nil {
		out.ArrivalDist = d.ArrivalDist
	}
	if out.CallDist == nil {
		out.CallDist = d.CallDist
	}
	if out.NurseDist == nil {
		out.NurseDist = d.NurseDist
	}
	return out
}

// orDefault returns *v when set, falling back to the model default.
func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

// toExperiment builds a validated Experiment from a merged spec.
func (s ScenarioSpec) toExperiment() (*sim.Experiment, error) {
	opts := make([]sim.Option, 0, 8)
	if s.Operators != nil {
		opts = append(opts, sim.WithOperators(*s.Operators))
	}
	if s.Nurses != nil {
		opts = append(opts, sim.WithNurses(*s.Nurses))
	}
	if s.MeanIAT != nil {
		opts = append(opts, sim.WithMeanIAT(*s.MeanIAT))
	}
	if s.CallLow != nil || s.CallMode != nil || s.CallHigh != nil {
		opts = append(opts, sim.WithCallDuration(
			orDefault(s.CallLow, sim.DefaultCallLow),
			orDefault(s.CallMode, sim.DefaultCallMode),
			orDefault(s.CallHigh, sim.DefaultCallHigh),
		))
	}
	if s.Callback {
		opts = append(opts, sim.WithCallback(orDefault(s.ChanceCallback, sim.DefaultChanceCallback)))
		if s.NurseLow != nil || s.NurseHigh != nil {
			opts = append(opts, sim.WithNurseConsult(
				orDefault(s.NurseLow, sim.DefaultNurseCallLow),
				orDefault(s.NurseHigh, sim.DefaultNurseCallHigh),
			))
		}
	}
	if s.ArrivalDist != nil {
		opts = append(opts, sim.WithArrivalSpec(*s.ArrivalDist))
	}
	if s.CallDist != nil {
		opts = append(opts, sim.WithCallSpec(*s.CallDist))
	}
	if s.NurseDist != nil {
		opts = append(opts, sim.WithNurseSpec(*s.NurseDist))
	}
	exp, err := sim.NewExperiment(opts...)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return exp, nil
}

// BuildScenarios turns a loaded file into named experiments plus the
// file-order name list.
func BuildScenarios(f *ScenarioFile) (map[string]*sim.Experiment, []string, error) {
	experiments := make(map[string]*sim.Experiment, len(f.Scenarios))
	order := make([]string, 0, len(f.Scenarios))
	for _, s := range f.Scenarios {
		merged := s.merge(f.Defaults)
		exp, err := merged.toExperiment()
		if err != nil {
			return nil, nil, err
		}
		experiments[s.Name] = exp
		order = append(order, s.Name)
	}
	return experiments, order, nil
}
