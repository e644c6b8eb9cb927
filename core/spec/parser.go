// Package spec parses the YAML simulation specification into a
// validated task set plus run parameters.
package spec

import (
	"fmt"

	"sched-sim/core/models"

	"gopkg.in/yaml.v3"
)

// SimSpec is the top-level YAML document.
type SimSpec struct {
	Simulation SimParams  `yaml:"simulation"`
	Tasks      []TaskSpec `yaml:"tasks"`
}

// SimParams holds the run parameters.
type SimParams struct {
	Horizon int64  `yaml:"horizon"`
	Policy  string `yaml:"policy"` // edf | rm | fifo; empty means edf
	Seed    int64  `yaml:"seed"`
}

// TaskSpec is one task entry of the spec.
type TaskSpec struct {
	Name       string  `yaml:"name"`
	Period     int64   `yaml:"period"` // 0 or absent: event-triggered
	WCET       int64   `yaml:"wcet"`
	Deadline   int64   `yaml:"deadline"`
	WCETJitter int64   `yaml:"wcet_jitter,omitempty"`
	Triggers   []int64 `yaml:"triggers,omitempty"`
}

// Simulation is the parsed, validated form of a SimSpec.
type Simulation struct {
	TaskSet models.TaskSet
	Horizon int64
	Policy  string
	Seed    int64
}

// DefaultHorizon is used when the spec omits one: 30 simulated seconds.
const DefaultHorizon int64 = 30000

// Parse decodes and validates a YAML simulation spec.
func Parse(specYAML []byte) (*Simulation, error) {
	var s SimSpec
	if err := yaml.Unmarshal(specYAML, &s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	taskSet := make(models.TaskSet, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		taskSet = append(taskSet, models.TaskDescriptor{
			Name:             t.Name,
			Period:           t.Period,
			WCET:             t.WCET,
			RelativeDeadline: t.Deadline,
			WCETJitter:       t.WCETJitter,
			TriggerTimes:     t.Triggers,
		})
	}
	if err := taskSet.Validate(); err != nil {
		return nil, err
	}

	sim := &Simulation{
		TaskSet: taskSet,
		Horizon: s.Simulation.Horizon,
		Policy:  s.Simulation.Policy,
		Seed:    s.Simulation.Seed,
	}
	if sim.Horizon == 0 {
		sim.Horizon = DefaultHorizon
	}
	if sim.Horizon < 0 {
		return nil, &models.ConfigurationError{Field: "horizon", Reason: "must be positive"}
	}
	if sim.Policy == "" {
		sim.Policy = "edf"
	}
	return sim, nil
}
