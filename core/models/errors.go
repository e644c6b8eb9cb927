package models

import "fmt"

// ConfigurationError reports a malformed task descriptor or task set.
// It is fatal to the run it was detected in, before simulation starts.
type ConfigurationError struct {
	Task   string
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Task != "" && e.Field != "":
		return fmt.Sprintf("invalid task %q: %s %s", e.Task, e.Field, e.Reason)
	case e.Task != "":
		return fmt.Sprintf("invalid task %q: %s", e.Task, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	default:
		return fmt.Sprintf("invalid task set: %s", e.Reason)
	}
}

// MalformedEventError reports an external feed event that cannot be
// folded into the job model. Such events are dropped and logged; they
// never stop a simulation.
type MalformedEventError struct {
	Line   string
	Reason string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("malformed feed event: %s (%q)", e.Reason, e.Line)
}
