package manifest

import (
	"fmt"
	"time"
)

// Result is the outcome of one workflow execution. Success=false implies a
// non-empty Error; Success=true implies an empty Error. A Result is built
// once per run and not mutated after it is returned.
type Result struct {
	Success       bool     `json:"success"`
	WorkflowName  string   `json:"workflow_name"`
	Artifacts     []string `json:"artifacts"`
	Logs          []string `json:"logs"`
	Error         string   `json:"error,omitempty"`
	ExecutionTime float64  `json:"execution_time_seconds"`
}

// Failure builds a failed Result, preserving any logs accumulated so far.
func Failure(workflow string, logs []string, format string, args ...any) Result {
	return Result{
		Success:      false,
		WorkflowName: workflow,
		Logs:         logs,
		Error:        fmt.Sprintf(format, args...),
	}
}

// WithElapsed returns a copy of r with ExecutionTime set from start.
func (r Result) WithElapsed(start time.Time) Result {
	r.ExecutionTime = time.Since(start).Seconds()
	return r
}
