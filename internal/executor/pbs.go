package executor

import "crucible/internal/config"

// PBS is a submission profile for PBS/Torque.
type PBS struct {
	batchSettings
}

func newPBS(name string, spec config.BatchExecutorSpec) *PBS {
	return &PBS{batchSettings: newBatchSettings(name, spec)}
}

func (e *PBS) Category() Category { return CategoryPBS }

// SubmitCommand returns the qsub argv prefix for this profile.
func (e *PBS) SubmitCommand() []string {
	cmd := []string{e.launcher}
	if e.queue != "" {
		cmd = append(cmd, "-q", e.queue)
	}
	cmd = append(cmd, e.options...)
	return cmd
}
