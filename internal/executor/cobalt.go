package executor

import "crucible/internal/config"

// Cobalt is a submission profile for the Cobalt scheduler.
type Cobalt struct {
	batchSettings
}

func newCobalt(name string, spec config.BatchExecutorSpec) *Cobalt {
	return &Cobalt{batchSettings: newBatchSettings(name, spec)}
}

func (e *Cobalt) Category() Category { return CategoryCobalt }

// SubmitCommand returns the qsub argv prefix for this profile.
func (e *Cobalt) SubmitCommand() []string {
	cmd := []string{e.launcher}
	if e.queue != "" {
		cmd = append(cmd, "-q", e.queue)
	}
	cmd = append(cmd, e.options...)
	return cmd
}
