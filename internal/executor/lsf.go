package executor

import "crucible/internal/config"

// LSF is a submission profile for IBM Spectrum LSF.
type LSF struct {
	batchSettings
}

func newLSF(name string, spec config.BatchExecutorSpec) *LSF {
	return &LSF{batchSettings: newBatchSettings(name, spec)}
}

func (e *LSF) Category() Category { return CategoryLSF }

// SubmitCommand returns the bsub argv prefix for this profile. bsub reads
// the job script from stdin, so the prefix is the whole command.
func (e *LSF) SubmitCommand() []string {
	cmd := []string{e.launcher}
	if e.queue != "" {
		cmd = append(cmd, "-q", e.queue)
	}
	cmd = append(cmd, e.options...)
	return cmd
}
