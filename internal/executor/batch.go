package executor

import "crucible/internal/config"

// batchSettings carries the fields shared by every scheduler-backed
// executor. Inheritable fields (launcher, pollinterval, max_pend_time,
// account) are expected to be resolved by the defaults merge before an
// instance reaches this package.
type batchSettings struct {
	name         string
	description  string
	launcher     string
	queue        string
	partition    string
	qos          string
	cluster      string
	account      string
	options      []string
	pollInterval int
	maxPendTime  int
}

func newBatchSettings(name string, spec config.BatchExecutorSpec) batchSettings {
	return batchSettings{
		name:         name,
		description:  spec.Description,
		launcher:     spec.Launcher,
		queue:        spec.Queue,
		partition:    spec.Partition,
		qos:          spec.QOS,
		cluster:      spec.Cluster,
		account:      spec.Account,
		options:      append([]string(nil), spec.Options...),
		pollInterval: intValue(spec.PollInterval),
		maxPendTime:  intValue(spec.MaxPendTime),
	}
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func (b *batchSettings) Name() string        { return b.name }
func (b *batchSettings) Description() string { return b.description }
func (b *batchSettings) Launcher() string    { return b.launcher }
func (b *batchSettings) Queue() string       { return b.queue }
func (b *batchSettings) Cluster() string     { return b.cluster }
func (b *batchSettings) Account() string     { return b.account }

// Options returns a copy of the raw scheduler flags so callers cannot
// mutate registry state.
func (b *batchSettings) Options() []string {
	return append([]string(nil), b.options...)
}

// PollInterval is how many seconds the job-submission collaborator waits
// between scheduler queries.
func (b *batchSettings) PollInterval() int { return b.pollInterval }

// MaxPendTime is how many seconds a job may sit pending before the
// collaborator cancels it.
func (b *batchSettings) MaxPendTime() int { return b.maxPendTime }
