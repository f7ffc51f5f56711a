package executor

import (
	"strconv"
	"strings"

	"crucible/internal/config"
)

// Slurm is a submission profile for the Slurm workload manager.
type Slurm struct {
	batchSettings
}

func newSlurm(name string, spec config.BatchExecutorSpec) *Slurm {
	return &Slurm{batchSettings: newBatchSettings(name, spec)}
}

func (e *Slurm) Category() Category { return CategorySlurm }

// QOS returns the quality-of-service the job is submitted under.
func (e *Slurm) QOS() string { return e.qos }

// Partition returns the slurm partition the job is submitted to.
func (e *Slurm) Partition() string { return e.partition }

// SubmitCommand returns the sbatch argv prefix for this profile. The
// --parsable flag makes sbatch print just the job id (or "jobid;cluster"),
// which is what the submission collaborator parses.
func (e *Slurm) SubmitCommand() []string {
	cmd := []string{e.launcher, "--parsable"}

	if e.partition != "" {
		cmd = append(cmd, "-p", e.partition)
	}
	if e.qos != "" {
		cmd = append(cmd, "-q", e.qos)
	}
	if e.cluster != "" {
		cmd = append(cmd, "--clusters="+e.cluster)
	}
	if e.account != "" {
		cmd = append(cmd, "--account="+e.account)
	}
	cmd = append(cmd, e.options...)
	return cmd
}

// CancelCommand returns the scancel argv for a job submitted through this
// profile.
func (e *Slurm) CancelCommand(jobID int) []string {
	cmd := []string{"scancel", strconv.Itoa(jobID)}
	if e.cluster != "" {
		cmd = append(cmd, "--clusters="+e.cluster)
	}
	return cmd
}

// StateQuery returns the sacct argv that reports only the job state, one
// token per line.
func (e *Slurm) StateQuery(jobID int) []string {
	cmd := []string{"sacct", "-j", strconv.Itoa(jobID), "-o", "State", "-n", "-X", "-P"}
	return e.withCluster(cmd)
}

// ExitCodeQuery returns the sacct argv that reports the exit code and work
// directory, pipe-separated.
func (e *Slurm) ExitCodeQuery(jobID int) []string {
	cmd := []string{"sacct", "-j", strconv.Itoa(jobID), "-X", "-n", "-P", "-o", "ExitCode,Workdir"}
	return e.withCluster(cmd)
}

// RecordQuery returns the sacct argv that gathers the full job record after
// completion, with SlurmRecordFields in order.
func (e *Slurm) RecordQuery(jobID int) []string {
	cmd := []string{"sacct", "-j", strconv.Itoa(jobID), "-X", "-n", "-P", "-o", strings.Join(SlurmRecordFields, ",")}
	return e.withCluster(cmd)
}

// withCluster appends --clusters when the profile targets a named cluster;
// sacct and scancel only see jobs of other clusters with it.
func (e *Slurm) withCluster(cmd []string) []string {
	if e.cluster != "" {
		cmd = append(cmd, "--clusters="+e.cluster)
	}
	return cmd
}

// SlurmRecordFields are the sacct format fields gathered for a completed
// job record.
var SlurmRecordFields = []string{
	"Account",
	"AllocNodes",
	"AllocTRES",
	"ConsumedEnergyRaw",
	"CPUTimeRaw",
	"Elapsed",
	"End",
	"ExitCode",
	"JobID",
	"JobName",
	"NCPUS",
	"NNodes",
	"QOS",
	"ReqGRES",
	"ReqMem",
	"ReqNodes",
	"ReqTRES",
	"Start",
	"State",
	"Submit",
	"UID",
	"User",
	"WorkDir",
}

// JobState is the state vocabulary sacct reports for a job.
type JobState string

const (
	JobPending     JobState = "PENDING"
	JobRunning     JobState = "RUNNING"
	JobSuspended   JobState = "SUSPENDED"
	JobCancelled   JobState = "CANCELLED"
	JobComplete    JobState = "COMPLETED"
	JobFailed      JobState = "FAILED"
	JobOutOfMemory JobState = "OUT_OF_MEMORY"
	JobTimeout     JobState = "TIMEOUT"
)

// Finished reports whether the scheduler is done with the job and its
// record can be gathered.
func (s JobState) Finished() bool {
	switch s {
	case JobComplete, JobFailed, JobOutOfMemory, JobTimeout:
		return true
	}
	return false
}

// Pending reports whether the job is waiting or suspended, the states the
// max_pend_time cancellation timer runs against.
func (s JobState) Pending() bool {
	return s == JobPending || s == JobSuspended
}
