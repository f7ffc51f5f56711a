package executor

import "fmt"

// Category identifies how an executor launches work. The set is closed:
// adding a scheduler means adding a variant type and extending the registry
// classification, not extending configuration data.
type Category string

const (
	CategoryLocal  Category = "local"
	CategorySlurm  Category = "slurm"
	CategoryLSF    Category = "lsf"
	CategoryCobalt Category = "cobalt"
	CategoryPBS    Category = "pbs"
)

// Executor is a named way to run a job: either a local shell invocation or a
// batch-scheduler submission profile. Concrete variants are Local, Slurm,
// LSF, Cobalt and PBS.
type Executor interface {
	Name() string
	Category() Category
	Description() string
}

// BatchExecutor is implemented by the scheduler-backed variants. The
// returned submit command is the argv prefix a job-submission collaborator
// runs; this package never executes anything.
type BatchExecutor interface {
	Executor

	Launcher() string
	SubmitCommand() []string
	PollInterval() int
	MaxPendTime() int
}

// DuplicateNameError reports two executor instances sharing a name within a
// system. Lookup is by flat name with the category as metadata, so this
// ambiguity must not be silently resolved.
type DuplicateNameError struct {
	Name       string
	Categories [2]Category
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate executor name %q declared under both %s and %s",
		e.Name, e.Categories[0], e.Categories[1])
}

// NotFoundError reports a lookup for an executor name absent from the
// registry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("executor %q not found in registry", e.Name)
}
