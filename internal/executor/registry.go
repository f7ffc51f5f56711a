package executor

import (
	"sort"

	"crucible/internal/config"
	"crucible/pkg/logging"
)

// Registry is an immutable, flat name-keyed table of the executors of one
// system. It is built once at configuration-load time; concurrent readers
// need no locking because nothing mutates it afterwards.
type Registry struct {
	byName map[string]Executor
	order  []string
}

// NewRegistry flattens the category-nested executor configuration into a
// flat lookup table. The configuration is expected to have had defaults
// merged already. It fails with DuplicateNameError when two instances share
// a name across categories, and with validation errors when a batch
// instance is left without a launcher after the merge.
func NewRegistry(ec config.ExecutorConfig) (*Registry, error) {
	r := &Registry{byName: make(map[string]Executor)}
	categories := make(map[string]Category)
	var errs config.ValidationErrors

	add := func(exec Executor) error {
		name := exec.Name()
		if prev, ok := categories[name]; ok {
			return &DuplicateNameError{Name: name, Categories: [2]Category{prev, exec.Category()}}
		}
		categories[name] = exec.Category()
		r.byName[name] = exec
		r.order = append(r.order, name)
		return nil
	}

	for _, name := range sortedKeys(ec.Local) {
		spec := ec.Local[name]
		if err := add(newLocal(name, spec.Description, spec.Shell)); err != nil {
			return nil, err
		}
	}

	batch := []struct {
		category  Category
		instances map[string]config.BatchExecutorSpec
		build     func(name string, spec config.BatchExecutorSpec) Executor
	}{
		{CategorySlurm, ec.Slurm, func(n string, s config.BatchExecutorSpec) Executor { return newSlurm(n, s) }},
		{CategoryLSF, ec.LSF, func(n string, s config.BatchExecutorSpec) Executor { return newLSF(n, s) }},
		{CategoryCobalt, ec.Cobalt, func(n string, s config.BatchExecutorSpec) Executor { return newCobalt(n, s) }},
		{CategoryPBS, ec.PBS, func(n string, s config.BatchExecutorSpec) Executor { return newPBS(n, s) }},
	}

	for _, b := range batch {
		for _, name := range sortedKeys(b.instances) {
			spec := b.instances[name]
			if spec.Launcher == "" {
				errs.Add("executors."+string(b.category)+"."+name+".launcher",
					"is required for batch executors and was not set by the defaults block")
				continue
			}
			if err := add(b.build(name, spec)); err != nil {
				return nil, err
			}
		}
	}

	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	logging.Debug("Executor", "Registered %d executors", len(r.order))
	return r, nil
}

// Lookup returns the executor with the given name. This is the sole read
// path used by the job-submission collaborator.
func (r *Registry) Lookup(name string) (Executor, error) {
	exec, ok := r.byName[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return exec, nil
}

// Names returns all executor names, locals first and batch categories in a
// fixed order, names sorted within each category.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// All returns every executor in the same order as Names.
func (r *Registry) All() []Executor {
	out := make([]Executor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of registered executors.
func (r *Registry) Len() int { return len(r.order) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
