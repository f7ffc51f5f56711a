// Package compiler materializes a system's compiler toolchain definitions
// into an immutable (family, name)-keyed registry, plus the module-name
// patterns used by compiler discovery.
package compiler

import (
	"fmt"
	"regexp"
	"sort"

	"crucible/internal/config"
	"crucible/pkg/logging"
)

// Instance is one compiler toolchain: the C, C++ and Fortran wrappers of a
// named instance within a family ("gcc", "intel", "cray", ...).
type Instance struct {
	Family string
	Name   string
	CC     string
	CXX    string
	FC     string
}

// NotFoundError reports a lookup for a compiler instance absent from the
// registry.
type NotFoundError struct {
	Family string
	Name   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("compiler %s/%s not found in registry", e.Family, e.Name)
}

type familyPattern struct {
	family string
	re     *regexp.Regexp
}

// Registry is an immutable table of compiler instances. The find patterns
// are compiled once at construction; DetectFamily never touches the module
// system itself, it only classifies names a discovery collaborator feeds it.
type Registry struct {
	instances map[[2]string]Instance
	families  []string
	names     map[string][]string
	find      []familyPattern
}

// NewRegistry builds the registry from a validated compiler configuration.
// Find patterns that fail to compile are reported here as well since the
// registry can be built from unvalidated data in tests.
func NewRegistry(cc config.CompilerConfig) (*Registry, error) {
	r := &Registry{
		instances: make(map[[2]string]Instance),
		names:     make(map[string][]string),
	}

	for _, fp := range cc.Find {
		re, err := regexp.Compile(fp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("find pattern for family %q: %w", fp.Family, err)
		}
		r.find = append(r.find, familyPattern{family: fp.Family, re: re})
	}

	for family, instances := range cc.Compiler {
		for name, spec := range instances {
			r.instances[[2]string{family, name}] = Instance{
				Family: family,
				Name:   name,
				CC:     spec.CC,
				CXX:    spec.CXX,
				FC:     spec.FC,
			}
			r.names[family] = append(r.names[family], name)
		}
		r.families = append(r.families, family)
	}
	sort.Strings(r.families)
	for _, names := range r.names {
		sort.Strings(names)
	}

	logging.Debug("Compiler", "Registered %d compiler families", len(r.families))
	return r, nil
}

// Lookup returns the instance with the given family and name.
func (r *Registry) Lookup(family, name string) (Instance, error) {
	inst, ok := r.instances[[2]string{family, name}]
	if !ok {
		return Instance{}, &NotFoundError{Family: family, Name: name}
	}
	return inst, nil
}

// DetectFamily classifies a module name against the find patterns in
// declaration order and returns the first matching family. The boolean is
// false when no pattern matches or no find block was configured.
func (r *Registry) DetectFamily(moduleName string) (string, bool) {
	for _, fp := range r.find {
		if fp.re.MatchString(moduleName) {
			return fp.family, true
		}
	}
	return "", false
}

// Families returns the configured compiler families, sorted.
func (r *Registry) Families() []string {
	return append([]string(nil), r.families...)
}

// Names returns the instance names of a family, sorted.
func (r *Registry) Names(family string) []string {
	return append([]string(nil), r.names[family]...)
}

// All returns every instance grouped by family, names sorted within each.
func (r *Registry) All() []Instance {
	var out []Instance
	for _, family := range r.families {
		for _, name := range r.names[family] {
			out = append(out, r.instances[[2]string{family, name}])
		}
	}
	return out
}
