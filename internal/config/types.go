package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Module tool values accepted by validation. "N/A" is for hosts without an
// environment-module system.
const (
	ModuleToolEnvironmentModules = "environment-modules"
	ModuleToolLmod               = "lmod"
	ModuleToolNotApplicable      = "N/A"
)

// ModuleTools lists the accepted moduletool values.
var ModuleTools = []string{
	ModuleToolEnvironmentModules,
	ModuleToolLmod,
	ModuleToolNotApplicable,
}

// Config is the top-level crucible configuration: an ordered set of system
// definitions keyed by name. Declaration order is preserved because host
// matching is first-match-wins, so a catch-all system is only a safe
// fallback when it is declared last.
type Config struct {
	Systems []SystemConfig

	// unknownKeys records root-level keys that are not part of the schema.
	// They are tolerated by default and rejected in strict validation.
	unknownKeys []unknownKey
}

// unknownKey is a configuration key outside the schema, with the path where
// it was found and the source line for error reporting.
type unknownKey struct {
	Path string
	Line int
}

// SystemConfig describes one named site/host-class configuration bundle:
// which hostnames it applies to, the module tool in use, and the compiler
// and executor definitions owned by the system.
type SystemConfig struct {
	Name                  string         `yaml:"-"`
	Hostnames             []string       `yaml:"hostnames"`
	Description           string         `yaml:"description,omitempty"`
	ModuleTool            string         `yaml:"moduletool"`
	LoadDefaultBuildspecs bool           `yaml:"load_default_buildspecs,omitempty"`
	Compilers             CompilerConfig `yaml:"compilers,omitempty"`
	Executors             ExecutorConfig `yaml:"executors"`
	CDash                 *CDashConfig   `yaml:"cdash,omitempty"`

	unknownKeys []unknownKey
}

// ExecutorDefaults holds fields shared by every batch executor in a system
// unless the instance overrides them. The numeric fields are pointers so an
// absent field is distinguishable from an explicit value.
type ExecutorDefaults struct {
	PollInterval *int   `yaml:"pollinterval,omitempty"`
	Launcher     string `yaml:"launcher,omitempty"`
	MaxPendTime  *int   `yaml:"max_pend_time,omitempty"`
	Account      string `yaml:"account,omitempty"`
}

// ExecutorConfig groups the executor instances of a system by scheduler
// category. The category set is closed: unknown categories are recorded at
// decode time and rejected by validation.
type ExecutorConfig struct {
	Defaults *ExecutorDefaults             `yaml:"defaults,omitempty"`
	Local    map[string]LocalExecutorSpec  `yaml:"local,omitempty"`
	Slurm    map[string]BatchExecutorSpec  `yaml:"slurm,omitempty"`
	LSF      map[string]BatchExecutorSpec  `yaml:"lsf,omitempty"`
	Cobalt   map[string]BatchExecutorSpec  `yaml:"cobalt,omitempty"`
	PBS      map[string]BatchExecutorSpec  `yaml:"pbs,omitempty"`

	unknownCategories []unknownKey
}

// LocalExecutorSpec configures a local shell executor.
type LocalExecutorSpec struct {
	Description string `yaml:"description,omitempty"`
	Shell       string `yaml:"shell"`
}

// BatchExecutorSpec configures a batch-scheduler submission profile. The
// launcher, pollinterval, max_pend_time and account fields are inheritable
// from the system's executor defaults; the numeric fields are pointers so
// only genuinely absent fields inherit.
type BatchExecutorSpec struct {
	Description  string   `yaml:"description,omitempty"`
	Launcher     string   `yaml:"launcher,omitempty"`
	Queue        string   `yaml:"queue,omitempty"`
	Partition    string   `yaml:"partition,omitempty"`
	QOS          string   `yaml:"qos,omitempty"`
	Cluster      string   `yaml:"cluster,omitempty"`
	Account      string   `yaml:"account,omitempty"`
	Options      []string `yaml:"options,omitempty"`
	PollInterval *int     `yaml:"pollinterval,omitempty"`
	MaxPendTime  *int     `yaml:"max_pend_time,omitempty"`
}

// CompilerConfig holds a system's compiler toolchain definitions plus the
// optional module-name patterns used for compiler discovery.
type CompilerConfig struct {
	Find     FindPatterns                       `yaml:"find,omitempty"`
	Compiler map[string]map[string]CompilerSpec `yaml:"compiler,omitempty"`
}

// CompilerSpec names the C, C++ and Fortran compiler wrappers of one
// toolchain instance.
type CompilerSpec struct {
	CC  string `yaml:"cc"`
	CXX string `yaml:"cxx"`
	FC  string `yaml:"fc"`
}

// FindPattern maps a compiler family to the regular expression used to
// detect it from a module name.
type FindPattern struct {
	Family  string
	Pattern string
}

// FindPatterns preserves the declaration order of find patterns so family
// detection is first-match-wins like host matching.
type FindPatterns []FindPattern

// CDashConfig configures reporting to a CDash dashboard.
type CDashConfig struct {
	URL       string `yaml:"url"`
	Project   string `yaml:"project"`
	Site      string `yaml:"site,omitempty"`
	BuildName string `yaml:"buildname,omitempty"`
}

// UnmarshalYAML decodes the top-level mapping, preserving the declaration
// order of systems and recording any keys outside the schema.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: configuration must be a mapping", value.Line)
	}

	for i := 0; i < len(value.Content)-1; i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "system":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: system must be a mapping of system name to definition", val.Line)
			}
			for j := 0; j < len(val.Content)-1; j += 2 {
				nameNode, sysNode := val.Content[j], val.Content[j+1]
				var sys SystemConfig
				if err := sysNode.Decode(&sys); err != nil {
					return fmt.Errorf("system %q: %w", nameNode.Value, err)
				}
				sys.Name = nameNode.Value
				c.Systems = append(c.Systems, sys)
			}
		default:
			c.unknownKeys = append(c.unknownKeys, unknownKey{Path: key.Value, Line: key.Line})
		}
	}
	return nil
}

// MarshalYAML emits the top-level mapping with systems in declaration order.
func (c Config) MarshalYAML() (interface{}, error) {
	systems := &yaml.Node{Kind: yaml.MappingNode}
	for _, sys := range c.Systems {
		var sysNode yaml.Node
		if err := sysNode.Encode(sys); err != nil {
			return nil, err
		}
		systems.Content = append(systems.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: sys.Name},
			&sysNode,
		)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "system"},
		systems,
	)
	return root, nil
}

// UnmarshalYAML decodes one system definition, dispatching known keys onto
// fields and recording unknown ones for strict validation.
func (s *SystemConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: system definition must be a mapping", value.Line)
	}

	for i := 0; i < len(value.Content)-1; i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var err error
		switch key.Value {
		case "hostnames":
			err = val.Decode(&s.Hostnames)
		case "description":
			err = val.Decode(&s.Description)
		case "moduletool":
			err = val.Decode(&s.ModuleTool)
		case "load_default_buildspecs":
			err = val.Decode(&s.LoadDefaultBuildspecs)
		case "compilers":
			err = val.Decode(&s.Compilers)
		case "executors":
			err = val.Decode(&s.Executors)
		case "cdash":
			err = val.Decode(&s.CDash)
		default:
			s.unknownKeys = append(s.unknownKeys, unknownKey{Path: key.Value, Line: key.Line})
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key.Value, err)
		}
	}
	return nil
}

// UnmarshalYAML decodes the executors block. Executor categories form a
// closed set, so anything outside it is recorded and later rejected.
func (e *ExecutorConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: executors must be a mapping", value.Line)
	}

	for i := 0; i < len(value.Content)-1; i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var err error
		switch key.Value {
		case "defaults":
			err = val.Decode(&e.Defaults)
		case "local":
			err = val.Decode(&e.Local)
		case "slurm":
			err = val.Decode(&e.Slurm)
		case "lsf":
			err = val.Decode(&e.LSF)
		case "cobalt":
			err = val.Decode(&e.Cobalt)
		case "pbs":
			err = val.Decode(&e.PBS)
		default:
			e.unknownCategories = append(e.unknownCategories, unknownKey{Path: key.Value, Line: key.Line})
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key.Value, err)
		}
	}
	return nil
}

// UnmarshalYAML decodes the find block as an ordered list of family/pattern
// pairs.
func (f *FindPatterns) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: find must be a mapping of family to pattern", value.Line)
	}
	for i := 0; i < len(value.Content)-1; i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: find pattern for %q must be a string", val.Line, key.Value)
		}
		*f = append(*f, FindPattern{Family: key.Value, Pattern: val.Value})
	}
	return nil
}

// MarshalYAML emits find patterns as a mapping in declaration order.
func (f FindPatterns) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range f {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.Family},
			&yaml.Node{Kind: yaml.ScalarNode, Value: p.Pattern},
		)
	}
	return node, nil
}

// SystemNames returns the names of all configured systems in declaration
// order.
func (c *Config) SystemNames() []string {
	names := make([]string, 0, len(c.Systems))
	for _, sys := range c.Systems {
		names = append(names, sys.Name)
	}
	return names
}

// System returns the system with the given name, or nil if not configured.
func (c *Config) System(name string) *SystemConfig {
	for i := range c.Systems {
		if c.Systems[i].Name == name {
			return &c.Systems[i]
		}
	}
	return nil
}
