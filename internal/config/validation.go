package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ValidationError represents a single schema violation, tagged with the
// dotted path of the offending field.
type ValidationError struct {
	Path    string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Path == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Path, ve.Message)
}

// ValidationErrors is a collection of validation errors. Validation never
// stops at the first violation so a user can fix everything in one pass.
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(path, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Path:    path,
		Value:   val,
		Message: message,
	})
}

// OrNil returns the collection as an error, or nil when empty. The typed-nil
// trap makes returning a bare ValidationErrors dangerous.
func (ve ValidationErrors) OrNil() error {
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Validate checks the configuration against the schema and returns every
// violation found. In strict mode, keys outside the schema at the root and
// system level are rejected as well; by default they are tolerated for
// forward compatibility.
func Validate(cfg *Config, strict bool) ValidationErrors {
	var errs ValidationErrors

	if strict {
		for _, uk := range cfg.unknownKeys {
			errs.Add(uk.Path, fmt.Sprintf("unknown key (line %d)", uk.Line))
		}
	}

	if len(cfg.Systems) == 0 {
		errs.Add("system", "at least one system must be defined")
		return errs
	}

	seen := make(map[string]bool)
	for i := range cfg.Systems {
		sys := &cfg.Systems[i]
		if seen[sys.Name] {
			errs.Add("system."+sys.Name, "duplicate system name")
		}
		seen[sys.Name] = true
		validateSystem(sys, strict, &errs)
	}

	return errs
}

func validateSystem(sys *SystemConfig, strict bool, errs *ValidationErrors) {
	path := "system." + sys.Name

	if strict {
		for _, uk := range sys.unknownKeys {
			errs.Add(path+"."+uk.Path, fmt.Sprintf("unknown key (line %d)", uk.Line))
		}
	}

	if len(sys.Hostnames) == 0 {
		errs.Add(path+".hostnames", "must be a non-empty list of hostname patterns")
	}
	for i, pattern := range sys.Hostnames {
		if _, err := regexp.Compile(pattern); err != nil {
			errs.Add(fmt.Sprintf("%s.hostnames[%d]", path, i),
				fmt.Sprintf("invalid regular expression: %v", err), pattern)
		}
	}

	if err := validateOneOf(sys.ModuleTool, ModuleTools); err != "" {
		errs.Add(path+".moduletool", err, sys.ModuleTool)
	}

	validateExecutors(&sys.Executors, path+".executors", errs)
	validateCompilers(&sys.Compilers, path+".compilers", errs)

	if sys.CDash != nil {
		validateCDash(sys.CDash, path+".cdash", errs)
	}
}

// localShells lists the shells a local executor may use. Shell values may
// carry invocation flags ("bash -x"); only the first token is checked.
var localShells = []string{"bash", "sh", "csh", "tcsh", "zsh", "python"}

func validateExecutors(ec *ExecutorConfig, path string, errs *ValidationErrors) {
	for _, uk := range ec.unknownCategories {
		errs.Add(path+"."+uk.Path,
			fmt.Sprintf("unknown executor category (line %d), must be one of: defaults, local, slurm, lsf, cobalt, pbs", uk.Line))
	}

	total := len(ec.Local) + len(ec.Slurm) + len(ec.LSF) + len(ec.Cobalt) + len(ec.PBS)
	if total == 0 {
		errs.Add(path, "must define at least one executor")
	}

	if d := ec.Defaults; d != nil {
		if d.PollInterval != nil && *d.PollInterval <= 0 {
			errs.Add(path+".defaults.pollinterval", "must be a positive integer", *d.PollInterval)
		}
		if d.MaxPendTime != nil && *d.MaxPendTime <= 0 {
			errs.Add(path+".defaults.max_pend_time", "must be a positive integer", *d.MaxPendTime)
		}
	}

	for name, spec := range ec.Local {
		ipath := fmt.Sprintf("%s.local.%s", path, name)
		shell := spec.Shell
		if fields := strings.Fields(shell); len(fields) > 0 {
			shell = fields[0]
		}
		if shell == "" {
			errs.Add(ipath+".shell", "is required for local executors")
		} else if err := validateOneOf(shell, localShells); err != "" {
			errs.Add(ipath+".shell", err, spec.Shell)
		}
	}

	for category, instances := range map[string]map[string]BatchExecutorSpec{
		"slurm":  ec.Slurm,
		"lsf":    ec.LSF,
		"cobalt": ec.Cobalt,
		"pbs":    ec.PBS,
	} {
		for name, spec := range instances {
			ipath := fmt.Sprintf("%s.%s.%s", path, category, name)
			if spec.PollInterval != nil && *spec.PollInterval <= 0 {
				errs.Add(ipath+".pollinterval", "must be a positive integer", *spec.PollInterval)
			}
			if spec.MaxPendTime != nil && *spec.MaxPendTime <= 0 {
				errs.Add(ipath+".max_pend_time", "must be a positive integer", *spec.MaxPendTime)
			}
		}
	}
}

func validateCompilers(cc *CompilerConfig, path string, errs *ValidationErrors) {
	for i, fp := range cc.Find {
		if _, err := regexp.Compile(fp.Pattern); err != nil {
			errs.Add(fmt.Sprintf("%s.find.%s", path, fp.Family),
				fmt.Sprintf("invalid regular expression: %v", err), fp.Pattern)
		}
		for j := 0; j < i; j++ {
			if cc.Find[j].Family == fp.Family {
				errs.Add(fmt.Sprintf("%s.find.%s", path, fp.Family), "duplicate compiler family")
			}
		}
	}

	for family, instances := range cc.Compiler {
		for name, spec := range instances {
			ipath := fmt.Sprintf("%s.compiler.%s.%s", path, family, name)
			if spec.CC == "" {
				errs.Add(ipath+".cc", "is required for compiler instances")
			}
			if spec.CXX == "" {
				errs.Add(ipath+".cxx", "is required for compiler instances")
			}
			if spec.FC == "" {
				errs.Add(ipath+".fc", "is required for compiler instances")
			}
		}
	}
}

func validateCDash(cd *CDashConfig, path string, errs *ValidationErrors) {
	if cd.URL == "" {
		errs.Add(path+".url", "is required when cdash is configured")
	} else if u, err := url.Parse(cd.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs.Add(path+".url", "must be an absolute URL", cd.URL)
	}
	if cd.Project == "" {
		errs.Add(path+".project", "is required when cdash is configured")
	}
}

// validateOneOf returns an error message when value is not in allowed, or ""
// when it is.
func validateOneOf(value string, allowed []string) string {
	for _, a := range allowed {
		if value == a {
			return ""
		}
	}
	return fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", "))
}
