package executor

import "strings"

// ShellType groups shells by scripting dialect. A buildspec written for one
// dialect cannot run under an executor of another, so the (out of scope)
// test builder checks compatibility through this classification.
type ShellType string

const (
	ShellTypeBash    ShellType = "bash"
	ShellTypeCsh     ShellType = "csh"
	ShellTypePython  ShellType = "python"
	ShellTypeUnknown ShellType = ""
)

// Local runs tests directly on the host through a shell.
type Local struct {
	name        string
	description string
	shell       string
}

func newLocal(name, description, shell string) *Local {
	return &Local{name: name, description: description, shell: shell}
}

func (e *Local) Name() string        { return e.name }
func (e *Local) Category() Category  { return CategoryLocal }
func (e *Local) Description() string { return e.description }

// Shell returns the configured shell value, which may carry invocation
// flags ("bash -x").
func (e *Local) Shell() string { return e.shell }

// ShellName returns the shell binary without invocation flags.
func (e *Local) ShellName() string {
	fields := strings.Fields(e.shell)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ShellType classifies the configured shell by dialect. Absolute paths are
// classified by base name, so "/bin/bash" and "bash" group the same way.
func (e *Local) ShellType() ShellType {
	name := e.ShellName()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	switch name {
	case "sh", "bash", "zsh":
		return ShellTypeBash
	case "csh", "tcsh":
		return ShellTypeCsh
	case "python":
		return ShellTypePython
	default:
		return ShellTypeUnknown
	}
}
