// Package formatting renders systems, executors and compilers as tables for
// the listing commands.
package formatting

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"crucible/internal/compiler"
	"crucible/internal/config"
	"crucible/internal/executor"
	crstrings "crucible/pkg/strings"
)

// createTable creates a new table with standard styling.
func createTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func header(columns ...string) table.Row {
	row := make(table.Row, 0, len(columns))
	for _, c := range columns {
		row = append(row, text.FgHiCyan.Sprint(c))
	}
	return row
}

// SystemsTable renders all configured systems in declaration order. The
// system named active is marked; active may be empty when the host matched
// no system.
func SystemsTable(w io.Writer, systems []config.SystemConfig, active string) {
	t := createTable(w)
	t.AppendHeader(header("SYSTEM", "HOSTNAMES", "MODULETOOL", "ACTIVE", "DESCRIPTION"))

	for _, sys := range systems {
		mark := ""
		if sys.Name == active {
			mark = text.FgGreen.Sprint("*")
		}
		t.AppendRow(table.Row{
			sys.Name,
			strings.Join(sys.Hostnames, ", "),
			sys.ModuleTool,
			mark,
			crstrings.TruncateDescription(sys.Description, crstrings.DefaultDescriptionMaxLen),
		})
	}
	t.Render()
}

// ExecutorsTable renders the executors of the active system.
func ExecutorsTable(w io.Writer, executors []executor.Executor) {
	t := createTable(w)
	t.AppendHeader(header("NAME", "CATEGORY", "LAUNCHER", "POLLINTERVAL", "MAX_PEND_TIME", "DESCRIPTION"))

	for _, exec := range executors {
		launcher, pollInterval, maxPendTime := "-", "-", "-"
		if b, ok := exec.(executor.BatchExecutor); ok {
			launcher = b.Launcher()
			pollInterval = fmt.Sprintf("%d", b.PollInterval())
			maxPendTime = fmt.Sprintf("%d", b.MaxPendTime())
		} else if l, ok := exec.(*executor.Local); ok {
			launcher = l.Shell()
		}
		t.AppendRow(table.Row{
			exec.Name(),
			string(exec.Category()),
			launcher,
			pollInterval,
			maxPendTime,
			crstrings.TruncateDescription(exec.Description(), crstrings.DefaultDescriptionMaxLen),
		})
	}
	t.Render()
}

// CompilersTable renders the compiler instances of the active system,
// grouped by family.
func CompilersTable(w io.Writer, instances []compiler.Instance) {
	t := createTable(w)
	t.AppendHeader(header("FAMILY", "NAME", "CC", "CXX", "FC"))

	for _, inst := range instances {
		t.AppendRow(table.Row{inst.Family, inst.Name, inst.CC, inst.CXX, inst.FC})
	}
	t.Render()
}
