package executor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crucible/internal/config"
)

func intPtr(v int) *int { return &v }

func mergedFixture() config.ExecutorConfig {
	return config.ExecutorConfig{
		Local: map[string]config.LocalExecutorSpec{
			"bash":   {Shell: "bash", Description: "submit jobs on local machine"},
			"python": {Shell: "python"},
		},
		Slurm: map[string]config.BatchExecutorSpec{
			"haswell_debug": {
				Launcher:     "sbatch",
				QOS:          "debug",
				Cluster:      "cori",
				Account:      "nstaff",
				Options:      []string{"-C", "haswell"},
				PollInterval: intPtr(30),
				MaxPendTime:  intPtr(300),
			},
		},
		LSF: map[string]config.BatchExecutorSpec{
			"batch": {Launcher: "bsub", Queue: "batch", PollInterval: intPtr(30), MaxPendTime: intPtr(300)},
		},
		Cobalt: map[string]config.BatchExecutorSpec{
			"debug-flat-quad": {Launcher: "qsub", Queue: "debug-flat-quad", PollInterval: intPtr(30), MaxPendTime: intPtr(300)},
		},
		PBS: map[string]config.BatchExecutorSpec{
			"workq": {Launcher: "qsub", Queue: "workq", PollInterval: intPtr(30), MaxPendTime: intPtr(300)},
		},
	}
}

func TestNewRegistry_FlattensCategories(t *testing.T) {
	r, err := NewRegistry(mergedFixture())
	require.NoError(t, err)

	assert.Equal(t, 6, r.Len())
	assert.Equal(t, []string{"bash", "python", "haswell_debug", "batch", "debug-flat-quad", "workq"}, r.Names())
}

func TestRegistry_Lookup(t *testing.T) {
	r, err := NewRegistry(mergedFixture())
	require.NoError(t, err)

	exec, err := r.Lookup("haswell_debug")
	require.NoError(t, err)
	assert.Equal(t, CategorySlurm, exec.Category())

	slurm, ok := exec.(*Slurm)
	require.True(t, ok)
	assert.Equal(t, "sbatch", slurm.Launcher())
	assert.Equal(t, 30, slurm.PollInterval())
	assert.Equal(t, 300, slurm.MaxPendTime())

	// Every batch variant satisfies BatchExecutor.
	for _, name := range []string{"haswell_debug", "batch", "debug-flat-quad", "workq"} {
		exec, err := r.Lookup(name)
		require.NoError(t, err)
		_, ok := exec.(BatchExecutor)
		assert.True(t, ok, "%s should be a batch executor", name)
	}
}

func TestRegistry_LookupNotFound(t *testing.T) {
	r, err := NewRegistry(mergedFixture())
	require.NoError(t, err)

	_, err = r.Lookup("knl_debug")
	require.Error(t, err)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "knl_debug", notFound.Name)
}

func TestNewRegistry_DuplicateNameAcrossCategories(t *testing.T) {
	ec := config.ExecutorConfig{
		Local: map[string]config.LocalExecutorSpec{
			"debug": {Shell: "bash"},
		},
		Slurm: map[string]config.BatchExecutorSpec{
			"debug": {Launcher: "sbatch"},
		},
	}

	_, err := NewRegistry(ec)
	require.Error(t, err)

	var dup *DuplicateNameError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "debug", dup.Name)
	assert.Equal(t, [2]Category{CategoryLocal, CategorySlurm}, dup.Categories)
}

func TestNewRegistry_MissingLauncher(t *testing.T) {
	ec := config.ExecutorConfig{
		Slurm: map[string]config.BatchExecutorSpec{
			"debug":  {QOS: "debug"},
			"normal": {QOS: "normal"},
		},
	}

	_, err := NewRegistry(ec)
	require.Error(t, err)

	var verrs config.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, "executors.slurm.debug.launcher", verrs[0].Path)
	assert.Equal(t, "executors.slurm.normal.launcher", verrs[1].Path)
}

func TestLocal_ShellType(t *testing.T) {
	tests := []struct {
		shell string
		want  ShellType
	}{
		{"bash", ShellTypeBash},
		{"sh", ShellTypeBash},
		{"/bin/zsh", ShellTypeBash},
		{"bash -x", ShellTypeBash},
		{"csh", ShellTypeCsh},
		{"tcsh", ShellTypeCsh},
		{"python", ShellTypePython},
		{"fish", ShellTypeUnknown},
	}

	for _, tt := range tests {
		local := newLocal("test", "", tt.shell)
		assert.Equal(t, tt.want, local.ShellType(), "shell %q", tt.shell)
	}
}

func TestLocal_ShellName(t *testing.T) {
	local := newLocal("bash", "", "bash --norc")
	assert.Equal(t, "bash", local.ShellName())
	assert.Equal(t, "bash --norc", local.Shell())
	assert.Equal(t, CategoryLocal, local.Category())
}
