package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crucible/internal/config"
)

const cmdTestConfig = `
system:
  cori:
    hostnames: ["cori*"]
    moduletool: environment-modules
    executors:
      defaults:
        pollinterval: 30
        launcher: sbatch
        max_pend_time: 300
      local:
        bash:
          shell: bash
      slurm:
        haswell_debug:
          qos: debug
  generic:
    hostnames: [".*"]
    moduletool: N/A
    executors:
      local:
        sh:
          shell: sh
`

func writeCmdConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestConfigValidate(t *testing.T) {
	path := writeCmdConfig(t, cmdTestConfig)

	out, err := runCommand(t, "--config", path, "--hostname", "cori08", "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration is valid")
	assert.Contains(t, out, "active system: cori")
}

func TestConfigValidate_ReportsEveryViolation(t *testing.T) {
	path := writeCmdConfig(t, `
system:
  broken:
    hostnames: ["[oops"]
    moduletool: spack
    executors:
      local:
        bash:
          shell: bash
`)

	out, err := runCommand(t, "--config", path, "--hostname", "x", "config", "validate")
	require.Error(t, err)
	assert.Contains(t, out, "system.broken.hostnames[0]")
	assert.Contains(t, out, "system.broken.moduletool")

	// The summary error must still unwrap to the violations so Execute
	// exits with the invalid-configuration code.
	var verrs config.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}

func TestConfigValidate_NoMatchIsNonFatal(t *testing.T) {
	path := writeCmdConfig(t, `
system:
  cori:
    hostnames: ["cori*"]
    moduletool: N/A
    executors:
      local:
        bash:
          shell: bash
`)

	out, err := runCommand(t, "--config", path, "--hostname", "summit01", "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "warning:")
}

func TestConfigSystems(t *testing.T) {
	path := writeCmdConfig(t, cmdTestConfig)

	out, err := runCommand(t, "--config", path, "--hostname", "laptop.local", "config", "systems")
	require.NoError(t, err)
	assert.Contains(t, out, "cori")
	assert.Contains(t, out, "generic")
}

func TestActiveSystemName(t *testing.T) {
	cfg, err := config.LoadBytes([]byte(cmdTestConfig))
	require.NoError(t, err)

	assert.Equal(t, "cori", activeSystemName(cfg, "cori08", nil))

	// A hostname lookup failure means no active system, even with a
	// catch-all pattern in the configuration.
	failing := func() (string, error) { return "", errors.New("hostname unavailable") }
	assert.Empty(t, activeSystemName(cfg, "", failing))

	working := func() (string, error) { return "laptop.local", nil }
	assert.Equal(t, "generic", activeSystemName(cfg, "", working))
}

func TestConfigExecutors(t *testing.T) {
	path := writeCmdConfig(t, cmdTestConfig)

	out, err := runCommand(t, "--config", path, "--hostname", "cori08", "config", "executors")
	require.NoError(t, err)
	assert.Contains(t, out, "haswell_debug")
	assert.Contains(t, out, "sbatch")
}

func TestConfigView(t *testing.T) {
	path := writeCmdConfig(t, cmdTestConfig)

	out, err := runCommand(t, "--config", path, "--hostname", "cori08", "config", "view")
	require.NoError(t, err)
	assert.Contains(t, out, "# active system: cori (host cori08)")
	assert.Contains(t, out, "haswell_debug")
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")

	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "crucible version 1.2.3")
}
