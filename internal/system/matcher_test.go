package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crucible/internal/config"
)

func systemsFixture() []config.SystemConfig {
	return []config.SystemConfig{
		{Name: "cori", Hostnames: []string{"cori*"}},
		{Name: "ascent", Hostnames: []string{"login1.ascent.olcf.ornl.gov"}},
		{Name: "generic", Hostnames: []string{".*"}},
	}
}

func TestMatcher_ReusableAcrossSelects(t *testing.T) {
	m := NewMatcher(systemsFixture())

	for hostname, want := range map[string]string{
		"cori08":                      "cori",
		"login1.ascent.olcf.ornl.gov": "ascent",
		"laptop.local":                "generic",
	} {
		sys, err := m.Select(hostname)
		require.NoError(t, err)
		assert.Equal(t, want, sys.Name, "hostname %s", hostname)
	}
}

func TestSelectSystem_FirstMatchWins(t *testing.T) {
	sys, err := SelectSystem(systemsFixture(), "cori08")
	require.NoError(t, err)
	assert.Equal(t, "cori", sys.Name)
}

func TestSelectSystem_CatchAllFallback(t *testing.T) {
	sys, err := SelectSystem(systemsFixture(), "laptop.local")
	require.NoError(t, err)
	assert.Equal(t, "generic", sys.Name)
}

func TestSelectSystem_DeclarationOrderTieBreak(t *testing.T) {
	// Both systems match; the first declared one wins, so a catch-all
	// shadows everything declared after it.
	systems := []config.SystemConfig{
		{Name: "generic", Hostnames: []string{".*"}},
		{Name: "cori", Hostnames: []string{"cori*"}},
	}

	sys, err := SelectSystem(systems, "cori08")
	require.NoError(t, err)
	assert.Equal(t, "generic", sys.Name)
}

func TestSelectSystem_UnanchoredSearch(t *testing.T) {
	systems := []config.SystemConfig{
		{Name: "ascent", Hostnames: []string{"ascent"}},
	}

	sys, err := SelectSystem(systems, "login1.ascent.olcf.ornl.gov")
	require.NoError(t, err)
	assert.Equal(t, "ascent", sys.Name)
}

func TestSelectSystem_NoMatch(t *testing.T) {
	systems := []config.SystemConfig{
		{Name: "cori", Hostnames: []string{"cori*"}},
		{Name: "ascent", Hostnames: []string{"ascent"}},
	}

	_, err := SelectSystem(systems, "summit01")
	require.Error(t, err)

	var noMatch *NoMatchError
	require.True(t, errors.As(err, &noMatch))
	assert.Equal(t, "summit01", noMatch.Hostname)
	assert.Equal(t, []string{"cori", "ascent"}, noMatch.Systems)
	assert.Contains(t, err.Error(), "summit01")
}

func TestSelectSystem_SkipsInvalidPatterns(t *testing.T) {
	// Invalid patterns are a validation concern; selection must not panic
	// or match on them.
	systems := []config.SystemConfig{
		{Name: "broken", Hostnames: []string{"[invalid"}},
		{Name: "generic", Hostnames: []string{".*"}},
	}

	sys, err := SelectSystem(systems, "anything")
	require.NoError(t, err)
	assert.Equal(t, "generic", sys.Name)
}

func TestCurrentHostname(t *testing.T) {
	originalOsHostname := osHostname
	defer func() { osHostname = originalOsHostname }()
	osHostname = func() (string, error) { return "cori08", nil }

	hostname, err := CurrentHostname()
	require.NoError(t, err)
	assert.Equal(t, "cori08", hostname)
}
