// Package system resolves which configured system applies to the current
// host.
//
// Hostname patterns are case-sensitive, unanchored regular expressions.
// Systems are tried in declaration order and the first system with a
// matching pattern wins, so a catch-all ".*" system is only a safe fallback
// when declared last. This tie-break is deliberate: multiple systems may
// match the same host and declaration order is the only signal the
// configuration carries.
package system

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"crucible/internal/config"
	"crucible/pkg/logging"
)

// osHostname is a package-level indirection so tests can fake the host.
var osHostname = os.Hostname

// NoMatchError reports that no configured system matched the hostname. It is
// fatal for operations that need an active system (building or running a
// test) and informational for listing operations.
type NoMatchError struct {
	Hostname string
	Systems  []string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("hostname %q did not match any of the configured systems: %s",
		e.Hostname, strings.Join(e.Systems, ", "))
}

// CurrentHostname returns the hostname used for system selection.
func CurrentHostname() (string, error) {
	hostname, err := osHostname()
	if err != nil {
		return "", fmt.Errorf("could not determine hostname: %w", err)
	}
	return hostname, nil
}

// Matcher selects systems by hostname with every pattern compiled once.
// Patterns that fail to compile are dropped at construction; they are
// reported by schema validation.
type Matcher struct {
	systems  []config.SystemConfig
	patterns [][]*regexp.Regexp
}

// NewMatcher compiles the hostname patterns of every system.
func NewMatcher(systems []config.SystemConfig) *Matcher {
	m := &Matcher{
		systems:  systems,
		patterns: make([][]*regexp.Regexp, len(systems)),
	}
	for i := range systems {
		compiled := make([]*regexp.Regexp, 0, len(systems[i].Hostnames))
		for _, pattern := range systems[i].Hostnames {
			re, err := regexp.Compile(pattern)
			if err != nil {
				continue
			}
			compiled = append(compiled, re)
		}
		m.patterns[i] = compiled
	}
	return m
}

// Select returns the first system in declaration order with at least one
// hostname pattern matching hostname.
func (m *Matcher) Select(hostname string) (*config.SystemConfig, error) {
	for i := range m.systems {
		sys := &m.systems[i]
		for _, re := range m.patterns[i] {
			if re.MatchString(hostname) {
				logging.Debug("System", "Hostname %q matched pattern %q of system %q", hostname, re.String(), sys.Name)
				return sys, nil
			}
		}
	}

	names := make([]string, 0, len(m.systems))
	for i := range m.systems {
		names = append(names, m.systems[i].Name)
	}
	return nil, &NoMatchError{Hostname: hostname, Systems: names}
}

// SelectSystem is the one-shot form of Matcher.Select.
func SelectSystem(systems []config.SystemConfig, hostname string) (*config.SystemConfig, error) {
	return NewMatcher(systems).Select(hostname)
}
