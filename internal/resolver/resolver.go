// Package resolver runs the configuration pipeline: parse, validate, match
// the current host to a system, merge executor defaults and materialize the
// executor and compiler registries.
//
// The result is an immutable Resolved snapshot. Hot reload swaps in a fresh
// snapshot atomically, so in-flight readers never observe a partially
// updated configuration.
package resolver

import (
	"crucible/internal/compiler"
	"crucible/internal/config"
	"crucible/internal/executor"
	"crucible/internal/system"
	"crucible/pkg/logging"
)

// Options control a resolution run.
type Options struct {
	// Path of the configuration file. Empty means the default location.
	Path string
	// Hostname overrides host detection, mainly for tests and diagnostics.
	Hostname string
	// Strict rejects configuration keys outside the schema.
	Strict bool
	// Overrides are command-line values that win over configuration.
	Overrides config.Overrides
}

// Resolved is an immutable snapshot of the configuration resolved for one
// host: the active system with executor defaults merged, plus the typed
// registries downstream consumers query.
type Resolved struct {
	Hostname  string
	Config    *config.Config
	System    *config.SystemConfig
	Executors *executor.Registry
	Compilers *compiler.Registry
}

// LoadConfig parses and validates the configuration without resolving a
// host. Listing operations use this path so a host outside every system can
// still inspect the configuration.
func LoadConfig(opts Options) (*config.Config, error) {
	path := opts.Path
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg, opts.Strict).OrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load runs the full pipeline and returns the snapshot for the current (or
// overridden) host. Every failure is eager: a broken configuration or an
// unmatched host surfaces here, before any job is submitted.
func Load(opts Options) (*Resolved, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	hostname := opts.Hostname
	if hostname == "" {
		if hostname, err = system.CurrentHostname(); err != nil {
			return nil, err
		}
	}

	active, err := system.SelectSystem(cfg.Systems, hostname)
	if err != nil {
		return nil, err
	}

	merged := *active
	merged.Executors = config.MergeDefaults(active.Executors, opts.Overrides)

	executors, err := executor.NewRegistry(merged.Executors)
	if err != nil {
		return nil, err
	}
	compilers, err := compiler.NewRegistry(merged.Compilers)
	if err != nil {
		return nil, err
	}

	logging.Info("Resolver", "Active system %q for host %q with %d executors",
		merged.Name, hostname, executors.Len())

	return &Resolved{
		Hostname:  hostname,
		Config:    cfg,
		System:    &merged,
		Executors: executors,
		Compilers: compilers,
	}, nil
}
