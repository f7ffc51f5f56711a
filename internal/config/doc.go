// Package config defines the crucible configuration schema and its load,
// validate and default-merge stages.
//
// A configuration file declares one or more systems, each carrying hostname
// patterns, a module tool, compiler toolchains and executor definitions.
// Loading is deliberately lax so Validate can report every schema violation
// in one pass, each tagged with the dotted path of the offending field.
// MergeDefaults folds the per-system executors defaults block into each
// batch executor instance without mutating its input, so downstream
// registries always see fully resolved instances.
package config
