// Package logging provides a structured logging system for crucible built on
// Go's standard slog package.
//
// All log entries carry a subsystem identifier ("Config", "Resolver",
// "Executor", ...) so output can be filtered per concern. Initialize once at
// startup with InitForCLI and log through the package-level Debug, Info, Warn
// and Error functions:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("Config", "Loaded configuration from %s", path)
//	logging.Error("Resolver", err, "Failed to resolve active system")
//
// Level filtering happens at the handler, so filtered-out messages cost no
// formatting work.
package logging
