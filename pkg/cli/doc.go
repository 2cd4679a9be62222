// Package cli provides the printmock command-line interface.
//
// Commands:
//   - serve: run the mock API in the foreground (default command)
//   - config: print the effective configuration as YAML
//   - version: show build information
//   - completion: generate shell completion scripts (provided by cobra)
//
// Configuration is layered: built-in defaults, then the YAML file named by
// --config or PRINTMOCK_CONFIG, then PRINTMOCK_* environment variables,
// then command-line flags.
package cli
