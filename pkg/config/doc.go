// Package config loads printmock server configuration.
//
// Values are layered, later sources winning:
//
//  1. Defaults (Default)
//  2. A YAML file (Load), with ${VAR} and ${VAR:-default} expansion,
//     validated against an embedded JSON Schema
//  3. Environment variables (ApplyEnv)
//  4. Command-line flags, applied by the CLI
//
// Example file:
//
//	server:
//	  port: ${PORT:-4000}
//	log:
//	  level: debug
//	slicer:
//	  minDelay: 0s
//	  maxDelay: 0s
//	orders:
//	  idStrategy: sequential
package config
