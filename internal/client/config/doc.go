// Package config loads runtime configuration for the onepass CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see Load), JSON or TOML by extension.
//  3. Command-line flags of the CLI, which override earlier values.
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "10s"
// or integer nanoseconds:
//
//	{
//	  "server_address": "127.0.0.1:50051",
//	  "session_file": "/home/alice/.onepass/session",
//	  "timeout": "10s"
//	}
package config
