// Package config loads, normalizes, and validates shardpack configuration.
//
// Values come from a TOML file (default ~/.config/shardpack/config.toml)
// with CLI flags layered on top by the command layer. Validation runs before
// any filesystem work so invariant violations, notably a shard count that
// the thread count does not divide, fail the run without touching the
// output directory.
package config
