// Package preflight provides readiness checks run before a build touches
// the output directory: input readability, output writability, and free
// disk space. A failed check aborts the run before any shard is created.
package preflight
