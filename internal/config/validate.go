package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. It performs no I/O; the
// shard divisibility invariant in particular must fail before anything is
// written.
func (c *Config) Validate() error {
	if err := c.validateBuild(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateBuild() error {
	if c.Build.NumThreads < 1 {
		return fmt.Errorf("build.num_threads must be at least 1, got %d", c.Build.NumThreads)
	}
	if c.Build.NumShards < 1 {
		return fmt.Errorf("build.num_shards must be at least 1, got %d", c.Build.NumShards)
	}
	if c.Build.NumShards%c.Build.NumThreads != 0 {
		return fmt.Errorf("build.num_shards (%d) must be evenly divisible by build.num_threads (%d)",
			c.Build.NumShards, c.Build.NumThreads)
	}
	if c.Build.ValidationSize < 0 || c.Build.ValidationSize >= 1 {
		return fmt.Errorf("build.validation_size must be in [0, 1), got %g", c.Build.ValidationSize)
	}
	if len(c.Build.Extensions) == 0 {
		return errors.New("build.extensions must list at least one file extension")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
