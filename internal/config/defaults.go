package config

const (
	defaultLogDir           = "~/.local/share/shardpack/logs"
	defaultNumShards        = 2
	defaultNumThreads       = 2
	defaultValidationSize   = 0.1
	defaultShuffleSeed      = 12345
	defaultProgressInterval = 1000
	defaultMinFreeMiB       = 256
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultManifestEnabled  = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Build: Build{
			NumShards:        defaultNumShards,
			NumThreads:       defaultNumThreads,
			ValidationSize:   defaultValidationSize,
			Extensions:       []string{".png"},
			ShuffleSeed:      defaultShuffleSeed,
			ProgressInterval: defaultProgressInterval,
			MinFreeMiB:       defaultMinFreeMiB,
		},
		Manifest: Manifest{
			Enabled: defaultManifestEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
