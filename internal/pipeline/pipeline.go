package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"shardpack/internal/config"
	"shardpack/internal/dataset"
	"shardpack/internal/imaging"
	"shardpack/internal/logging"
	"shardpack/internal/manifest"
	"shardpack/internal/preflight"
)

// LockFileName guards the output directory against concurrent builds.
const LockFileName = ".shardpack.lock"

// Pipeline runs dataset builds. Construct with New; the zero value is not
// usable.
type Pipeline struct {
	cfg     *config.Config
	decoder imaging.Decoder
	logger  *slog.Logger
}

// New constructs a pipeline over an immutable config snapshot. A nil decoder
// defaults to the standard library decoder; a nil logger discards output.
func New(cfg *config.Config, decoder imaging.Decoder, logger *slog.Logger) *Pipeline {
	if decoder == nil {
		decoder = imaging.NewStdDecoder()
	}
	return &Pipeline{
		cfg:     cfg,
		decoder: decoder,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run executes one build. The configuration invariants are re-checked first
// so a pipeline constructed around an unvalidated config still fails before
// touching the filesystem.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	if err := p.cfg.Validate(); err != nil {
		return nil, Wrap(ErrConfiguration, "validate", err.Error(), nil)
	}
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, Wrap(ErrPreflight, "ensure directories", "", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.OutputDir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrPreflight, "acquire output lock", "", err)
	}
	if !locked {
		return nil, Wrap(ErrLocked, "acquire output lock", "another build is writing to "+p.cfg.Paths.OutputDir, nil)
	}
	defer func() { _ = lock.Unlock() }()

	if err := preflight.Error(preflight.RunAll(p.cfg)); err != nil {
		return nil, Wrap(ErrPreflight, "preflight", "", err)
	}

	var store *manifest.Store
	if p.cfg.Manifest.Enabled {
		store, err = manifest.Open(p.cfg.Paths.OutputDir)
		if err != nil {
			return nil, Wrap(ErrPreflight, "open manifest", "", err)
		}
		defer store.Close()
	}

	files := dataset.Scan(p.cfg.Paths.DataDir, p.cfg.ScanExtensions())
	p.logger.Info("discovered input files",
		logging.Int("files", len(files)),
		logging.String("dir", p.cfg.Paths.DataDir),
	)
	shuffled := dataset.Shuffle(files, p.cfg.Build.ShuffleSeed)
	splits := dataset.Split(shuffled, p.cfg.Build.ValidationSize)

	summary := &Summary{FilesFound: len(files)}

	var runID string
	if store != nil {
		runID, err = store.BeginRun(ctx, manifest.Run{
			DataDir:        p.cfg.Paths.DataDir,
			NumShards:      p.cfg.Build.NumShards,
			NumThreads:     p.cfg.Build.NumThreads,
			ValidationSize: p.cfg.Build.ValidationSize,
			ShuffleSeed:    p.cfg.Build.ShuffleSeed,
		})
		if err != nil {
			return nil, err
		}
		summary.RunID = runID
	}

	for _, split := range []struct {
		name  string
		files []string
	}{
		{dataset.SplitTrain, splits.Train},
		{dataset.SplitValidation, splits.Validation},
	} {
		if len(split.files) == 0 {
			p.logger.Info("skipping empty split", logging.String(logging.FieldSplit, split.name))
			continue
		}
		result, err := p.runSplit(ctx, store, runID, split.name, split.files)
		if err != nil {
			if store != nil {
				_ = store.FailRun(context.WithoutCancel(ctx), runID)
			}
			return nil, err
		}
		summary.Splits = append(summary.Splits, *result)
		summary.Records += result.Records
	}

	if store != nil {
		if err := store.FinishRun(ctx, runID, summary.Records); err != nil {
			return nil, err
		}
	}

	summary.Duration = time.Since(start)
	p.logger.Info("build complete",
		logging.Int("records", summary.Records),
		logging.Duration("elapsed", summary.Duration),
	)
	return summary, nil
}
