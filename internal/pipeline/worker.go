package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"shardpack/internal/logging"
	"shardpack/internal/manifest"
	"shardpack/internal/records"
	"shardpack/internal/sharding"
)

// runSplit fans one split out to the configured worker pool and joins all
// workers before returning. Per-worker results land in disjoint slots, so no
// locking is needed beyond the join.
func (p *Pipeline) runSplit(ctx context.Context, store *manifest.Store, runID, split string, files []string) (*SplitResult, error) {
	workers := p.cfg.Build.NumThreads
	ranges, err := sharding.Partition(len(files), workers)
	if err != nil {
		return nil, Wrap(ErrConfiguration, "partition split", split, err)
	}

	p.logger.Info("starting split",
		logging.String(logging.FieldSplit, split),
		logging.Int("files", len(files)),
		logging.Int("workers", workers),
		logging.Int("shards", p.cfg.Build.NumShards),
	)

	perWorker := make([][]ShardResult, workers)
	group, groupCtx := errgroup.WithContext(ctx)
	for index, workerRange := range ranges {
		index, workerRange := index, workerRange
		group.Go(func() error {
			results, err := p.runWorker(groupCtx, split, index, workerRange, files)
			if err != nil {
				return err
			}
			perWorker[index] = results
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &SplitResult{Split: split, Files: len(files)}
	for _, shardResults := range perWorker {
		for _, shard := range shardResults {
			result.Shards = append(result.Shards, shard)
			result.Records += shard.Records
		}
	}

	if store != nil {
		for _, shard := range result.Shards {
			err := store.AddShard(ctx, manifest.Shard{
				RunID:       runID,
				Split:       shard.Split,
				Index:       shard.Index,
				Path:        shard.Path,
				RecordCount: shard.Records,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	p.logger.Info("split complete",
		logging.String(logging.FieldSplit, split),
		logging.Int("records", result.Records),
		logging.Int("shards", len(result.Shards)),
	)
	return result, nil
}

// runWorker writes every shard assigned to one worker, in shard order, with
// files in their post-shuffle order. The first file that cannot be read or
// decoded fails the worker, and through the errgroup, the whole split.
func (p *Pipeline) runWorker(ctx context.Context, split string, worker int, workerRange sharding.Range, files []string) ([]ShardResult, error) {
	shardsPerWorker := p.cfg.ShardsPerWorker()
	shardRanges, err := sharding.Subdivide(workerRange, shardsPerWorker)
	if err != nil {
		return nil, Wrap(ErrConfiguration, "subdivide worker range", split, err)
	}

	logger := p.logger.With(
		logging.String(logging.FieldSplit, split),
		logging.Int(logging.FieldWorker, worker),
	)
	ticker := logging.NewProgressTicker(p.cfg.Build.ProgressInterval)

	results := make([]ShardResult, 0, shardsPerWorker)
	for local, shardRange := range shardRanges {
		shardIndex := worker*shardsPerWorker + local
		name := sharding.ShardName(split, shardIndex, p.cfg.Build.NumShards)
		path := filepath.Join(p.cfg.Paths.OutputDir, name)

		writer, err := records.NewWriter(path)
		if err != nil {
			return nil, err
		}
		if err := p.writeShard(ctx, writer, files, shardRange, ticker, logger); err != nil {
			_ = writer.Close()
			return nil, err
		}
		count := writer.Count()
		if err := writer.Close(); err != nil {
			return nil, err
		}

		logger.Info("wrote shard",
			logging.Int(logging.FieldShard, shardIndex),
			logging.Int("records", count),
			logging.String("path", path),
		)
		results = append(results, ShardResult{Split: split, Index: shardIndex, Path: path, Records: count})
	}
	return results, nil
}

func (p *Pipeline) writeShard(ctx context.Context, writer *records.Writer, files []string, shardRange sharding.Range, ticker *logging.ProgressTicker, logger *slog.Logger) error {
	for i := shardRange.Start; i < shardRange.End; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := files[i]
		data, err := os.ReadFile(path)
		if err != nil {
			return Wrap(ErrDecode, "read file", path, err)
		}
		meta, err := p.decoder.Decode(data)
		if err != nil {
			return Wrap(ErrDecode, "decode file", path, err)
		}

		if err := writer.Append(records.New(path, data, meta)); err != nil {
			return err
		}
		if ticker.Tick() {
			logger.Info("progress", logging.Int("processed", ticker.Count()))
		}
	}
	return nil
}
