package pipeline

import "time"

// ShardResult describes one written shard file.
type ShardResult struct {
	Split   string
	Index   int
	Path    string
	Records int
}

// SplitResult aggregates the shards of one split.
type SplitResult struct {
	Split   string
	Files   int
	Shards  []ShardResult
	Records int
}

// Summary reports a completed build.
type Summary struct {
	RunID      string
	FilesFound int
	Splits     []SplitResult
	Records    int
	Duration   time.Duration
}
