// Package pipeline orchestrates a dataset build: discover and shuffle input
// files, split them into train/validation, and fan each split out to a fixed
// pool of workers that write the shard files.
//
// Splits run sequentially; workers within a split run concurrently over
// disjoint index ranges and share no mutable state, so the only coordination
// is the errgroup join. The first failing worker cancels the rest and fails
// the run.
package pipeline
