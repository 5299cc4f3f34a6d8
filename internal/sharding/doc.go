// Package sharding implements the deterministic partitioning scheme that maps
// an ordered file list onto workers and output shards.
//
// Partitioning is pure index arithmetic: a list of length L is divided into N
// contiguous half-open ranges by evenly interpolated boundaries, so the same
// inputs always yield the same assignment. Workers apply the same rule a
// second time to subdivide their own range into shard ranges.
package sharding
