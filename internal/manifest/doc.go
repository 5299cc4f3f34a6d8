// Package manifest records build runs and their shard files in a SQLite
// database next to the output shards.
//
// The manifest answers the question partial output otherwise leaves open:
// a run row that never reached the completed status marks its shards as
// untrustworthy. Nothing reads the manifest to resume work; it is a record,
// not a checkpoint.
package manifest
