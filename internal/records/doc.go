// Package records defines the fixed per-image record schema and the shard
// file format it is written in.
//
// Each record is a msgpack-encoded payload wrapped in a length-prefixed frame
// carrying masked CRC-32C checksums over both the length and the payload, so
// readers can detect truncation and corruption per record. Writer appends
// records to one shard file; Reader iterates them back for inspection and
// tests.
package records
