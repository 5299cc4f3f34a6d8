// Package imaging decodes image files into the metadata recorded alongside
// their raw bytes. The decoder is an interface so the shard pipeline can be
// exercised in tests without real image fixtures.
package imaging
