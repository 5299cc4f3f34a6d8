package records

import (
	"path/filepath"

	"shardpack/internal/imaging"
)

// Record is the unit written per processed image. Fields are fixed; the
// record is built once and appended to exactly one shard.
type Record struct {
	Encoded    []byte `msgpack:"encoded"`
	Height     int    `msgpack:"height"`
	Width      int    `msgpack:"width"`
	Channels   int    `msgpack:"channels"`
	Colorspace string `msgpack:"colorspace"`
	Format     string `msgpack:"format"`
	Filename   string `msgpack:"filename"`
}

// New builds a Record from the raw file bytes and their decoded metadata.
// Only the base name of path is stored.
func New(path string, encoded []byte, meta imaging.Metadata) Record {
	return Record{
		Encoded:    encoded,
		Height:     meta.Height,
		Width:      meta.Width,
		Channels:   meta.Channels,
		Colorspace: meta.Colorspace(),
		Format:     meta.Format,
		Filename:   filepath.Base(path),
	}
}
