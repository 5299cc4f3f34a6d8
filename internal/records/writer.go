package records

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Writer appends framed records to a single shard file. It is not safe for
// concurrent use; each worker owns its writers exclusively.
type Writer struct {
	path  string
	file  *os.File
	buf   *bufio.Writer
	count int
}

// NewWriter creates (or truncates) the shard file at path.
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create shard %s: %w", path, err)
	}
	return &Writer{
		path: path,
		file: file,
		buf:  bufio.NewWriterSize(file, 1<<20),
	}, nil
}

// Append serializes the record and writes one frame.
func (w *Writer) Append(rec Record) error {
	payload, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.Filename, err)
	}

	var header [12]byte
	binary.LittleEndian.PutUint64(header[:8], uint64(len(payload)))
	binary.LittleEndian.PutUint32(header[8:], maskedCRC(header[:8]))
	if _, err := w.buf.Write(header[:]); err != nil {
		return fmt.Errorf("write frame header: %w", err)
	}
	if _, err := w.buf.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}

	var footer [4]byte
	binary.LittleEndian.PutUint32(footer[:], maskedCRC(payload))
	if _, err := w.buf.Write(footer[:]); err != nil {
		return fmt.Errorf("write frame footer: %w", err)
	}

	w.count++
	return nil
}

// Count reports the number of records appended so far.
func (w *Writer) Count() int {
	return w.count
}

// Path returns the shard file path.
func (w *Writer) Path() string {
	return w.path
}

// Close flushes buffered frames and closes the shard file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("flush shard %s: %w", w.path, err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close shard %s: %w", w.path, err)
	}
	return nil
}
