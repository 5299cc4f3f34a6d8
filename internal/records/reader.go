package records

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrCorrupt reports a frame whose checksum or length does not match its
// contents.
var ErrCorrupt = errors.New("corrupt record frame")

// Reader iterates the records of one shard file, verifying checksums.
type Reader struct {
	path string
	file *os.File
	buf  *bufio.Reader
}

// NewReader opens the shard file at path.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shard %s: %w", path, err)
	}
	return &Reader{path: path, file: file, buf: bufio.NewReaderSize(file, 1<<20)}, nil
}

// Next returns the next record, or io.EOF after the final one. A frame that
// fails its checksum or ends mid-payload returns an error wrapping ErrCorrupt.
func (r *Reader) Next() (Record, error) {
	var header [12]byte
	if _, err := io.ReadFull(r.buf, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("%w: truncated header in %s", ErrCorrupt, r.path)
	}
	length := binary.LittleEndian.Uint64(header[:8])
	if binary.LittleEndian.Uint32(header[8:]) != maskedCRC(header[:8]) {
		return Record{}, fmt.Errorf("%w: length checksum mismatch in %s", ErrCorrupt, r.path)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r.buf, payload); err != nil {
		return Record{}, fmt.Errorf("%w: truncated payload in %s", ErrCorrupt, r.path)
	}
	var footer [4]byte
	if _, err := io.ReadFull(r.buf, footer[:]); err != nil {
		return Record{}, fmt.Errorf("%w: truncated footer in %s", ErrCorrupt, r.path)
	}
	if binary.LittleEndian.Uint32(footer[:]) != maskedCRC(payload) {
		return Record{}, fmt.Errorf("%w: payload checksum mismatch in %s", ErrCorrupt, r.path)
	}

	var rec Record
	if err := msgpack.Unmarshal(payload, &rec); err != nil {
		return Record{}, fmt.Errorf("unmarshal record in %s: %w", r.path, err)
	}
	return rec, nil
}

// Count reads through the remaining records and returns how many there were.
func (r *Reader) Count() (int, error) {
	count := 0
	for {
		_, err := r.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		count++
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// CountFile opens path and returns its record count.
func CountFile(path string) (int, error) {
	reader, err := NewReader(path)
	if err != nil {
		return 0, err
	}
	defer reader.Close()
	return reader.Count()
}
