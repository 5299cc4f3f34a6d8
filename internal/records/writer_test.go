package records

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"shardpack/internal/imaging"
)

func sampleRecord(name string) Record {
	return New("/data/"+name, []byte("encoded-bytes-"+name), imaging.Metadata{
		Height:   32,
		Width:    64,
		Channels: 3,
		Format:   "PNG",
	})
}

func TestWriterReaderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train-00000-of-00002")

	w, err := NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []Record{sampleRecord("a.png"), sampleRecord("b.png"), sampleRecord("c.png")}
	for _, rec := range want {
		if err := w.Append(rec); err != nil {
			t.Fatal(err)
		}
	}
	if w.Count() != len(want) {
		t.Fatalf("writer count = %d, want %d", w.Count(), len(want))
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for i, wantRec := range want {
		got, err := r.Next()
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if got.Filename != wantRec.Filename {
			t.Errorf("record %d filename = %q, want %q", i, got.Filename, wantRec.Filename)
		}
		if string(got.Encoded) != string(wantRec.Encoded) {
			t.Errorf("record %d encoded bytes differ", i)
		}
		if got.Height != 32 || got.Width != 64 || got.Colorspace != "RGB" {
			t.Errorf("record %d metadata = %+v", i, got)
		}
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF after last record, got %v", err)
	}
}

func TestRecordStoresBaseName(t *testing.T) {
	rec := New("/some/deep/path/img.png", nil, imaging.Metadata{})
	if rec.Filename != "img.png" {
		t.Fatalf("filename = %q, want img.png", rec.Filename)
	}
}

func TestReaderDetectsCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shard")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Append(sampleRecord("a.png")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[20] ^= 0xff
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := CountFile(path); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestReaderDetectsTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shard")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Append(sampleRecord("a.png")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-2], 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := CountFile(path); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestCountFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shard")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := w.Append(sampleRecord("x.png")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	count, err := CountFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Fatalf("count = %d, want 5", count)
	}
}
