package testsupport

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func mkdirAll(t testing.TB, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

// WritePNG encodes a small grayscale PNG of the given dimensions at path.
func WritePNG(t testing.TB, path string, width, height int) {
	t.Helper()

	mkdirAll(t, filepath.Dir(path))
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePNGs creates count fixture images named img-000.png onward inside dir
// and returns their paths in name order.
func WritePNGs(t testing.TB, dir string, count int) []string {
	t.Helper()

	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		path := filepath.Join(dir, "img-"+threeDigits(i)+".png")
		WritePNG(t, path, 4, 4)
		paths = append(paths, path)
	}
	return paths
}

// WriteFile fills the target path with arbitrary bytes.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()
	mkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func threeDigits(n int) string {
	digits := []byte{'0', '0', '0'}
	for i := 2; i >= 0 && n > 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits)
}
