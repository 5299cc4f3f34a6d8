package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeEmpty(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanMatchesExtensionsCaseSensitively(t *testing.T) {
	dir := t.TempDir()
	writeEmpty(t, dir, "a.png")
	writeEmpty(t, dir, "b.PNG")
	writeEmpty(t, dir, "c.jpg")
	writeEmpty(t, dir, "notes.txt")
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	files := Scan(dir, []string{".png", ".PNG"})
	want := []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.PNG"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("Scan = %v, want %v", files, want)
	}
}

func TestScanMissingDirectoryYieldsEmpty(t *testing.T) {
	files := Scan(filepath.Join(t.TempDir(), "absent"), []string{".png"})
	if len(files) != 0 {
		t.Fatalf("expected empty list, got %v", files)
	}
}

func TestShuffleIsDeterministic(t *testing.T) {
	files := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	first := Shuffle(files, 12345)
	second := Shuffle(files, 12345)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different orders: %v vs %v", first, second)
	}

	// Input must not be mutated.
	if !reflect.DeepEqual(files, []string{"a", "b", "c", "d", "e", "f", "g", "h"}) {
		t.Fatalf("Shuffle mutated its input: %v", files)
	}
}

func TestShufflePreservesElements(t *testing.T) {
	files := []string{"a", "b", "c", "d", "e"}
	shuffled := Shuffle(files, 7)
	if len(shuffled) != len(files) {
		t.Fatalf("length changed: %d", len(shuffled))
	}
	seen := make(map[string]bool, len(shuffled))
	for _, f := range shuffled {
		seen[f] = true
	}
	for _, f := range files {
		if !seen[f] {
			t.Fatalf("element %q lost in shuffle", f)
		}
	}
}

func TestSplitSizes(t *testing.T) {
	cases := []struct {
		name      string
		length    int
		v         float64
		wantTrain int
	}{
		{"tenth", 10, 0.1, 9},
		{"fifth", 10, 0.2, 8},
		{"zero fraction", 10, 0, 10},
		{"rounds down", 7, 0.5, 3},
		{"empty input", 0, 0.3, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			files := make([]string, tc.length)
			for i := range files {
				files[i] = string(rune('a' + i))
			}
			splits := Split(files, tc.v)
			if len(splits.Train) != tc.wantTrain {
				t.Fatalf("train size = %d, want %d", len(splits.Train), tc.wantTrain)
			}
			if len(splits.Train)+len(splits.Validation) != tc.length {
				t.Fatalf("split sizes %d+%d do not cover %d", len(splits.Train), len(splits.Validation), tc.length)
			}
			recombined := append(append([]string{}, splits.Train...), splits.Validation...)
			if !reflect.DeepEqual(recombined, files) {
				t.Fatalf("concatenated splits %v do not reconstruct input %v", recombined, files)
			}
		})
	}
}
