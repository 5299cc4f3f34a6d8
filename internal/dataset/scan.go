package dataset

import (
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scan lists files in dir whose names end with one of the given extensions.
// Matching is case-sensitive; callers wanting uppercase variants must include
// them explicitly (see config.Normalize). Files are grouped by extension in
// the order the extensions are given, sorted by name within each group, so
// collection order is stable before the shuffle. An unreadable or missing
// directory yields an empty list rather than an error; downstream stages skip
// empty inputs.
func Scan(dir string, extensions []string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var files []string
	for _, ext := range extensions {
		for _, name := range names {
			if strings.HasSuffix(name, ext) {
				files = append(files, filepath.Join(dir, name))
			}
		}
	}
	return files
}

// Shuffle returns a copy of files reordered by a fixed-seed permutation.
// The same seed and input always produce the same ordering, which keeps
// shard contents reproducible across runs.
func Shuffle(files []string, seed int64) []string {
	shuffled := make([]string, len(files))
	copy(shuffled, files)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
