package preflight

import (
	"path/filepath"
	"testing"

	"shardpack/internal/config"
)

func TestCheckDirectoryReadable(t *testing.T) {
	dir := t.TempDir()
	if result := CheckDirectoryReadable("dir", dir); !result.Passed {
		t.Fatalf("existing dir failed: %s", result.Detail)
	}
	if result := CheckDirectoryReadable("dir", filepath.Join(dir, "missing")); result.Passed {
		t.Fatal("missing dir passed")
	}
}

func TestCheckDirectoryWritable(t *testing.T) {
	if result := CheckDirectoryWritable("dir", t.TempDir()); !result.Passed {
		t.Fatalf("writable dir failed: %s", result.Detail)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckFreeSpace("space", dir, 1); !result.Passed {
		t.Fatalf("1 MiB check failed: %s", result.Detail)
	}
	// An absurd requirement should fail.
	if result := CheckFreeSpace("space", dir, 1<<40); result.Passed {
		t.Fatal("exabyte free-space check passed")
	}
}

func TestRunAllAndError(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = base
	cfg.Paths.OutputDir = base
	cfg.Build.MinFreeMiB = 1

	results := RunAll(&cfg)
	if err := Error(results); err != nil {
		t.Fatalf("healthy config failed preflight: %v", err)
	}

	cfg.Paths.DataDir = filepath.Join(base, "missing")
	if err := Error(RunAll(&cfg)); err == nil {
		t.Fatal("missing data dir passed preflight")
	}
}
