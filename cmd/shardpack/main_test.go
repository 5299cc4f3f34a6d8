package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shardpack/internal/testsupport"
)

func writeTestConfig(t *testing.T, dir string, extra string) string {
	t.Helper()
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "images") + `"
output_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
` + extra
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, `
[build]
num_shards = 2
num_threads = 2
validation_size = 0.2
`)
	testsupport.WritePNGs(t, filepath.Join(dir, "images"), 10)

	output, err := runCommand(t, "--config", configPath, "build")
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Wrote 10 records from 10 files") {
		t.Fatalf("unexpected output:\n%s", output)
	}

	for _, name := range []string{
		"train-00000-of-00002",
		"train-00001-of-00002",
		"validation-00000-of-00002",
		"validation-00001-of-00002",
	} {
		if _, err := os.Stat(filepath.Join(dir, "out", name)); err != nil {
			t.Errorf("missing shard file %s: %v", name, err)
		}
	}
}

func TestBuildCommandRejectsIndivisibleShards(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, "")
	testsupport.WritePNGs(t, filepath.Join(dir, "images"), 3)

	_, err := runCommand(t, "--config", configPath, "build",
		"--num-shards", "10", "--num-threads", "3")
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !strings.Contains(err.Error(), "divisible") {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, statErr := os.ReadDir(filepath.Join(dir, "out"))
	if statErr == nil && len(entries) > 0 {
		t.Fatalf("output files written despite config error: %v", entries)
	}
}

func TestBuildCommandRequiresDataDirectory(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "missing.toml")

	_, err := runCommand(t, "--config", configPath, "build",
		"--output-directory", filepath.Join(dir, "out"))
	if err == nil || !strings.Contains(err.Error(), "data directory") {
		t.Fatalf("expected data directory error, got %v", err)
	}
}

func TestInspectCommandReportsLatestRun(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, `
[build]
num_shards = 2
num_threads = 2
validation_size = 0.2
`)
	testsupport.WritePNGs(t, filepath.Join(dir, "images"), 10)

	if output, err := runCommand(t, "--config", configPath, "build"); err != nil {
		t.Fatalf("build failed: %v\n%s", err, output)
	}

	output, err := runCommand(t, "--config", configPath, "inspect")
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "completed") {
		t.Fatalf("inspect output missing run status:\n%s", output)
	}
	if !strings.Contains(output, "train") || !strings.Contains(output, "validation") {
		t.Fatalf("inspect output missing splits:\n%s", output)
	}
	if strings.Contains(output, "mismatch") || strings.Contains(output, "unreadable") {
		t.Fatalf("inspect reports unverified shards:\n%s", output)
	}
}

func TestInspectCommandEmptyManifest(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir, "")
	if err := os.MkdirAll(filepath.Join(dir, "out"), 0o755); err != nil {
		t.Fatal(err)
	}

	output, err := runCommand(t, "--config", configPath, "inspect")
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No runs recorded") {
		t.Fatalf("unexpected output:\n%s", output)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	output, err := runCommand(t, "--config", configPath, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, output)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("sample config not written: %v", err)
	}

	output, err = runCommand(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "num_shards") {
		t.Fatalf("config show output missing fields:\n%s", output)
	}
}
