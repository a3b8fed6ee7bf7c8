package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/vnode/internal/config"
	"github.com/vango-dev/vnode/pkg/snapshot"
)

const sceneTOML = `
name = "cli"

[[step]]
name = "first"
[step.root]
tag = "p"
text = "a"

[[step]]
name = "second"
[step.root]
tag = "p"
text = "b"
`

func TestRunScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.toml")
	if err := os.WriteFile(path, []byte(sceneTOML), 0644); err != nil {
		t.Fatal(err)
	}
	snaps := filepath.Join(dir, "snaps")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, results, reg, err := runScene(context.Background(), path, config.New(),
		replayFlags{snapshots: snaps}, logger)
	if err != nil {
		t.Fatalf("runScene() error = %v", err)
	}
	if s.Name != "cli" {
		t.Errorf("scene name = %q, want cli", s.Name)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[1].HTML != "<p>b</p>" {
		t.Errorf("step 1 HTML = %q, want <p>b</p>", results[1].HTML)
	}
	if reg == nil {
		t.Fatal("registry is nil")
	}

	store, err := snapshot.NewFileStore(snaps)
	if err != nil {
		t.Fatal(err)
	}
	keys, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 {
		t.Errorf("snapshots = %v, want 2", keys)
	}
}

func TestRunSceneBadPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cli.toml")
	if err := os.WriteFile(path, []byte(sceneTOML), 0644); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, _, _, err := runScene(context.Background(), path, config.New(),
		replayFlags{policy: "sorted"}, logger)
	if err == nil {
		t.Error("runScene() with unknown policy should fail")
	}
}

func TestOpenStores(t *testing.T) {
	tests := []struct {
		name  string
		cfg   func(*config.Config)
		dir   bool
		count int
	}{
		{"none", func(*config.Config) {}, false, 0},
		{"flag dir", func(*config.Config) {}, true, 1},
		{"s3", func(c *config.Config) { c.Snapshots.S3.Bucket = "snaps" }, false, 1},
		{"both", func(c *config.Config) { c.Snapshots.S3.Bucket = "snaps" }, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.cfg(cfg)
			dir := ""
			if tt.dir {
				dir = t.TempDir()
			}
			stores, err := openStores(cfg, dir)
			if err != nil {
				t.Fatalf("openStores() error = %v", err)
			}
			if len(stores) != tt.count {
				t.Errorf("stores = %d, want %d", len(stores), tt.count)
			}
		})
	}
}
