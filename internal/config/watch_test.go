package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/signalnine/interop-score/internal/config"
)

// startWatch runs Watch on path and returns the reload channel and a stop func.
func startWatch(t *testing.T, path string) (<-chan *config.Config, func()) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())

	reloaded := make(chan *config.Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- config.Watch(ctx, path, logger, func(cfg *config.Config) {
			select {
			case reloaded <- cfg:
			default:
			}
		})
	}()
	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)

	stop := func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Watch returned %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Watch did not stop after cancel")
		}
	}
	return reloaded, stop
}

// waitForCategory drains reloads until one carries the wanted category name.
func waitForCategory(t *testing.T, reloaded <-chan *config.Config, want string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Categories[0].Name == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for reload with category %q", want)
		}
	}
}

func TestWatchReloads(t *testing.T) {
	path := writeConfig(t, "categories:\n  - name: a\n    tests: [x]\n")
	reloaded, stop := startWatch(t, path)
	defer stop()

	if err := os.WriteFile(path, []byte("categories:\n  - name: b\n    tests: [y]\n"), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}
	waitForCategory(t, reloaded, "b")
}

func TestWatchReloadsAfterRenameSave(t *testing.T) {
	path := writeConfig(t, "categories:\n  - name: a\n    tests: [x]\n")
	reloaded, stop := startWatch(t, path)
	defer stop()

	for _, name := range []string{"b", "c"} {
		tmp := filepath.Join(filepath.Dir(path), "interop.yaml.tmp")
		content := "categories:\n  - name: " + name + "\n    tests: [y]\n"
		if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
			t.Fatalf("writing temp config: %v", err)
		}
		if err := os.Rename(tmp, path); err != nil {
			t.Fatalf("renaming over config: %v", err)
		}
		waitForCategory(t, reloaded, name)
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	path := writeConfig(t, "categories:\n  - name: a\n    tests: [x]\n")
	reloaded, stop := startWatch(t, path)
	defer stop()

	other := filepath.Join(filepath.Dir(path), "other.yaml")
	if err := os.WriteFile(other, []byte("categories:\n  - name: z\n    tests: [y]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case cfg := <-reloaded:
		t.Errorf("unexpected reload for unrelated file: %+v", cfg.Categories)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchMissingFile(t *testing.T) {
	logger, _ := test.NewNullLogger()
	err := config.Watch(context.Background(), "does-not-exist.yaml", logger, func(*config.Config) {})
	if err == nil {
		t.Error("expected error watching a missing file")
	}
}
