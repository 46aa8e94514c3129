package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "versedrop.log")

	cleanup, err := Setup(path, true)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if Path() != path {
		t.Fatalf("Path() = %q, want %q", Path(), path)
	}

	L().Info("test.event", "key", "value")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"logger.initialized", "test.event", `"key":"value"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("log file missing %q:\n%s", want, data)
		}
	}
	if Path() != "" {
		t.Fatalf("Path() after cleanup = %q, want empty", Path())
	}
}

func TestSetupFailureFallsBackToDiscard(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	cleanup, err := Setup(filepath.Join(blocker, "versedrop.log"), false)
	if err == nil {
		t.Fatal("expected error when the log directory cannot be created")
	}
	if cleanup == nil {
		t.Fatal("cleanup must be callable even after a failed setup")
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Fatalf("cleanup: %v", err)
		}
	}()

	// Must not panic with the discard logger installed.
	L().Info("dropped.event")
	if Path() != "" {
		t.Fatalf("Path() = %q, want empty after failed setup", Path())
	}
}
