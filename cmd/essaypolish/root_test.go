package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sant0-9/essaypolish/internal/config"
)

func TestRootOptionsCloseLogFile(t *testing.T) {
	dir := t.TempDir()
	config.SetPath(filepath.Join(dir, "config.yaml"))
	t.Cleanup(func() { config.SetPath("") })

	f, err := openLogFile()
	if err != nil {
		t.Fatalf("openLogFile() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "essaypolish.log")); err != nil {
		t.Fatalf("log file not created: %v", err)
	}

	opts := &rootOptions{logFile: f}
	if err := opts.close(); err != nil {
		t.Fatalf("close() error: %v", err)
	}
	if _, err := f.WriteString("late entry"); err == nil {
		t.Error("log file should be closed")
	}
	if err := opts.close(); err != nil {
		t.Errorf("second close() = %v, want nil", err)
	}
}
