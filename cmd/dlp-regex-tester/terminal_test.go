package main

import (
	"bytes"
	"os"
	"runtime"
	"testing"

	"github.com/creack/pty"

	"github.com/Veraticus/dlp-regex-tester/pkg/config"
	"github.com/Veraticus/dlp-regex-tester/pkg/highlight"
)

func openPTY(t *testing.T) *os.File {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("PTY tests require Unix environment")
	}
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("failed to open pty: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})
	return tty
}

func TestIsColorTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	tty := openPTY(t)
	if !isColorTerminal(tty) {
		t.Error("expected pty to be detected as a terminal")
	}

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer func() {
		_ = r.Close()
		_ = w.Close()
	}()
	if isColorTerminal(w) {
		t.Error("expected pipe not to be detected as a terminal")
	}

	if isColorTerminal(&bytes.Buffer{}) {
		t.Error("expected buffer not to be detected as a terminal")
	}
}

func TestIsColorTerminal_NoColor(t *testing.T) {
	tty := openPTY(t)
	t.Setenv("NO_COLOR", "1")

	if isColorTerminal(tty) {
		t.Error("expected NO_COLOR to disable color on a terminal")
	}
}

func TestNewDependencies_ColorAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	tty := openPTY(t)

	cfg := config.DefaultConfig()
	cfg.Color = config.ColorAuto

	deps, err := NewDependencies(cfg, nil, tty, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deps.Markers != highlight.DefaultMarkers {
		t.Errorf("expected ANSI markers on a terminal but got %q", deps.Markers)
	}

	deps, err = NewDependencies(cfg, nil, &bytes.Buffer{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deps.Markers != (highlight.Markers{Start: "[[", End: "]]"}) {
		t.Errorf("expected bracket markers off a terminal but got %q", deps.Markers)
	}
}
