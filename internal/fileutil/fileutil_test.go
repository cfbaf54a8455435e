package fileutil

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var day = time.Date(2026, time.January, 25, 14, 3, 9, 0, time.UTC)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDatedName(t *testing.T) {
	if got := DatedName("project_report", day, ".html"); got != "project_report_2026-01-25.html" {
		t.Fatalf("DatedName = %q", got)
	}
}

func TestUniquePathVersions(t *testing.T) {
	dir := t.TempDir()
	name := DatedName("project_report", day, ".md")

	path, err := UniquePath(dir, name, 100, day)
	if err != nil {
		t.Fatalf("UniquePath: %v", err)
	}
	if filepath.Base(path) != "project_report_2026-01-25.md" {
		t.Fatalf("unexpected first path %q", path)
	}
	touch(t, path)

	path, err = UniquePath(dir, name, 100, day)
	if err != nil {
		t.Fatalf("UniquePath: %v", err)
	}
	if filepath.Base(path) != "project_report_2026-01-25_v2.md" {
		t.Fatalf("unexpected second path %q", path)
	}
	touch(t, path)

	path, err = UniquePath(dir, name, 100, day)
	if err != nil {
		t.Fatalf("UniquePath: %v", err)
	}
	if filepath.Base(path) != "project_report_2026-01-25_v3.md" {
		t.Fatalf("unexpected third path %q", path)
	}
}

func TestUniquePathFallsBackToClock(t *testing.T) {
	dir := t.TempDir()
	name := "report.html"
	touch(t, filepath.Join(dir, name))
	touch(t, filepath.Join(dir, "report_v2.html"))
	touch(t, filepath.Join(dir, "report_v3.html"))

	path, err := UniquePath(dir, name, 3, day)
	if err != nil {
		t.Fatalf("UniquePath: %v", err)
	}
	if filepath.Base(path) != "report_140309.html" {
		t.Fatalf("expected clock fallback, got %q", path)
	}
}

func TestOutputName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"board.md", "board.md"},
		{"Board.MD", "Board.MD"},
		{"board", "board.md"},
		{"../../tmp/evil.md", "evil.md"},
		{"q3:final", "q3-final.md"},
	}
	for _, tc := range cases {
		got, err := OutputName(tc.in, ".md")
		if err != nil {
			t.Fatalf("OutputName(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("OutputName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"..", "board.svg", "report.docx", "board.html"} {
		if _, err := OutputName(bad, ".md"); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("OutputName(%q): expected ErrInvalidName, got %v", bad, err)
		}
	}
}

func TestLockDirContextIsExclusive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	first, err := LockDirContext(context.Background(), dir)
	if err != nil {
		t.Fatalf("LockDirContext: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, lockFileName)); err != nil {
		t.Fatalf("expected lock file: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if _, err := LockDirContext(ctx, dir); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked after timeout, got %v", err)
	}

	cancelled, stop := context.WithCancel(context.Background())
	stop()
	if _, err := LockDirContext(cancelled, dir); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked for cancelled context, got %v", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	second, err := LockDirContext(context.Background(), dir)
	if err != nil {
		t.Fatalf("relock: %v", err)
	}
	_ = second.Unlock()

	var none *DirLock
	if err := none.Unlock(); err != nil {
		t.Fatalf("nil unlock: %v", err)
	}
}

func TestWriteAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	n, err := WriteAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "# Report\n")
		return err
	})
	if err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}
	if n != int64(len("# Report\n")) {
		t.Fatalf("expected byte count %d, got %d", len("# Report\n"), n)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "# Report\n" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestWriteAtomicKeepsOriginalOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.md")
	touch(t, path)

	boom := errors.New("render failed")
	_, err := WriteAtomic(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "x" {
		t.Fatalf("original file modified: %q", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".out.md") {
			t.Fatalf("temporary file left behind: %s", entry.Name())
		}
	}
}
