package fileutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"

	"rpt/internal/textutil"
)

// ErrLocked is returned when another process holds the reports directory lock.
var ErrLocked = errors.New("reports directory is locked by another process")

// ErrInvalidName is returned when a custom output name sanitizes to nothing.
var ErrInvalidName = errors.New("invalid output file name")

const (
	lockFileName = ".rpt.lock"
	dateLayout   = "2006-01-02"
	clockLayout  = "150405"
	lockRetry    = 100 * time.Millisecond
)

// DatedName returns prefix_YYYY-MM-DD.ext for the given day. ext includes the dot.
func DatedName(prefix string, day time.Time, ext string) string {
	return fmt.Sprintf("%s_%s%s", prefix, day.Format(dateLayout), ext)
}

// OutputName sanitizes a user-supplied file name and appends ext when the
// name carries no extension. A different extension is rejected so content
// never lands in a file whose suffix names another format. The result is a
// bare file name.
func OutputName(name, ext string) (string, error) {
	clean := textutil.SanitizeFileName(filepath.Base(strings.TrimSpace(name)))
	if clean == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	switch got := filepath.Ext(clean); {
	case got == "":
		clean += ext
	case !strings.EqualFold(got, ext):
		return "", fmt.Errorf("%w: %q ends in %s, expected %s", ErrInvalidName, name, got, ext)
	}
	return clean, nil
}

// UniquePath returns dir/name when free. Otherwise it tries stem_v2 through
// stem_vN and finally falls back to stem_HHMMSS taken from now.
func UniquePath(dir, name string, maxVersions int, now time.Time) (string, error) {
	candidate := filepath.Join(dir, name)
	exists, err := pathExists(candidate)
	if err != nil || !exists {
		return candidate, err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for version := 2; version <= maxVersions; version++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_v%d%s", stem, version, ext))
		exists, err = pathExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, now.Format(clockLayout), ext)), nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}

// DirLock is an exclusive advisory lock on a directory.
type DirLock struct {
	path string
	lock *flock.Flock
}

// LockDirContext waits for the directory lock until ctx is done.
func LockDirContext(ctx context.Context, dir string) (*DirLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	l := newDirLock(dir)
	ok, err := l.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrLocked, ctx.Err())
		}
		return nil, fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return l, nil
}

func newDirLock(dir string) *DirLock {
	path := filepath.Join(dir, lockFileName)
	return &DirLock{path: path, lock: flock.New(path)}
}

// Unlock releases the lock. Safe to call on a nil lock.
func (l *DirLock) Unlock() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

// WriteAtomic streams content produced by write into path. Readers never see
// a partially written file: data is synced and renamed into place only when
// write succeeds. Returns the number of bytes written.
func WriteAtomic(path string, write func(io.Writer) error) (int64, error) {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return 0, fmt.Errorf("create pending file %s: %w", path, err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	counter := &countingWriter{w: pending}
	if err := write(counter); err != nil {
		return 0, err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return 0, fmt.Errorf("replace %s: %w", path, err)
	}
	return counter.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
