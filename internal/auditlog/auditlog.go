// Package auditlog appends executed statements to hour-bucketed log files.
//
// Files live at dir/YYYY/MM/DD/YYYY-MM-DD_HH.log and each entry is one line:
//
//	[YYYY-MM-DD HH:MM:SS] <statement>\r\n
//
// Every append holds an exclusive file lock so several processes can share
// one log directory.
package auditlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// Writer appends entries to the log directory.
// It is safe for concurrent use.
type Writer struct {
	dir string
	now func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock sets the time source used for file names and entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// New creates a Writer rooted at dir. The directory is created lazily.
func New(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the root log directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Path returns the log file that holds entries written at t.
func (w *Writer) Path(t time.Time) string {
	return filepath.Join(w.dir, t.Format("2006"), t.Format("01"), t.Format("02"),
		t.Format("2006-01-02_15")+".log")
}

// Write appends one entry for msg.
func (w *Writer) Write(msg string) error {
	now := w.now()
	path := w.Path(now)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking log file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	line := "[" + now.Format(time.DateTime) + "] " + msg + "\r\n"
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}
	return nil
}
