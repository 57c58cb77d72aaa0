package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	logFilePrefix   = "ai-service-"
	logFileSuffix   = ".log"
	maxSequence     = 100
	cleanupInterval = 24 * time.Hour
)

// RotatingWriter writes to one log file per ISO week, starting a numbered
// sibling file when the size limit would be exceeded. Files older than the
// retention period are removed once a day.
type RotatingWriter struct {
	dir       string
	retention time.Duration
	maxSize   int64 // zero means unlimited
	now       func() time.Time

	mu   sync.Mutex
	file *os.File
	week string
	size int64

	stop      chan struct{}
	done      chan struct{}
	started   bool
	closeOnce sync.Once
}

// NewRotatingWriter opens the current week's file in dir, creating dir if needed
func NewRotatingWriter(dir string, retentionWeeks int, maxSize int64) (*RotatingWriter, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	w := newRotatingWriter(dir, retentionWeeks, maxSize, time.Now)
	w.mu.Lock()
	err := w.openLocked(weekKey(w.now()), 0)
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	w.started = true
	go w.janitor()
	return w, nil
}

func newRotatingWriter(dir string, retentionWeeks int, maxSize int64, now func() time.Time) *RotatingWriter {
	return &RotatingWriter{
		dir:       dir,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxSize:   maxSize,
		now:       now,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// weekKey formats t as YYYY-Www using the ISO week
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (w *RotatingWriter) fileName(week string, seq int) string {
	if seq == 0 {
		return logFilePrefix + week + logFileSuffix
	}
	return fmt.Sprintf("%s%s_%02d%s", logFilePrefix, week, seq, logFileSuffix)
}

// openLocked switches to the first file of week that can take need more bytes.
// Caller must hold w.mu.
func (w *RotatingWriter) openLocked(week string, need int64) error {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
		w.file = nil
	}

	for seq := 0; seq < maxSequence; seq++ {
		path := filepath.Join(w.dir, w.fileName(week, seq))

		var size int64
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
			if w.maxSize > 0 && size > 0 && size+need > w.maxSize {
				continue
			}
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		w.file, w.week, w.size = f, week, size
		return nil
	}
	return fmt.Errorf("too many log files for week %s", week)
}

// Write implements io.Writer
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	week := weekKey(w.now())
	full := w.maxSize > 0 && w.size > 0 && w.size+int64(len(p)) > w.maxSize
	if w.file == nil || week != w.week || full {
		if err := w.openLocked(week, int64(len(p))); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// cleanup removes log files last modified before the retention cutoff
func (w *RotatingWriter) cleanup() (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	w.mu.Lock()
	current := ""
	if w.file != nil {
		current = filepath.Base(w.file.Name())
	}
	w.mu.Unlock()

	cutoff := w.now().Add(-w.retention)
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == current || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, logFileSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(w.dir, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}

func (w *RotatingWriter) janitor() {
	defer close(w.done)

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			// Console only, logging here would write back into this file
			if _, err := w.cleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "log cleanup failed: %v\n", err)
			}
		}
	}
}

// Close stops the cleanup goroutine and closes the current file
func (w *RotatingWriter) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stop)
		if w.started {
			<-w.done
		}

		w.mu.Lock()
		defer w.mu.Unlock()
		if w.file != nil {
			err = w.file.Close()
			w.file = nil
		}
	})
	return err
}
