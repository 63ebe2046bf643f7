// Package recorder writes session events as hourly-rotated, zstd-compressed
// JSON lines and reads them back.
package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tui-craft/internal/core"
)

// Entry is one line of an event log.
type Entry struct {
	Time time.Time `json:"time"`
	Mode string    `json:"mode"`
	core.Event
}

// Writer appends entries to <dir>/<prefix>-YYYY-MM-DD-HH.jsonl.zst,
// starting a new file when the UTC hour changes. Safe for concurrent use.
type Writer struct {
	baseDir string
	prefix  string
	mode    string
	clock   func() time.Time

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

// NewWriter creates a writer for events of mode. Files are created lazily
// on the first Record. A nil clock uses time.Now.
func NewWriter(dir, mode string, clock func() time.Time) *Writer {
	if clock == nil {
		clock = time.Now
	}
	return &Writer{
		baseDir: dir,
		prefix:  "events",
		mode:    mode,
		clock:   clock,
	}
}

// Record implements core.EventSink.
func (w *Writer) Record(ev core.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock().UTC()
	hour := now.Format("2006-01-02-15")
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return fmt.Errorf("recorder: rotate: %w", err)
		}
	}

	b, err := json.Marshal(Entry{Time: now, Mode: w.mode, Event: ev})
	if err != nil {
		return fmt.Errorf("recorder: encode: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("recorder: write: %w", err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("recorder: write: %w", err)
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("recorder: flush: %w", err)
	}
	// Ends the current block so readers of a live file see every entry.
	if err := w.enc.Flush(); err != nil {
		return fmt.Errorf("recorder: flush: %w", err)
	}
	return nil
}

// Close finishes the current file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.pathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curHour = hour
	return nil
}

func (w *Writer) closeLocked() error {
	var err error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.curHour = ""
	return err
}

func (w *Writer) pathForHour(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}
