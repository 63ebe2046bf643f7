package recorder

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/tui-craft/internal/core"
)

// ReadFile decodes every entry of one log file. Appended zstd frames
// from reopened hours are read in order, and a frame still being written
// yields the entries flushed so far.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var out []Entry
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("recorder: %s: unmarshal: %w", filepath.Base(path), err)
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("recorder: %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// Files lists the event logs in dir, oldest first.
func Files(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}
	var names []string
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "events-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]string, len(names))
	for i, name := range names {
		out[i] = filepath.Join(dir, name)
	}
	return out, nil
}

// Read decodes path, or every log inside it when path is a directory.
func Read(path string) ([]Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}
	if !info.IsDir() {
		return ReadFile(path)
	}

	files, err := Files(path)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, f := range files {
		entries, err := ReadFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	return out, nil
}

// Summary aggregates a log.
type Summary struct {
	Entries int
	Worlds  int // Distinct seeds
	First   time.Time
	Last    time.Time
	ByType  map[core.EventType]int
	Built   map[string]int // Items placed, by kind
	Dug     map[string]int // Cells destroyed, by kind
}

// Summarize counts entries by type and item.
func Summarize(entries []Entry) Summary {
	s := Summary{
		Entries: len(entries),
		ByType:  make(map[core.EventType]int),
		Built:   make(map[string]int),
		Dug:     make(map[string]int),
	}
	seeds := make(map[int64]struct{})
	for i, e := range entries {
		if i == 0 || e.Time.Before(s.First) {
			s.First = e.Time
		}
		if e.Time.After(s.Last) {
			s.Last = e.Time
		}
		seeds[e.Seed] = struct{}{}
		s.ByType[e.Type]++
		switch e.Type {
		case core.EventBuild:
			s.Built[e.Item]++
		case core.EventDig:
			s.Dug[e.Item]++
		}
	}
	s.Worlds = len(seeds)
	return s
}
