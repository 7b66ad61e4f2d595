package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

const (
	UsersFile       = "users.json"
	LecturersFile   = "lecturers.json"
	EvaluationsFile = "evaluations.json"
)

var (
	_ store.UsersStore       = (*Store)(nil)
	_ store.LecturersStore   = (*Store)(nil)
	_ store.EvaluationsStore = (*Store)(nil)
	_ store.HealthStore      = (*Store)(nil)
)

// Store implements every store interface on JSON files in one directory
type Store struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

// New creates a Store rooted at dir on fs
func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Dir returns the directory holding the JSON files
func (s *Store) Dir() string {
	return s.dir
}

// EnsureFiles creates the data directory and any missing file as an empty array
func (s *Store) EnsureFiles() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", s.dir, err)
	}
	for _, name := range []string{UsersFile, LecturersFile, EvaluationsFile} {
		exists, err := afero.Exists(s.fs, s.path(name))
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := writeRecords(s, name, []struct{}{}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readRecords loads one file. A missing file reads as an empty collection.
func readRecords[T any](s *Store, name string) ([]T, error) {
	data, err := afero.ReadFile(s.fs, s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	records := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// writeRecords replaces one file with the indented JSON encoding of records.
// The layout is 4-space indentation, ASCII only and no trailing newline, the
// same bytes Python's json.dump(records, f, indent=4) writes.
func writeRecords[T any](s *Store, name string, records []T) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	data := escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))

	tmp := s.path(name + ".tmp")
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := s.fs.Rename(tmp, s.path(name)); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// escapeNonASCII rewrites every rune outside printable ASCII as \uXXXX,
// using a surrogate pair above the BMP. Encoded JSON only carries such runes
// inside strings, so the document stays equivalent.
func escapeNonASCII(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		switch {
		case r < utf8.RuneSelf && r != 0x7f:
			out = append(out, data[0])
		case r < 0x10000:
			out = fmt.Appendf(out, "\\u%04x", r)
		default:
			r1, r2 := utf16.EncodeRune(r)
			out = fmt.Appendf(out, "\\u%04x\\u%04x", r1, r2)
		}
		data = data[size:]
	}
	return out
}

func window[T any](records []T, page store.Page) []T {
	start, end := page.Apply(len(records))
	return records[start:end]
}

// CheckConnectivity verifies the data directory is reachable
func (s *Store) CheckConnectivity(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := s.fs.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}
