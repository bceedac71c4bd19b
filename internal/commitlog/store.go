package commitlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrLogNotFound is returned by Load when the commit log does not exist.
var ErrLogNotFound = errors.New("commit log not found")

// DefaultPath is the commit log location relative to the repository root.
const DefaultPath = "commitLog.json"

// Store reads and writes the persisted commit log at Path.
type Store struct {
	Path string
}

// NewStore creates a store for the given path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load reads the persisted log. A missing file yields ErrLogNotFound
// (which also matches fs.ErrNotExist).
func (s *Store) Load() ([]Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrLogNotFound, s.Path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("opening commit log: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// LoadOrEmpty reads the persisted log, treating a missing file as an empty log.
func (s *Store) LoadOrEmpty() ([]Record, error) {
	records, err := s.Load()
	if errors.Is(err, ErrLogNotFound) {
		return nil, nil
	}
	return records, err
}

// Save writes records atomically: the previous file is left untouched
// unless the complete new document has been written.
func (s *Store) Save(records []Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	return WriteFileAtomic(s.Path, data)
}

// MergeAndSave merges newRecords in front of the persisted log and writes the result.
func (s *Store) MergeAndSave(newRecords []Record) ([]Record, error) {
	existing, err := s.LoadOrEmpty()
	if err != nil {
		return nil, err
	}

	merged := Merge(newRecords, existing)
	if err := s.Save(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Merge places newRecords before existing and drops later duplicates by hash,
// so a freshly fetched record replaces a stale persisted copy.
func Merge(newRecords, existing []Record) []Record {
	merged := make([]Record, 0, len(newRecords)+len(existing))
	seen := make(map[string]bool, len(newRecords)+len(existing))

	for _, batch := range [][]Record{newRecords, existing} {
		for _, r := range batch {
			if seen[r.Hash] {
				continue
			}
			seen[r.Hash] = true
			merged = append(merged, r)
		}
	}
	return merged
}

// Encode renders records as a tab-indented JSON array with a trailing newline.
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "\t")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding commit log: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads a JSON array of records.
func Decode(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing commit log: %w", err)
	}
	return records, nil
}

// WriteFileAtomic writes data to path using temp file + rename pattern.
// The temp file lives next to path so the rename never crosses filesystems.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
