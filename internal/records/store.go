package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// bom is written once at the start of the file so spreadsheet software
// detects UTF-8 and renders cyrillic text correctly.
const bom = "\ufeff"

var (
	// ErrUnknownField is returned when an upsert names a column that is not
	// part of the fixed schema. Unknown fields are rejected rather than
	// ignored: a typo'd name would otherwise silently lose candidate data.
	ErrUnknownField = errors.New("unknown record field")

	// ErrNotInitialized is returned when the backing file does not exist yet.
	ErrNotInitialized = errors.New("records file does not exist")
)

var knownColumns = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Columns))
	for _, c := range Columns {
		m[c] = struct{}{}
	}
	return m
}()

// Store persists candidate records to a single CSV file with a fixed,
// ordered schema. Every mutation rewrites the whole file (read-all, merge,
// write-all), so all operations are serialized behind one mutex. The store
// is not safe for multiple processes.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a store bound to the given file path. The file itself is
// created lazily by EnsureInitialized or the first Upsert.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Exists reports whether the backing file has been created.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// EnsureInitialized creates the backing file with the header row if it does
// not exist yet. Idempotent.
func (s *Store) EnsureInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ensureInitialized()
}

func (s *Store) ensureInitialized() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat records file %q: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating records directory %q: %w", dir, err)
		}
	}

	return s.writeAll(nil)
}

// Upsert merges the given fields into the record with the matching identity,
// or appends a new record seeded with the identity. Fields not named are left
// untouched; named fields overwrite. Field names outside the fixed schema are
// rejected with ErrUnknownField before anything is written.
func (s *Store) Upsert(id int64, fields Fields) error {
	for name := range fields {
		if _, ok := knownColumns[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureInitialized(); err != nil {
		return err
	}

	rows, err := s.readAll()
	if err != nil {
		return err
	}

	key := strconv.FormatInt(id, 10)
	updated := false
	for _, row := range rows {
		if row[FieldUserID] != key {
			continue
		}
		for name, value := range fields {
			row[name] = value
		}
		row[FieldUserID] = key
		updated = true
		break
	}

	if !updated {
		row := Record{FieldUserID: key}
		for name, value := range fields {
			row[name] = value
		}
		row[FieldUserID] = key
		rows = append(rows, row)
	}

	return s.writeAll(rows)
}

// ReadAll returns every record in file order. A missing file yields
// ErrNotInitialized; a corrupt file propagates the read error.
func (s *Store) ReadAll() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAll()
}

func (s *Store) readAll() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotInitialized, s.path)
		}
		return nil, fmt.Errorf("reading records file %q: %w", s.path, err)
	}

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), bom)))
	reader.FieldsPerRecord = -1

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing records file %q: %w", s.path, err)
	}

	if len(raw) == 0 {
		return nil, nil
	}

	header := raw[0]
	rows := make([]Record, 0, len(raw)-1)
	for _, line := range raw[1:] {
		row := make(Record, len(header))
		for i, name := range header {
			if i < len(line) {
				row[name] = line[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *Store) writeAll(rows []Record) error {
	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("writing records file %q: %w", s.path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(bom); err != nil {
		return fmt.Errorf("writing records file %q: %w", s.path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("writing records file %q: %w", s.path, err)
	}

	line := make([]string, len(Columns))
	for _, row := range rows {
		for i, name := range Columns {
			line[i] = row[name]
		}
		if err := writer.Write(line); err != nil {
			return fmt.Errorf("writing records file %q: %w", s.path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writing records file %q: %w", s.path, err)
	}

	return file.Close()
}
