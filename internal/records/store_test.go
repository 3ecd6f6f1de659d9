package records

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data", "analytics.csv"))
}

func findRow(t *testing.T, s *Store, id string) Record {
	t.Helper()

	rows, err := s.ReadAll()
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	for _, row := range rows {
		if row[FieldUserID] == id {
			return row
		}
	}
	t.Fatalf("no row with id %s", id)
	return nil
}

func TestEnsureInitializedIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	for i := 0; i < 2; i++ {
		if err := s.EnsureInitialized(); err != nil {
			t.Fatalf("ensure #%d: %v", i+1, err)
		}
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}

	content := strings.TrimPrefix(string(data), "\ufeff")
	if len(content) == len(data) {
		t.Fatalf("expected UTF-8 BOM at the start of the file")
	}

	header := strings.TrimSpace(content)
	if header != strings.Join(Columns, ",") {
		t.Fatalf("unexpected header: %q", header)
	}
}

func TestUpsertCreatesOneRowPerIdentity(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	writes := []struct {
		id     int64
		fields Fields
	}{
		{42, Fields{FieldStatus: StatusNew, FieldFullName: "Анна Иванова"}},
		{42, Fields{FieldVacancy: "Engineer", FieldStatus: StatusReviewing}},
		{7, Fields{FieldStatus: StatusNew}},
		{42, Fields{FieldImportant: "рост и команда"}},
	}

	for _, w := range writes {
		if err := s.Upsert(w.id, w.fields); err != nil {
			t.Fatalf("upsert %d: %v", w.id, err)
		}
	}

	rows, err := s.ReadAll()
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	row := findRow(t, s, "42")
	// Each field reflects the last write for that field independently.
	if row[FieldFullName] != "Анна Иванова" {
		t.Fatalf("full_name lost by later partial updates: %q", row[FieldFullName])
	}
	if row[FieldStatus] != StatusReviewing {
		t.Fatalf("expected status %q, got %q", StatusReviewing, row[FieldStatus])
	}
	if row[FieldVacancy] != "Engineer" {
		t.Fatalf("expected vacancy Engineer, got %q", row[FieldVacancy])
	}
	if row[FieldImportant] != "рост и команда" {
		t.Fatalf("expected important answer, got %q", row[FieldImportant])
	}
}

func TestUpsertRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	err := s.Upsert(1, Fields{"salary": "100"})
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}

	// Nothing may be written on a rejected upsert.
	if s.Exists() {
		rows, err := s.ReadAll()
		if err != nil {
			t.Fatalf("reading rows: %v", err)
		}
		if len(rows) != 0 {
			t.Fatalf("expected no rows, got %d", len(rows))
		}
	}
}

func TestReadAllMissingFile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if _, err := s.ReadAll(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestRoundTripPreservesNonASCIIAndSeparators(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	fields := Fields{
		FieldFullName:      "Пётр \"Петя\" Сидоров",
		FieldImportant:     "зарплата, рост,\nи гибкий график",
		FieldStatus:        StatusInvited,
		FieldInterviewDate: "15.01.2026 14:00",
	}
	if err := s.Upsert(42, fields); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// A later unrelated write forces a full re-read and rewrite.
	if err := s.Upsert(7, Fields{FieldStatus: StatusNew}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	row := findRow(t, s, "42")
	for name, want := range fields {
		if row[name] != want {
			t.Fatalf("field %s: expected %q, got %q", name, want, row[name])
		}
	}
}
