package pegawai

import (
	"errors"
	"strings"
	"sync"

	"simpeg/internal/tabular"
)

var (
	// ErrNotFound reports an edit or delete whose target NIP matched no row.
	ErrNotFound = errors.New("pegawai not found")
	// ErrIncomplete reports an appended record without NAMA or NIP.
	ErrIncomplete = errors.New("NAMA and NIP are required")
)

// SchemaError rejects an upload whose header set is missing expected columns.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "upload is missing required columns: " + strings.Join(e.Missing, ", ")
}

// Store holds the employee table in memory. It is constructed once at process
// start and shared by every session; the lock keeps concurrent handlers
// memory-safe while preserving last-writer-wins semantics. Nothing is ever
// written to disk except through an explicit export.
type Store struct {
	mu   sync.RWMutex
	rows []Record
}

func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps the whole table for the uploaded one. The upload must
// carry at least every expected column (extra columns are dropped); on a
// SchemaError the store is left untouched. Returns the imported row count.
func (s *Store) ReplaceAll(table tabular.Table) (int, error) {
	if missing := tabular.MissingColumns(table.Headers, Columns()); len(missing) > 0 {
		return 0, &SchemaError{Missing: missing}
	}

	index := map[string]int{}
	for i, h := range table.Headers {
		index[tabular.NormalizeHeader(h)] = i
	}

	rows := make([]Record, 0, len(table.Rows))
	for _, raw := range table.Rows {
		var rec Record
		for _, name := range Columns() {
			if idx, ok := index[name]; ok && idx < len(raw) {
				rec.SetValue(name, raw[idx])
			}
		}
		rows = append(rows, rec)
	}

	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
	return len(rows), nil
}

// Append adds a record at the end of the table. NAMA and NIP must be set;
// every other field defaults to the empty string.
func (s *Store) Append(rec Record) error {
	if strings.TrimSpace(rec.Nama) == "" || strings.TrimSpace(rec.NIP) == "" {
		return ErrIncomplete
	}
	s.mu.Lock()
	s.rows = append(s.rows, rec)
	s.mu.Unlock()
	return nil
}

// FindByNIP returns every row whose NIP matches exactly. Uniqueness is not
// enforced, so more than one row may come back.
func (s *Store) FindByNIP(nip string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Record
	for _, rec := range s.rows {
		if rec.NIP == nip {
			out = append(out, rec)
		}
	}
	return out
}

// IndexByNIP returns the position of the first row matching the NIP. Edits
// deliberately touch only the first match.
func (s *Store) IndexByNIP(nip string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, rec := range s.rows {
		if rec.NIP == nip {
			return i, true
		}
	}
	return 0, false
}

// UpdateFields overwrites the named columns of the row at the given position.
// Unknown column names are ignored.
func (s *Store) UpdateFields(index int, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rows) {
		return ErrNotFound
	}
	for name, value := range fields {
		s.rows[index].SetValue(tabular.NormalizeHeader(name), value)
	}
	return nil
}

// DeleteByNIP removes every row matching the NIP and reports how many went.
// Deleting an absent NIP removes nothing and is not an error.
func (s *Store) DeleteByNIP(nip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	removed := 0
	for _, rec := range s.rows {
		if rec.NIP == nip {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.rows = kept
	return removed
}

// Clear drops every row while keeping the schema.
func (s *Store) Clear() {
	s.mu.Lock()
	s.rows = nil
	s.mu.Unlock()
}

// Snapshot copies the current table for read-only work such as reports.
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.rows))
	copy(out, s.rows)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
