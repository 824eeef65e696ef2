// Package repository holds the in-memory record store loaded from a dataset.
package repository

import (
	"github.com/okian/paylens/internal/domain/model"
)

// Predicate selects records for a filtered store.
type Predicate func(model.Record) bool

// Store is an ordered, immutable sequence of records.
// A Store is safe for concurrent reads; nothing mutates it after load.
type Store struct {
	source  string
	records []model.Record
}

// NewStore builds a store over a copy of records. Intended for callers that
// already hold validated records (tests, generators).
func NewStore(source string, records []model.Record) *Store {
	cp := make([]model.Record, len(records))
	copy(cp, records)
	return &Store{source: source, records: cp}
}

// Len returns the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// At returns the i-th record in load order.
func (s *Store) At(i int) model.Record { return s.records[i] }

// Records returns a copy of all records in load order.
func (s *Store) Records() []model.Record {
	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Source names where the records came from.
func (s *Store) Source() string { return s.source }

// Filter returns a new store with the records matching pred, in their
// original relative order. The receiver is left untouched.
// A nil predicate keeps every record.
func (s *Store) Filter(pred Predicate) *Store {
	if pred == nil {
		return NewStore(s.source, s.records)
	}
	out := make([]model.Record, 0, len(s.records))
	for _, r := range s.records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return &Store{source: s.source, records: out}
}

// WhereEquals matches records whose field equals value exactly.
func WhereEquals(field model.Field, value string) Predicate {
	if !field.Known() {
		panic("repository: filter on undeclared field " + string(field))
	}
	return func(r model.Record) bool {
		return field.Value(r) == value
	}
}
