// Package aggregate derives summary tables from salary records.
//
// Every function here is pure: it reads a Source, allocates a fresh Table
// and never keeps references to either. Empty input yields an empty table.
package aggregate

import (
	"fmt"

	"github.com/okian/paylens/internal/domain/model"
)

// Source is the read side of a record store.
type Source interface {
	Len() int
	At(i int) model.Record
}

// Kind identifies one of the five aggregation shapes.
type Kind string

// Aggregation kinds.
const (
	KindMeanByYear         Kind = "mean_by_year"
	KindTopMean            Kind = "top_mean"
	KindDistributionBySize Kind = "distribution_by_size"
	KindTopCount           Kind = "top_count"
	KindCountInOrder       Kind = "count_in_order"
)

// Entry is one (category, value) pair of a summary table.
type Entry struct {
	Category string `json:"category"`
	// Value is the group mean or count. Unused for distributions.
	Value float64 `json:"value"`
	// Count is the number of records in the group.
	Count int `json:"count"`
	// Values holds the salaries of the group, in store order, for
	// distributions only.
	Values []float64 `json:"values,omitempty"`
}

// Table is an ordered sequence of entries with unique categories.
type Table struct {
	Kind    Kind    `json:"kind"`
	Entries []Entry `json:"entries"`
}

// Len returns the number of entries.
func (t Table) Len() int { return len(t.Entries) }

// Empty reports whether the table has no entries.
func (t Table) Empty() bool { return len(t.Entries) == 0 }

// Categories returns the categories in table order.
func (t Table) Categories() []string {
	out := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		out[i] = e.Category
	}
	return out
}

// Spec parameterizes an aggregation. Field is ignored by the kinds that fix
// their grouping column; Limit <= 0 means no truncation.
type Spec struct {
	Kind  Kind        `json:"kind"`
	Field model.Field `json:"field,omitempty"`
	Limit int         `json:"limit,omitempty"`
}

// Validate reports specs that Run would reject.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindMeanByYear, KindDistributionBySize:
		return nil
	case KindTopMean, KindTopCount, KindCountInOrder:
		if !s.Field.Known() {
			return fmt.Errorf("%w: kind %s needs a groupable field, got %q", ErrInvalidSpec, s.Kind, s.Field)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, s.Kind)
	}
}

// Run dispatches spec to its aggregation. It panics on an invalid spec;
// callers validate specs when the catalog is built.
func Run(src Source, spec Spec) Table {
	if err := spec.Validate(); err != nil {
		panic("aggregate: " + err.Error())
	}
	switch spec.Kind {
	case KindMeanByYear:
		return MeanByYear(src)
	case KindTopMean:
		return TopMeanBy(src, spec.Field, spec.Limit)
	case KindDistributionBySize:
		return DistributionBySize(src)
	case KindTopCount:
		return TopCountBy(src, spec.Field, spec.Limit)
	default:
		return CountInOrder(src, spec.Field)
	}
}
