// Package catalog declares the fixed set of reports the pipeline produces.
package catalog

import (
	"fmt"

	"github.com/okian/paylens/internal/domain/aggregate"
	"github.com/okian/paylens/internal/domain/model"
)

// ChartKind tells the render sink how to draw a summary table.
type ChartKind string

// Supported chart kinds.
const (
	ChartLine          ChartKind = "line"
	ChartBarHorizontal ChartKind = "bar-horizontal"
	ChartBox           ChartKind = "box"
	ChartPie           ChartKind = "pie"
)

// Known reports whether k is a supported chart kind.
func (k ChartKind) Known() bool {
	switch k {
	case ChartLine, ChartBarHorizontal, ChartBox, ChartPie:
		return true
	}
	return false
}

// USLocationCode is the company_location value the US-only report keeps.
const USLocationCode = "US"

// Default result sizes.
const (
	TopJobTitlesBySalary = 5
	TopCountries         = 10
	TopUSJobTitles       = 10
)

// Filter restricts a report to records whose Field equals Equals.
type Filter struct {
	Field  model.Field `json:"field"`
	Equals string      `json:"equals"`
}

// ReportSpec binds one aggregation to a chart kind and its labels.
type ReportSpec struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Subheader   string         `json:"subheader"`
	Aggregation aggregate.Spec `json:"aggregation"`
	Filter      *Filter        `json:"filter,omitempty"`
	Chart       ChartKind      `json:"chart"`
	XLabel      string         `json:"x_label,omitempty"`
	YLabel      string         `json:"y_label,omitempty"`
	Palette     string         `json:"palette,omitempty"`
}

// Predicate returns the record filter of the spec, or nil when the report
// covers the whole store.
func (s ReportSpec) Predicate() func(model.Record) bool {
	if s.Filter == nil {
		return nil
	}
	field, want := s.Filter.Field, s.Filter.Equals
	return func(r model.Record) bool { return field.Value(r) == want }
}

// Default returns the six dashboard reports in display order.
// Each call returns a fresh slice.
func Default() []ReportSpec {
	return []ReportSpec{
		{
			ID:          "avg-salary-by-year",
			Title:       "Average Salary Over Years",
			Subheader:   "Average Salary Over Years",
			Aggregation: aggregate.Spec{Kind: aggregate.KindMeanByYear},
			Chart:       ChartLine,
			XLabel:      "Year",
			YLabel:      "Average Salary (USD)",
		},
		{
			ID:          "top-job-titles-by-salary",
			Title:       "Top 5 Job Titles by Average Salary",
			Subheader:   "Top 5 Job Titles by Average Salary",
			Aggregation: aggregate.Spec{Kind: aggregate.KindTopMean, Field: model.FieldJobTitle, Limit: TopJobTitlesBySalary},
			Chart:       ChartBarHorizontal,
			XLabel:      "Average Salary (USD)",
			YLabel:      "Job Title",
			Palette:     "viridis",
		},
		{
			ID:          "salary-by-company-size",
			Title:       "Salary Distribution by Company Size",
			Subheader:   "Salary Distribution by Company Size",
			Aggregation: aggregate.Spec{Kind: aggregate.KindDistributionBySize},
			Chart:       ChartBox,
			XLabel:      "Company Size (S=Small, M=Medium, L=Large)",
			YLabel:      "Salary (USD)",
			Palette:     "Set2",
		},
		{
			ID:          "top-countries-by-jobs",
			Title:       "Top 10 Countries Offering Most Data Science Jobs",
			Subheader:   "Top 10 Countries Offering Most Jobs",
			Aggregation: aggregate.Spec{Kind: aggregate.KindTopCount, Field: model.FieldCompanyLocation, Limit: TopCountries},
			Chart:       ChartBarHorizontal,
			XLabel:      "Number of Jobs",
			YLabel:      "Country",
			Palette:     "mako",
		},
		{
			ID:          "top-job-titles-in-us",
			Title:       "Most Popular Data Science Job Titles in the US",
			Subheader:   "Most Popular Job Titles in the US",
			Aggregation: aggregate.Spec{Kind: aggregate.KindTopCount, Field: model.FieldJobTitle, Limit: TopUSJobTitles},
			Filter:      &Filter{Field: model.FieldCompanyLocation, Equals: USLocationCode},
			Chart:       ChartBarHorizontal,
			XLabel:      "Number of Jobs",
			YLabel:      "Job Title",
			Palette:     "coolwarm",
		},
		{
			ID:          "experience-level-breakdown",
			Title:       "Experience Level Breakdown",
			Subheader:   "Experience Level Breakdown",
			Aggregation: aggregate.Spec{Kind: aggregate.KindCountInOrder, Field: model.FieldExperienceLevel},
			Chart:       ChartPie,
		},
	}
}

// Validate checks that IDs are unique and non-empty and that every spec
// names a valid aggregation, filter field and chart kind.
func Validate(specs []ReportSpec) error {
	seen := make(map[string]struct{}, len(specs))
	for i, s := range specs {
		if s.ID == "" {
			return fmt.Errorf("%w: report %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate report id %q", ErrInvalidCatalog, s.ID)
		}
		seen[s.ID] = struct{}{}

		if err := s.Aggregation.Validate(); err != nil {
			return fmt.Errorf("%w: report %q: %w", ErrInvalidCatalog, s.ID, err)
		}
		if s.Filter != nil && !s.Filter.Field.Known() {
			return fmt.Errorf("%w: report %q filters on undeclared field %q", ErrInvalidCatalog, s.ID, s.Filter.Field)
		}
		if !s.Chart.Known() {
			return fmt.Errorf("%w: report %q has unknown chart kind %q", ErrInvalidCatalog, s.ID, s.Chart)
		}
	}
	return nil
}

// ByID returns the spec with the given id.
func ByID(specs []ReportSpec, id string) (ReportSpec, bool) {
	for _, s := range specs {
		if s.ID == id {
			return s, true
		}
	}
	return ReportSpec{}, false
}
