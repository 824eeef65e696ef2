package model

import "strconv"

// Field names a groupable record column. Values match the CSV header.
type Field string

// Groupable fields.
const (
	FieldWorkYear        Field = "work_year"
	FieldJobTitle        Field = "job_title"
	FieldCompanySize     Field = "company_size"
	FieldCompanyLocation Field = "company_location"
	FieldExperienceLevel Field = "experience_level"
)

// Columns lists every column a dataset must provide, in header order.
var Columns = []string{
	string(FieldWorkYear),
	string(FieldJobTitle),
	ColumnSalaryInUSD,
	string(FieldCompanySize),
	string(FieldCompanyLocation),
	string(FieldExperienceLevel),
}

// ColumnSalaryInUSD is the measure column. It is not a grouping key.
const ColumnSalaryInUSD = "salary_in_usd"

// Known reports whether f is a declared groupable field.
func (f Field) Known() bool {
	switch f {
	case FieldWorkYear, FieldJobTitle, FieldCompanySize, FieldCompanyLocation, FieldExperienceLevel:
		return true
	}
	return false
}

// Value extracts the grouping key of f from r.
// It panics on an undeclared field; callers validate fields up front.
func (f Field) Value(r Record) string {
	switch f {
	case FieldWorkYear:
		return strconv.Itoa(r.WorkYear)
	case FieldJobTitle:
		return r.JobTitle
	case FieldCompanySize:
		return string(r.CompanySize)
	case FieldCompanyLocation:
		return r.CompanyLocation
	case FieldExperienceLevel:
		return string(r.ExperienceLevel)
	}
	panic("model: undeclared field " + strconv.Quote(string(f)))
}
