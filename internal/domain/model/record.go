// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"math"
	"strings"
)

// Record is one salary observation from the dataset.
// Fields mirror the required CSV columns.
type Record struct {
	WorkYear        int             // year the salary was paid
	JobTitle        string          // role held during the year
	SalaryInUSD     float64         // salary converted to USD
	CompanySize     CompanySize     // S, M or L
	CompanyLocation string          // country code of the employer
	ExperienceLevel ExperienceLevel // EN, MI, SE or EX
}

// Validate reports the first missing or out-of-range attribute.
func (r Record) Validate() error {
	switch {
	case strings.TrimSpace(r.JobTitle) == "":
		return errors.New("missing job_title")
	case r.CompanySize == "":
		return errors.New("missing company_size")
	case strings.TrimSpace(r.CompanyLocation) == "":
		return errors.New("missing company_location")
	case r.ExperienceLevel == "":
		return errors.New("missing experience_level")
	case r.SalaryInUSD < 0 || math.IsNaN(r.SalaryInUSD) || math.IsInf(r.SalaryInUSD, 0):
		return errors.New("salary_in_usd must be a non-negative number")
	}
	return nil
}

// CompanySize is the categorical employer size.
type CompanySize string

// Known company sizes, in canonical order.
const (
	SizeSmall  CompanySize = "S"
	SizeMedium CompanySize = "M"
	SizeLarge  CompanySize = "L"
)

// CanonicalSizes lists the known sizes in display order.
func CanonicalSizes() []CompanySize {
	return []CompanySize{SizeSmall, SizeMedium, SizeLarge}
}

// Label returns a human-readable name, or the raw code for unknown sizes.
func (s CompanySize) Label() string {
	switch s {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	default:
		return string(s)
	}
}

// ExperienceLevel is the categorical seniority of the employee.
type ExperienceLevel string

// Known experience levels.
const (
	LevelEntry     ExperienceLevel = "EN"
	LevelMid       ExperienceLevel = "MI"
	LevelSenior    ExperienceLevel = "SE"
	LevelExecutive ExperienceLevel = "EX"
)

// Label returns a human-readable name, or the raw code for unknown levels.
func (l ExperienceLevel) Label() string {
	switch l {
	case LevelEntry:
		return "Entry-level"
	case LevelMid:
		return "Mid-level"
	case LevelSenior:
		return "Senior"
	case LevelExecutive:
		return "Executive"
	default:
		return string(l)
	}
}
