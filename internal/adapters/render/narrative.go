package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/okian/paylens/internal/domain/aggregate"
	"github.com/okian/paylens/internal/domain/catalog"
	"github.com/okian/paylens/internal/domain/model"
)

// EmptyNarrative annotates reports whose table has no entries.
const EmptyNarrative = "No records matched this report."

// Narrative returns a one-sentence annotation of the table.
func Narrative(spec catalog.ReportSpec, table aggregate.Table) string {
	if table.Empty() {
		return EmptyNarrative
	}
	entries := table.Entries

	switch table.Kind {
	case aggregate.KindMeanByYear:
		first, last := entries[0], entries[len(entries)-1]
		if len(entries) == 1 {
			return fmt.Sprintf("Average salary was %s in %s.", usd(first.Value), first.Category)
		}
		return fmt.Sprintf("Average salary moved from %s in %s to %s in %s.",
			usd(first.Value), first.Category, usd(last.Value), last.Category)

	case aggregate.KindTopMean:
		top := entries[0]
		return fmt.Sprintf("%s leads with an average of %s across %s.",
			top.Category, usd(top.Value), plural(top.Count, "record"))

	case aggregate.KindDistributionBySize:
		parts := make([]string, 0, len(entries))
		for _, e := range entries {
			box := Summarize(e.Category, e.Values)
			parts = append(parts, fmt.Sprintf("%s for %s", usd(box.Median), sizeName(e.Category)))
		}
		return "Median salary is " + strings.Join(parts, ", ") + "."

	case aggregate.KindTopCount:
		top := entries[0]
		return fmt.Sprintf("%s leads with %s.", top.Category, plural(top.Count, "job"))

	default:
		var total int
		top := entries[0]
		for _, e := range entries {
			total += e.Count
			if e.Count > top.Count {
				top = e
			}
		}
		share := 100 * float64(top.Count) / float64(total)
		return fmt.Sprintf("%s is the largest group with %.1f%% of %s.",
			categoryName(spec, top.Category), share, plural(total, "record"))
	}
}

func usd(v float64) string {
	return "$" + humanize.FormatFloat("#,###.", v)
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return humanize.Comma(int64(n)) + " " + unit + "s"
}

func sizeName(code string) string {
	label := model.CompanySize(code).Label()
	if label == code {
		return code
	}
	return fmt.Sprintf("%s (%s)", label, code)
}

func categoryName(spec catalog.ReportSpec, category string) string {
	if spec.Aggregation.Field == model.FieldExperienceLevel {
		return model.ExperienceLevel(category).Label()
	}
	return category
}
