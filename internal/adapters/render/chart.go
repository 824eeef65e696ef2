package render

import (
	"math"
	"slices"

	"github.com/okian/paylens/internal/domain/aggregate"
	"github.com/okian/paylens/internal/domain/catalog"
)

// Default color palette for chart series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Chart is a renderer-neutral description of one chart.
type Chart struct {
	Kind       catalog.ChartKind `json:"kind"`
	Title      string            `json:"title"`
	XAxis      string            `json:"x_axis,omitempty"`
	YAxis      string            `json:"y_axis,omitempty"`
	Palette    string            `json:"palette,omitempty"`
	ShowLegend bool              `json:"show_legend"`
	ShowGrid   bool              `json:"show_grid"`
	Series     []Series          `json:"series"`
	Colors     []string          `json:"colors"`
	Boxes      []BoxSummary      `json:"boxes,omitempty"`
}

// Series is a named sequence of points.
type Series struct {
	Name string  `json:"name"`
	Data []Point `json:"data"`
}

// Point is one labelled value. Share is the fraction of the total and is
// only set on pie charts.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Share float64 `json:"share,omitempty"`
}

// BoxSummary is the five-number summary of one distribution group.
type BoxSummary struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// BuildChart produces the chart description of a table. The table is only
// read; box summaries are computed on sorted copies.
func BuildChart(spec catalog.ReportSpec, table aggregate.Table) Chart {
	chart := Chart{
		Kind:       spec.Chart,
		Title:      spec.Title,
		XAxis:      spec.XLabel,
		YAxis:      spec.YLabel,
		Palette:    spec.Palette,
		ShowLegend: spec.Chart == catalog.ChartPie,
		ShowGrid:   spec.Chart != catalog.ChartPie,
	}

	points := make([]Point, 0, table.Len())
	switch spec.Chart {
	case catalog.ChartBox:
		chart.Boxes = make([]BoxSummary, 0, table.Len())
		for _, e := range table.Entries {
			box := Summarize(e.Category, e.Values)
			chart.Boxes = append(chart.Boxes, box)
			points = append(points, Point{Label: e.Category, Value: roundTo2(box.Median)})
		}
	case catalog.ChartPie:
		var total float64
		for _, e := range table.Entries {
			total += e.Value
		}
		for _, e := range table.Entries {
			p := Point{Label: e.Category, Value: roundTo2(e.Value)}
			if total > 0 {
				p.Share = e.Value / total
			}
			points = append(points, p)
		}
	default:
		for _, e := range table.Entries {
			points = append(points, Point{Label: e.Category, Value: roundTo2(e.Value)})
		}
	}

	chart.Series = []Series{{Name: seriesName(spec), Data: points}}
	chart.Colors = assignColors(len(points))
	return chart
}

// Summarize computes the five-number summary of values using linear
// interpolation between closest ranks. values is not modified.
func Summarize(label string, values []float64) BoxSummary {
	box := BoxSummary{Label: label, Count: len(values)}
	if len(values) == 0 {
		return box
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	box.Min = sorted[0]
	box.Q1 = quantile(sorted, 0.25)
	box.Median = quantile(sorted, 0.5)
	box.Q3 = quantile(sorted, 0.75)
	box.Max = sorted[len(sorted)-1]
	return box
}

// quantile expects sorted, non-empty input.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func seriesName(spec catalog.ReportSpec) string {
	if spec.YLabel != "" && spec.Chart != catalog.ChartBarHorizontal {
		return spec.YLabel
	}
	if spec.XLabel != "" {
		return spec.XLabel
	}
	if spec.Title != "" {
		return spec.Title
	}
	return "Value"
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := range colors {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
