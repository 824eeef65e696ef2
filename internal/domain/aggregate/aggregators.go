package aggregate

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/okian/paylens/internal/domain/model"
)

// group accumulates the records sharing one key.
type group struct {
	key    string
	count  int
	sum    float64
	values []float64
}

func (g *group) mean() float64 { return g.sum / float64(g.count) }

// groupBy buckets src by field, returning groups in first-seen order.
// Sums run left to right in store order so results are reproducible.
func groupBy(src Source, field model.Field, keepValues bool) []*group {
	index := make(map[string]*group)
	var order []*group

	for i := 0; i < src.Len(); i++ {
		r := src.At(i)
		key := field.Value(r)
		g, ok := index[key]
		if !ok {
			g = &group{key: key}
			index[key] = g
			order = append(order, g)
		}
		g.count++
		g.sum += r.SalaryInUSD
		if keepValues {
			g.values = append(g.values, r.SalaryInUSD)
		}
	}
	return order
}

// truncate keeps the first n groups; n <= 0 keeps all.
func truncate(groups []*group, n int) []*group {
	if n > 0 && len(groups) > n {
		return groups[:n]
	}
	return groups
}

// MeanByYear averages salary per work year, one entry per distinct year in
// ascending year order.
func MeanByYear(src Source) Table {
	groups := groupBy(src, model.FieldWorkYear, false)
	slices.SortStableFunc(groups, func(a, b *group) int {
		return cmp.Compare(yearOf(a.key), yearOf(b.key))
	})
	return meanTable(KindMeanByYear, groups)
}

// TopMeanBy averages salary per field value and keeps the n highest means.
// Equal means keep the order in which their category first appeared.
func TopMeanBy(src Source, field model.Field, n int) Table {
	groups := groupBy(src, field, false)
	slices.SortStableFunc(groups, func(a, b *group) int {
		return cmp.Compare(b.mean(), a.mean())
	})
	return meanTable(KindTopMean, truncate(groups, n))
}

// DistributionBySize lists every salary per company size. Sizes come in
// S, M, L order, followed by unknown sizes in first-seen order.
func DistributionBySize(src Source) Table {
	groups := groupBy(src, model.FieldCompanySize, true)

	rank := make(map[string]int, 3)
	for i, s := range model.CanonicalSizes() {
		rank[string(s)] = i
	}
	unknown := len(rank)
	slices.SortStableFunc(groups, func(a, b *group) int {
		ra, ok := rank[a.key]
		if !ok {
			ra = unknown
		}
		rb, ok := rank[b.key]
		if !ok {
			rb = unknown
		}
		return cmp.Compare(ra, rb)
	})

	entries := make([]Entry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, Entry{Category: g.key, Count: g.count, Values: g.values})
	}
	return Table{Kind: KindDistributionBySize, Entries: entries}
}

// TopCountBy counts records per field value and keeps the n most frequent.
// Equal counts keep first-seen order.
func TopCountBy(src Source, field model.Field, n int) Table {
	groups := groupBy(src, field, false)
	slices.SortStableFunc(groups, func(a, b *group) int {
		return cmp.Compare(b.count, a.count)
	})
	return countTable(KindTopCount, truncate(groups, n))
}

// CountInOrder counts records per field value in first-seen order, unsorted.
// Slice order of proportional charts depends on this staying stable.
func CountInOrder(src Source, field model.Field) Table {
	return countTable(KindCountInOrder, groupBy(src, field, false))
}

func meanTable(kind Kind, groups []*group) Table {
	entries := make([]Entry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, Entry{Category: g.key, Value: g.mean(), Count: g.count})
	}
	return Table{Kind: kind, Entries: entries}
}

func countTable(kind Kind, groups []*group) Table {
	entries := make([]Entry, 0, len(groups))
	for _, g := range groups {
		entries = append(entries, Entry{Category: g.key, Value: float64(g.count), Count: g.count})
	}
	return Table{Kind: kind, Entries: entries}
}

// yearOf decodes a work_year key. Keys are produced by strconv.Itoa.
func yearOf(key string) int {
	y, _ := strconv.Atoi(key)
	return y
}
