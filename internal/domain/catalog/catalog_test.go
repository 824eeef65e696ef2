package catalog_test

import (
	"errors"
	"testing"

	"github.com/okian/paylens/internal/domain/aggregate"
	"github.com/okian/paylens/internal/domain/catalog"
	"github.com/okian/paylens/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDefaultCatalog(t *testing.T) {
	convey.Convey("Given the default catalog", t, func() {
		specs := catalog.Default()

		convey.Convey("Then it should validate", func() {
			convey.So(catalog.Validate(specs), convey.ShouldBeNil)
		})

		convey.Convey("Then it should list six reports in dashboard order", func() {
			ids := make([]string, len(specs))
			charts := make([]catalog.ChartKind, len(specs))
			kinds := make([]aggregate.Kind, len(specs))
			for i, s := range specs {
				ids[i] = s.ID
				charts[i] = s.Chart
				kinds[i] = s.Aggregation.Kind
			}
			convey.So(ids, convey.ShouldResemble, []string{
				"avg-salary-by-year",
				"top-job-titles-by-salary",
				"salary-by-company-size",
				"top-countries-by-jobs",
				"top-job-titles-in-us",
				"experience-level-breakdown",
			})
			convey.So(charts, convey.ShouldResemble, []catalog.ChartKind{
				catalog.ChartLine, catalog.ChartBarHorizontal, catalog.ChartBox,
				catalog.ChartBarHorizontal, catalog.ChartBarHorizontal, catalog.ChartPie,
			})
			convey.So(kinds, convey.ShouldResemble, []aggregate.Kind{
				aggregate.KindMeanByYear, aggregate.KindTopMean, aggregate.KindDistributionBySize,
				aggregate.KindTopCount, aggregate.KindTopCount, aggregate.KindCountInOrder,
			})
		})

		convey.Convey("Then limits and the US filter should match the dashboard", func() {
			convey.So(specs[1].Aggregation.Limit, convey.ShouldEqual, 5)
			convey.So(specs[3].Aggregation.Limit, convey.ShouldEqual, 10)
			convey.So(specs[3].Aggregation.Field, convey.ShouldEqual, model.FieldCompanyLocation)
			convey.So(specs[4].Aggregation.Field, convey.ShouldEqual, model.FieldJobTitle)
			convey.So(specs[4].Filter, convey.ShouldResemble, &catalog.Filter{Field: model.FieldCompanyLocation, Equals: "US"})
			for i, s := range specs {
				if i != 4 {
					convey.So(s.Filter, convey.ShouldBeNil)
				}
			}
		})

		convey.Convey("Then each call should return an independent slice", func() {
			specs[0].Title = "changed"
			convey.So(catalog.Default()[0].Title, convey.ShouldEqual, "Average Salary Over Years")
		})
	})
}

func TestPredicate(t *testing.T) {
	convey.Convey("Given report specs with and without a filter", t, func() {
		specs := catalog.Default()
		us := model.Record{CompanyLocation: "US"}
		de := model.Record{CompanyLocation: "DE"}

		convey.Convey("Then an unfiltered spec should have no predicate", func() {
			convey.So(specs[0].Predicate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the US spec should keep only US records", func() {
			pred := specs[4].Predicate()
			convey.So(pred(us), convey.ShouldBeTrue)
			convey.So(pred(de), convey.ShouldBeFalse)
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given malformed catalogs", t, func() {
		base := catalog.Default()[0]

		withID := func(id string) catalog.ReportSpec { s := base; s.ID = id; return s }
		badAgg := base
		badAgg.Aggregation = aggregate.Spec{Kind: aggregate.KindTopCount}
		badFilter := base
		badFilter.Filter = &catalog.Filter{Field: "salary_in_usd", Equals: "1"}
		badChart := base
		badChart.Chart = "radar"

		cases := []struct {
			name  string
			specs []catalog.ReportSpec
		}{
			{"empty id", []catalog.ReportSpec{withID("")}},
			{"duplicate id", []catalog.ReportSpec{base, base}},
			{"bad aggregation", []catalog.ReportSpec{badAgg}},
			{"bad filter", []catalog.ReportSpec{badFilter}},
			{"bad chart", []catalog.ReportSpec{badChart}},
		}

		for _, tc := range cases {
			convey.Convey("Then a catalog with "+tc.name+" should be rejected", func() {
				err := catalog.Validate(tc.specs)
				convey.So(errors.Is(err, catalog.ErrInvalidCatalog), convey.ShouldBeTrue)
			})
		}

		convey.Convey("Then ByID should find known reports only", func() {
			s, ok := catalog.ByID(catalog.Default(), "top-job-titles-in-us")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(s.Chart, convey.ShouldEqual, catalog.ChartBarHorizontal)
			_, ok = catalog.ByID(catalog.Default(), "nope")
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}
