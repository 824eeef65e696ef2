package repository_test

import (
	"testing"

	"github.com/okian/paylens/internal/adapters/repository"
	"github.com/okian/paylens/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{WorkYear: 2021, JobTitle: "Data Scientist", SalaryInUSD: 100000, CompanySize: model.SizeSmall, CompanyLocation: "US", ExperienceLevel: model.LevelEntry},
		{WorkYear: 2021, JobTitle: "Data Scientist", SalaryInUSD: 140000, CompanySize: model.SizeSmall, CompanyLocation: "US", ExperienceLevel: model.LevelMid},
		{WorkYear: 2022, JobTitle: "ML Engineer", SalaryInUSD: 200000, CompanySize: model.SizeLarge, CompanyLocation: "DE", ExperienceLevel: model.LevelSenior},
	}
}

func TestStore(t *testing.T) {
	convey.Convey("Given a three-record store", t, func() {
		records := sampleRecords()
		store := repository.NewStore("sample", records)

		convey.Convey("Then it should not alias the caller's slice", func() {
			records[0].JobTitle = "changed"
			convey.So(store.At(0).JobTitle, convey.ShouldEqual, "Data Scientist")

			out := store.Records()
			out[1].JobTitle = "changed"
			convey.So(store.At(1).JobTitle, convey.ShouldEqual, "Data Scientist")
		})

		convey.Convey("When filtering on company_location == US", func() {
			us := store.Filter(repository.WhereEquals(model.FieldCompanyLocation, "US"))

			convey.Convey("Then it should keep matching records in order", func() {
				convey.So(us.Len(), convey.ShouldEqual, 2)
				convey.So(us.At(0).ExperienceLevel, convey.ShouldEqual, model.LevelEntry)
				convey.So(us.At(1).ExperienceLevel, convey.ShouldEqual, model.LevelMid)
				convey.So(us.Source(), convey.ShouldEqual, "sample")
			})

			convey.Convey("Then the original store should be untouched", func() {
				convey.So(store.Len(), convey.ShouldEqual, 3)
				convey.So(store.Records(), convey.ShouldResemble, sampleRecords())
			})
		})

		convey.Convey("When filtering with a predicate matching nothing", func() {
			none := store.Filter(repository.WhereEquals(model.FieldCompanyLocation, "FR"))
			convey.So(none.Len(), convey.ShouldEqual, 0)
		})

		convey.Convey("When filtering with a nil predicate", func() {
			all := store.Filter(nil)
			convey.So(all.Records(), convey.ShouldResemble, store.Records())
		})

		convey.Convey("When filtering on an undeclared field", func() {
			convey.So(func() { repository.WhereEquals("salary_in_usd", "1") }, convey.ShouldPanic)
		})
	})

	convey.Convey("Given a nil store", t, func() {
		var store *repository.Store
		convey.So(store.Len(), convey.ShouldEqual, 0)
	})
}
