package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/okian/paylens/internal/adapters/render"
	"github.com/okian/paylens/internal/adapters/repository"
	service "github.com/okian/paylens/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

const salariesCSV = `work_year,experience_level,employment_type,job_title,salary,salary_currency,salary_in_usd,employee_residence,remote_ratio,company_location,company_size
2023,SE,FT,Principal Data Scientist,80000,EUR,85847,ES,100,ES,L
2023,MI,CT,ML Engineer,30000,USD,30000,US,100,US,S
2023,MI,CT,ML Engineer,25500,USD,25500,US,100,US,S
2023,SE,FT,Data Scientist,175000,USD,175000,CA,100,CA,M
2022,SE,FT,Data Scientist,120000,USD,120000,CA,100,CA,M
2022,SE,FT,Applied Scientist,222200,USD,222200,US,0,US,L
2021,EN,FT,Data Scientist,136000,USD,136000,US,0,US,L
2020,EX,FT,Data Scientist,219000,USD,219000,US,0,US,M
`

func TestServiceIntegration(t *testing.T) {
	Convey("Given a store loaded from CSV", t, func() {
		ctx := context.Background()
		store, err := repository.Load(ctx, strings.NewReader(salariesCSV), repository.WithSourceName("inline"))
		So(err, ShouldBeNil)
		So(store.Len(), ShouldEqual, 8)

		Convey("When the service renders JSON lines and keeps a memory copy", func() {
			var out bytes.Buffer
			memory := render.NewMemorySink()
			svc := service.New(
				service.WithWorkerCount(3),
				service.WithSink(render.NewMultiSink(render.NewJSONSink(&out), memory)),
				service.WithClock(clock),
			)
			reports, err := svc.Run(ctx, store)
			So(err, ShouldBeNil)

			Convey("Then one JSON document per report should be written in catalog order", func() {
				lines := strings.Split(strings.TrimSpace(out.String()), "\n")
				So(lines, ShouldHaveLength, len(reports))
				for i, line := range lines {
					var doc struct {
						Spec struct {
							ID string `json:"id"`
						} `json:"spec"`
						RunID string `json:"run_id"`
					}
					So(json.Unmarshal([]byte(line), &doc), ShouldBeNil)
					So(doc.Spec.ID, ShouldEqual, catalogIDs()[i])
					So(doc.RunID, ShouldEqual, reports[0].RunID)
				}
			})

			Convey("Then the memory sink should hold the same reports", func() {
				So(reportIDs(memory.List()), ShouldResemble, catalogIDs())
				got, err := memory.Get("salary-by-company-size")
				So(err, ShouldBeNil)
				So(got.Table.Categories(), ShouldResemble, []string{"S", "M", "L"})
				So(got.Chart.Boxes, ShouldHaveLength, 3)
			})

			Convey("Then the yearly trend should be ascending", func() {
				So(reports[0].Table.Categories(), ShouldResemble, []string{"2020", "2021", "2022", "2023"})
			})

			Convey("Then the US job titles should count only US companies", func() {
				So(reports[4].Table.Categories(), ShouldResemble, []string{"ML Engineer", "Data Scientist", "Applied Scientist"})
				So(reports[4].Table.Entries[0].Count, ShouldEqual, 2)
			})

			Convey("Then the experience breakdown should keep first-seen order", func() {
				So(reports[5].Table.Categories(), ShouldResemble, []string{"SE", "MI", "EN", "EX"})
				So(reports[5].Narrative, ShouldEqual, "Senior is the largest group with 50.0% of 8 records.")
			})
		})
	})
}
