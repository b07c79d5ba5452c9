package snapshot

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/ledgerweek/internal/domain/model"
	"github.com/okian/ledgerweek/internal/domain/scoring"
)

func testInput(ref string) scoring.Input {
	return scoring.Input{
		Profile: model.Profile{
			BusinessName:               "Solo Studio",
			WeeklyBillableTargetHours:  10,
			WeeklyPipelineTarget:       3,
			InvoiceGraceDays:           7,
			WeeklyBillableHoursPlanned: 12,
		},
		Touches: []model.PipelineTouch{
			{ID: "t1", Date: ref, Type: model.TouchInquiry},
			{ID: "t2", Date: ref, Type: model.TouchInquiry},
			{ID: "t3", Date: ref, Type: model.TouchFollowUp},
		},
		ReferenceDate: ref,
	}
}

func card(weekStart string, score int) model.WeekCard {
	return model.WeekCard{
		ID:           weekStart,
		WeekStartISO: weekStart,
		CreatedAtISO: weekStart,
		Score:        score,
		Label:        scoring.LabelFor(score),
		Actions:      []string{},
	}
}

func TestBuild(t *testing.T) {
	convey.Convey("Given a score engine and a clean ledger", t, func() {
		engine := scoring.NewEngine()

		convey.Convey("When building a card for a midweek reference date", func() {
			got := Build(engine, testInput("2024-06-12"), "")

			convey.Convey("Then the card should key on the week's Monday", func() {
				convey.So(got.WeekStartISO, convey.ShouldEqual, "2024-06-10")
				convey.So(got.ID, convey.ShouldEqual, "2024-06-10")
				convey.So(got.CreatedAtISO, convey.ShouldEqual, "2024-06-12")
			})

			convey.Convey("And the card should freeze the computed score", func() {
				convey.So(got.Score, convey.ShouldEqual, 100)
				convey.So(got.Label, convey.ShouldEqual, model.LabelStable)
				convey.So(got.Metrics.PipelineTouches, convey.ShouldEqual, 3)
			})

			convey.Convey("And notes and actions should start empty", func() {
				convey.So(got.Notes, convey.ShouldBeEmpty)
				convey.So(got.Actions, convey.ShouldNotBeNil)
				convey.So(got.Actions, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When an explicit week start is supplied", func() {
			got := Build(engine, testInput("2024-06-12"), "2024-06-03")

			convey.Convey("Then it should win over the derived Monday", func() {
				convey.So(got.WeekStartISO, convey.ShouldEqual, "2024-06-03")
			})
		})
	})
}

func TestUpsert(t *testing.T) {
	convey.Convey("Given an existing week card history", t, func() {
		history := []model.WeekCard{
			card("2024-06-10", 80),
			card("2024-06-03", 65),
		}

		convey.Convey("When upserting a card for a new week", func() {
			got := Upsert(history, card("2024-06-17", 95))

			convey.Convey("Then it should be added at the front", func() {
				convey.So(got, convey.ShouldHaveLength, 3)
				convey.So(got[0].WeekStartISO, convey.ShouldEqual, "2024-06-17")
				convey.So(got[1].WeekStartISO, convey.ShouldEqual, "2024-06-10")
				convey.So(got[2].WeekStartISO, convey.ShouldEqual, "2024-06-03")
			})
		})

		convey.Convey("When upserting a card for an existing week", func() {
			got := Upsert(history, card("2024-06-10", 40))

			convey.Convey("Then the later call should win without growing history", func() {
				convey.So(got, convey.ShouldHaveLength, 2)
				convey.So(got[0].WeekStartISO, convey.ShouldEqual, "2024-06-10")
				convey.So(got[0].Score, convey.ShouldEqual, 40)
			})
		})

		convey.Convey("When upserting the same card twice", func() {
			once := Upsert(history, card("2024-06-17", 95))
			twice := Upsert(once, card("2024-06-17", 95))

			convey.Convey("Then the operation should be idempotent", func() {
				convey.So(twice, convey.ShouldResemble, once)
			})
		})

		convey.Convey("When upserting an out-of-order backfill", func() {
			got := Upsert(history, card("2024-05-27", 70))

			convey.Convey("Then the history should stay sorted newest first", func() {
				convey.So(got[0].WeekStartISO, convey.ShouldEqual, "2024-06-10")
				convey.So(got[2].WeekStartISO, convey.ShouldEqual, "2024-05-27")
			})
		})

		convey.Convey("Then the input history should not be mutated", func() {
			_ = Upsert(history, card("2024-06-10", 1))

			convey.So(history[0].Score, convey.ShouldEqual, 80)
		})

		convey.Convey("When upserting into empty history", func() {
			got := Upsert(nil, card("2024-06-10", 55))

			convey.So(got, convey.ShouldHaveLength, 1)
		})
	})
}
