package dates

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
)

func TestParseAndFormat(t *testing.T) {
	convey.Convey("Given ISO date strings", t, func() {
		convey.Convey("When parsing a valid date", func() {
			parsed, err := Parse("2024-06-10")

			convey.So(err, convey.ShouldBeNil)
			convey.So(parsed.Year(), convey.ShouldEqual, 2024)
			convey.So(parsed.Month(), convey.ShouldEqual, time.June)
			convey.So(parsed.Day(), convey.ShouldEqual, 10)
		})

		convey.Convey("When parsing an invalid date", func() {
			_, err := Parse("not-a-date")

			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When formatting a time", func() {
			ts := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)

			convey.So(Format(ts), convey.ShouldEqual, "2024-06-10")
		})

		convey.Convey("Then format and parse should round-trip", func() {
			parsed, err := Parse("2023-12-31")

			convey.So(err, convey.ShouldBeNil)
			convey.So(Format(parsed), convey.ShouldEqual, "2023-12-31")
		})
	})
}

func TestStartOfWeek(t *testing.T) {
	convey.Convey("Given dates across one calendar week", t, func() {
		// 2024-06-10 is a Monday.
		convey.Convey("When the date is the Monday itself", func() {
			convey.So(StartOfWeekISO("2024-06-10"), convey.ShouldEqual, "2024-06-10")
		})

		convey.Convey("When the date is midweek", func() {
			convey.So(StartOfWeekISO("2024-06-12"), convey.ShouldEqual, "2024-06-10")
		})

		convey.Convey("When the date is the Sunday at the end of the week", func() {
			convey.So(StartOfWeekISO("2024-06-16"), convey.ShouldEqual, "2024-06-10")
		})

		convey.Convey("When the date is the following Monday", func() {
			convey.So(StartOfWeekISO("2024-06-17"), convey.ShouldEqual, "2024-06-17")
		})

		convey.Convey("When the week spans a month boundary", func() {
			// 2024-07-01 is a Monday; the prior Sunday belongs to June's week.
			convey.So(StartOfWeekISO("2024-06-30"), convey.ShouldEqual, "2024-06-24")
			convey.So(StartOfWeekISO("2024-07-01"), convey.ShouldEqual, "2024-07-01")
		})

		convey.Convey("When the input is unparseable", func() {
			convey.So(StartOfWeekISO("garbage"), convey.ShouldEqual, "garbage")
		})

		convey.Convey("When working on time values directly", func() {
			sunday := time.Date(2024, time.June, 16, 23, 59, 0, 0, time.UTC)

			convey.So(Format(StartOfWeek(sunday)), convey.ShouldEqual, "2024-06-10")
		})
	})
}

func TestAddDays(t *testing.T) {
	convey.Convey("Given day arithmetic on ISO strings", t, func() {
		convey.Convey("When adding days within a month", func() {
			convey.So(AddDays("2024-06-10", 4), convey.ShouldEqual, "2024-06-14")
		})

		convey.Convey("When crossing a month boundary", func() {
			convey.So(AddDays("2024-06-30", 1), convey.ShouldEqual, "2024-07-01")
		})

		convey.Convey("When crossing a year boundary", func() {
			convey.So(AddDays("2023-12-31", 1), convey.ShouldEqual, "2024-01-01")
		})

		convey.Convey("When going backwards", func() {
			convey.So(AddDays("2024-03-01", -1), convey.ShouldEqual, "2024-02-29")
		})

		convey.Convey("When the input is unparseable", func() {
			convey.So(AddDays("bogus", 7), convey.ShouldEqual, "bogus")
		})
	})
}

func TestDaysBetween(t *testing.T) {
	convey.Convey("Given two ISO dates", t, func() {
		convey.Convey("When b is after a", func() {
			convey.So(DaysBetween("2024-06-01", "2024-06-11"), convey.ShouldEqual, 10)
		})

		convey.Convey("When b is before a", func() {
			convey.So(DaysBetween("2024-06-11", "2024-06-01"), convey.ShouldEqual, -10)
		})

		convey.Convey("When the dates are equal", func() {
			convey.So(DaysBetween("2024-06-10", "2024-06-10"), convey.ShouldEqual, 0)
		})

		convey.Convey("When either side is unparseable", func() {
			convey.So(DaysBetween("bad", "2024-06-10"), convey.ShouldEqual, 0)
			convey.So(DaysBetween("2024-06-10", "bad"), convey.ShouldEqual, 0)
		})
	})
}

func TestToday(t *testing.T) {
	convey.Convey("Given the wall clock", t, func() {
		convey.Convey("Then Today should render a parseable ISO date", func() {
			_, err := Parse(Today())

			convey.So(err, convey.ShouldBeNil)
		})
	})
}
