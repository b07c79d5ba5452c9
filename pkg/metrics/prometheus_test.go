package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"
)

func TestGlobalMetrics(t *testing.T) {
	convey.Convey("Given the global metrics manager", t, func() {
		convey.Convey("Then the registry should be available", func() {
			convey.So(GetRegistry(), convey.ShouldNotBeNil)
		})

		convey.Convey("When recording business metrics", func() {
			convey.So(func() {
				RecordScoreComputation(85)
				RecordWeekCardUpsert()
			}, convey.ShouldNotPanic)

			convey.Convey("Then the score gauge should hold the last value", func() {
				convey.So(testutil.ToFloat64(globalManager.scoreValue), convey.ShouldEqual, 85)
			})
		})

		convey.Convey("When updating store metrics", func() {
			UpdateStoreRecords("clients", 4)
			RecordStoreFlush()
			RecordStoreFlushError()

			convey.So(testutil.ToFloat64(globalManager.storeRecords.WithLabelValues("clients")), convey.ShouldEqual, 4)
		})

		convey.Convey("When recording HTTP metrics", func() {
			convey.So(func() {
				RecordHTTPRequest("score", "GET", "200")
				RecordHTTPRequestDuration("score", "GET", "200", 2.5)
				RecordHTTPError("score", "GET", "not_found")
			}, convey.ShouldNotPanic)
		})

		convey.Convey("When recording system metrics", func() {
			convey.So(func() {
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.2)
			}, convey.ShouldNotPanic)

			convey.So(testutil.ToFloat64(globalManager.systemGoroutineCount), convey.ShouldEqual, 12)
		})
	})
}

func TestManagerOptions(t *testing.T) {
	convey.Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("testns"),
			WithSubsystem("testsub"),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithPrometheusRegistry(reg),
		)

		convey.Convey("When recording through the manager's metrics", func() {
			m.scoreComputations.Inc()
			m.scoreValue.Set(42)

			convey.Convey("Then the private registry should expose them", func() {
				families, err := reg.Gather()

				convey.So(err, convey.ShouldBeNil)

				found := false
				for _, mf := range families {
					if strings.HasPrefix(mf.GetName(), "testns_testsub_") {
						found = true
					}
				}
				convey.So(found, convey.ShouldBeTrue)
			})

			convey.Convey("And the global registry should be unaffected", func() {
				convey.So(testutil.ToFloat64(m.scoreValue), convey.ShouldEqual, 42)
				convey.So(m.registry, convey.ShouldNotEqual, GetRegistry())
			})
		})
	})
}
