package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the defaults should survive", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "bounty")
				So(manager.subsystem, ShouldEqual, "board")
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording submission pipeline metrics", func() {
			So(func() {
				RecordSubmission()
				RecordSubmissionFailed()
				RecordScreenshotProcessed()
				RecordScreenshotFailed()
				ObserveOCRLatency(120.0)
				RecordMergeOverlaps(3)
				RecordMergeOverlaps(0)
			}, ShouldNotPanic)
		})

		Convey("When recording ledger metrics", func() {
			So(func() {
				UpdateLedgerPlayers(12)
				UpdateLedgerPlayers(0)
				RecordLedgerSave()
				RecordCorrection()
				RecordReset()
			}, ShouldNotPanic)
		})

		Convey("When recording operational metrics", func() {
			So(func() {
				UpdateQueueDepth(4)
				UpdateQueueDepth(0)
				UpdateSystemGoroutineCount(100)
				UpdateSystemMemoryUsage(1024 * 1024 * 100)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/healthz", "GET", "200")
				RecordHTTPRequest("/submit", "POST", "201")
				RecordHTTPRequestDuration("/leaderboard", "GET", "200", 15.0)
				RecordHTTPRequestDuration("", "", "200", 0.0)
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent metric recording", t, func() {
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordScreenshotProcessed()
					UpdateLedgerPlayers(j)
					ObserveOCRLatency(float64(j))
					RecordHTTPRequest("/submit", "POST", "201")
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		Convey("Then it should handle concurrent access without panics", func() {
			So(true, ShouldBeTrue)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given the package registry", t, func() {
		Convey("When gathering", func() {
			families, err := GetRegistry().Gather()

			Convey("Then the bounty metrics are present", func() {
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["bounty_board_submissions_total"], ShouldBeTrue)
				So(names["bounty_board_ledger_players"], ShouldBeTrue)
			})
		})
	})
}
