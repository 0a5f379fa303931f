package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerOptions(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When built with a private registry and custom settings", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(
				WithRegistry(reg),
				WithNamespace("test"),
				WithSubsystem("suite"),
				WithHistogramBuckets([]float64{1, 10, 100}),
			)

			Convey("Then the options apply", func() {
				So(m.namespace, ShouldEqual, "test")
				So(m.subsystem, ShouldEqual, "suite")
				So(m.histogramBuckets, ShouldResemble, []float64{1, 10, 100})
				So(m.enabled, ShouldBeTrue)
			})
		})

		Convey("When metrics are disabled", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(WithRegistry(reg), WithMetricsEnabled(false))
			So(m.enabled, ShouldBeFalse)
		})

		Convey("When empty option values are given", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(WithRegistry(reg), WithNamespace(""), WithHistogramBuckets(nil))

			Convey("Then defaults survive", func() {
				So(m.namespace, ShouldEqual, "promocal")
				So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Recording helpers do not panic", func() {
			So(func() {
				RecordHTTPRequest("months", "GET", "200")
				RecordHTTPRequestDuration("months", "GET", "200", 1.5)
				RecordMonthRequest("February")
				RecordSnapshotLoad()
				RecordCampaignGenerated(120)
				RecordCampaignGenerationFailure()
				RecordCampaignSaved()
				RecordCampaignSaveConflict()
				RecordCampaignDeleted()
				RecordMergeDuplicates(3)
				RecordIngestRows(42)
				RecordIngestRows(0)
				RecordIngestDroppedCells(7)
				RecordIngestDroppedCells(-1)
				RecordSignIn(true)
				RecordSignIn(false)
			}, ShouldNotPanic)
		})

		Convey("The registry gathers the recorded families", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
