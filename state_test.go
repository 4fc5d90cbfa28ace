package grover

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCounts(t *testing.T) {
	Convey("Given some measurement counts", t, func() {
		counts := Counts{"10": 6, "01": 3, "11": 3}

		So(counts.Total(), ShouldEqual, 12)

		Convey("Mode should break ties by bit string", func() {
			mode, n := counts.Mode()
			So(mode, ShouldEqual, "10")
			So(n, ShouldEqual, 6)

			mode, n = Counts{"11": 2, "01": 2}.Mode()
			So(mode, ShouldEqual, "01")
			So(n, ShouldEqual, 2)
		})

		Convey("Sorted should order by count, then bits", func() {
			sorted := counts.Sorted()
			So(sorted, ShouldResemble, []Outcome{
				{Bits: "10", Count: 6, Probability: 0.5},
				{Bits: "01", Count: 3, Probability: 0.25},
				{Bits: "11", Count: 3, Probability: 0.25},
			})
		})

		Convey("Dense should fill in every missing outcome", func() {
			dense := counts.Dense(2)
			So(dense, ShouldResemble, Counts{"00": 0, "01": 3, "10": 6, "11": 3})
			So(counts, ShouldNotContainKey, "00")
		})

		Convey("Merging should add counts", func() {
			counts.merge(Counts{"00": 1, "10": 1})
			So(counts["00"], ShouldEqual, 1)
			So(counts["10"], ShouldEqual, 7)
			So(counts.Total(), ShouldEqual, 14)
		})
	})

	Convey("Given no counts", t, func() {
		empty := Counts{}

		mode, n := empty.Mode()
		So(mode, ShouldEqual, "")
		So(n, ShouldEqual, 0)
		So(empty.Sorted(), ShouldBeEmpty)
		So(empty.Frequencies(), ShouldBeEmpty)
	})
}

func TestMetrics(t *testing.T) {
	Convey("Given fresh metrics", t, func() {
		m := NewMetrics()

		Convey("Recording jobs should update rates and latencies", func() {
			for i := 0; i < 20; i++ {
				m.recordJobExecution(time.Now(), i%4 != 0)
			}
			m.recordSamples(300)
			m.recordSchedulingFailure()

			exported := m.ExportMetrics()
			So(exported["job_count"], ShouldEqual, int64(20))
			So(exported["failed_jobs"], ShouldEqual, int64(5))
			So(exported["success_rate"], ShouldEqual, 0.75)
			So(exported["samples_drawn"], ShouldEqual, int64(300))
			So(exported["scheduling_failures"], ShouldEqual, int64(1))
			So(m.P99JobLatency, ShouldBeGreaterThanOrEqualTo, m.P95JobLatency)
		})

		Convey("The latency window should stay bounded", func() {
			for i := 0; i < m.windowSize+10; i++ {
				m.recordJobExecution(time.Now(), true)
			}
			So(len(m.latencyWindow), ShouldEqual, m.windowSize)
		})
	})
}
