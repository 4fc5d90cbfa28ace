package report

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/grover"
)

func TestHistogram(t *testing.T) {
	Convey("Given measurement counts", t, func() {
		counts := grover.Counts{"100": 900, "010": 60, "001": 40}

		Convey("An unstyled histogram should list outcomes by frequency", func() {
			out := Histogram(counts, HistogramOptions{
				Title:    "demo",
				Width:    10,
				Unstyled: true,
			})

			lines := strings.Split(out, "\n")
			So(lines, ShouldHaveLength, 4)
			So(lines[0], ShouldEqual, "demo")
			So(lines[1], ShouldEqual, "100 ██████████ 900 (90.0%)")
			So(lines[2], ShouldStartWith, "010 █ 60")
			So(lines[3], ShouldStartWith, "001 █ 40")
		})

		Convey("Limit should cut the tail", func() {
			out := Histogram(counts, HistogramOptions{Limit: 1, Unstyled: true})
			So(strings.Count(out, "\n"), ShouldEqual, 0)
			So(out, ShouldStartWith, "100")
		})

		Convey("Styling should not drop any outcome", func() {
			out := Histogram(counts, HistogramOptions{Marked: map[string]bool{"100": true}})
			for bits := range counts {
				So(out, ShouldContainSubstring, bits)
			}
		})
	})

	Convey("Given no counts", t, func() {
		out := Histogram(grover.Counts{}, HistogramOptions{Unstyled: true})
		So(out, ShouldEqual, "no measurements")
	})
}

func TestPerQubit(t *testing.T) {
	Convey("Given per-qubit shots", t, func() {
		shots := map[int][]int{
			0: {1, 1, 0, 1},
			1: {0, 0, 0, 1},
		}

		So(PerQubit(shots, 0), ShouldEqual, "q0 1101\nq1 0001")
		So(PerQubit(shots, 2), ShouldEqual, "q0 11\nq1 00")
	})
}

func TestMarginals(t *testing.T) {
	Convey("Given per-qubit marginals", t, func() {
		out := Marginals([]grover.QubitProbability{
			{Prob0: 0.0546875, Prob1: 0.9453125},
			{Prob0: 1, Prob1: 0},
		})

		lines := strings.Split(out, "\n")
		So(lines, ShouldHaveLength, 2)
		So(lines[0], ShouldEqual, "q0 █████████  0.945")
		So(lines[1], ShouldEqual, "q1            0.000")
	})
}
