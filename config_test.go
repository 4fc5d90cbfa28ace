package grover

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestConfig(t *testing.T) {
	Convey("Given the default configuration", t, func() {
		cfg := NewConfig()

		So(cfg.MaxQubits, ShouldEqual, DefaultMaxQubits)
		So(cfg.Tolerance, ShouldEqual, DefaultTolerance)
		So(cfg.GlobalNegation, ShouldBeTrue)
		So(cfg.StrictNormalization, ShouldBeFalse)
		So(cfg.Seed, ShouldEqual, defaultSeed)
		So(cfg.Workers, ShouldBeGreaterThan, 0)
		So(cfg.LogLevel, ShouldEqual, "info")
	})

	Convey("Given a viper instance with overrides", t, func() {
		v := viper.New()
		v.Set("seed", 42)
		v.Set("strict_normalization", true)
		v.Set("scheduling_timeout", "250ms")

		cfg := LoadConfig(v)

		Convey("Set keys should win and the rest fall back to defaults", func() {
			So(cfg.Seed, ShouldEqual, int64(42))
			So(cfg.StrictNormalization, ShouldBeTrue)
			So(cfg.SchedulingTimeout, ShouldEqual, 250*time.Millisecond)
			So(cfg.MaxQubits, ShouldEqual, DefaultMaxQubits)
			So(cfg.GlobalNegation, ShouldBeTrue)
		})
	})

	Convey("Given GROVER_ environment variables", t, func() {
		t.Setenv("GROVER_MAX_QUBITS", "12")
		t.Setenv("GROVER_GLOBAL_NEGATION", "false")

		cfg := LoadConfig(nil)

		So(cfg.MaxQubits, ShouldEqual, 12)
		So(cfg.GlobalNegation, ShouldBeFalse)
	})

	Convey("Given a hand-built config with zeroed fields", t, func() {
		cfg := (&Config{Workers: 3}).normalized()

		So(cfg.MaxQubits, ShouldEqual, DefaultMaxQubits)
		So(cfg.Tolerance, ShouldEqual, DefaultTolerance)
		So(cfg.Workers, ShouldEqual, 3)
		So(cfg.Partitions, ShouldEqual, 3)
		So(cfg.SchedulingTimeout, ShouldBeGreaterThan, 0)
		So(cfg.LogLevel, ShouldEqual, "info")

		Convey("A nil config normalizes to the defaults", func() {
			So((*Config)(nil).normalized(), ShouldResemble, NewConfig())
		})
	})

	Convey("Given log levels", t, func() {
		So(SetLogLevel("debug"), ShouldBeNil)
		So(SetLogLevel("info"), ShouldBeNil)
		So(SetLogLevel("shouting"), ShouldNotBeNil)
	})
}
