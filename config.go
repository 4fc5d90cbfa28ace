package grover

import (
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultMaxQubits bounds the register size unless AllowLargeRegisters is set.
	DefaultMaxQubits = 30

	// HardMaxQubits is never exceeded, override or not.
	HardMaxQubits = 40

	// DefaultTolerance is the tolerated absolute drift of the squared norm.
	DefaultTolerance = 1e-9
)

/*
Config carries the knobs of a solver. The zero value is not useful, start from
NewConfig or LoadConfig.
*/
type Config struct {
	MaxQubits           int
	AllowLargeRegisters bool
	MemoryBudget        uint64 // bytes, 0 means unlimited
	Tolerance           float64
	StrictNormalization bool
	GlobalNegation      bool
	Seed                int64
	Workers             int
	Partitions          int
	SchedulingTimeout   time.Duration
	RunTimeout          time.Duration
	LogLevel            string
}

func NewConfig() *Config {
	procs := runtime.GOMAXPROCS(0)

	return &Config{
		MaxQubits:         DefaultMaxQubits,
		Tolerance:         DefaultTolerance,
		GlobalNegation:    true,
		Seed:              defaultSeed,
		Workers:           procs,
		Partitions:        procs,
		SchedulingTimeout: 10 * time.Second,
		LogLevel:          "info",
	}
}

/*
LoadConfig builds a Config from a viper instance, falling back to the defaults
of NewConfig for anything that is not set. Environment variables use the
GROVER_ prefix, so GROVER_MAX_QUBITS maps to the "max_qubits" key. A nil viper
reads the environment only.
*/
func LoadConfig(v *viper.Viper) *Config {
	if v == nil {
		v = viper.New()
	}

	def := NewConfig()

	v.SetEnvPrefix("grover")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("max_qubits", def.MaxQubits)
	v.SetDefault("allow_large_registers", def.AllowLargeRegisters)
	v.SetDefault("memory_budget", def.MemoryBudget)
	v.SetDefault("tolerance", def.Tolerance)
	v.SetDefault("strict_normalization", def.StrictNormalization)
	v.SetDefault("global_negation", def.GlobalNegation)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("partitions", def.Partitions)
	v.SetDefault("scheduling_timeout", def.SchedulingTimeout)
	v.SetDefault("run_timeout", def.RunTimeout)
	v.SetDefault("log_level", def.LogLevel)

	return &Config{
		MaxQubits:           v.GetInt("max_qubits"),
		AllowLargeRegisters: v.GetBool("allow_large_registers"),
		MemoryBudget:        v.GetUint64("memory_budget"),
		Tolerance:           v.GetFloat64("tolerance"),
		StrictNormalization: v.GetBool("strict_normalization"),
		GlobalNegation:      v.GetBool("global_negation"),
		Seed:                v.GetInt64("seed"),
		Workers:             v.GetInt("workers"),
		Partitions:          v.GetInt("partitions"),
		SchedulingTimeout:   v.GetDuration("scheduling_timeout"),
		RunTimeout:          v.GetDuration("run_timeout"),
		LogLevel:            v.GetString("log_level"),
	}
}

// normalized fills in anything a caller zeroed out by hand.
func (c *Config) normalized() *Config {
	def := NewConfig()
	if c == nil {
		return def
	}

	out := *c
	if out.MaxQubits <= 0 {
		out.MaxQubits = def.MaxQubits
	}
	if out.Tolerance <= 0 {
		out.Tolerance = def.Tolerance
	}
	if out.Workers <= 0 {
		out.Workers = def.Workers
	}
	if out.Partitions <= 0 {
		out.Partitions = out.Workers
	}
	if out.SchedulingTimeout <= 0 {
		out.SchedulingTimeout = def.SchedulingTimeout
	}
	if out.LogLevel == "" {
		out.LogLevel = def.LogLevel
	}
	return &out
}
