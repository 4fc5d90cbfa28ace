package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/theapemachine/grover"
	"github.com/theapemachine/grover/report"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		grover.Logger.Error("grover failed", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("grover", pflag.ContinueOnError)
	flags.Int("qubits", 3, "register size n")
	flags.StringSlice("target", []string{"100"}, "marked bit string(s)")
	flags.Int("trials", 1000, "number of measurements")
	flags.Int64("seed", 1, "sampling seed")
	flags.Int("workers", 0, "sampling workers (0 = GOMAXPROCS)")
	flags.Int("partitions", 0, "rng substreams per run (0 = workers)")
	flags.Bool("strict-normalization", false, "check the norm after every operator")
	flags.Bool("global-negation", true, "apply the -I phase step every round")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("config", "", "optional config file")
	flags.String("plot", "", "write a bar chart to this path")
	flags.Bool("per-qubit", false, "print per-qubit measurement arrays")
	flags.Bool("plain", false, "disable terminal styling")

	if err := flags.Parse(args); err != nil {
		return err
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
	}

	// flag names use dashes, config keys use underscores
	for _, name := range []string{"strict-normalization", "global-negation", "log-level"} {
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name)); err != nil {
			return err
		}
	}

	cfg := grover.LoadConfig(v)
	if err := grover.SetLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := v.GetInt("qubits")
	targets := v.GetStringSlice("target")
	for _, target := range targets {
		if _, err := grover.ParseBitstring(target); err != nil || len(target) != n {
			return fmt.Errorf("target %q is not a %d-bit string: %w", target, n, grover.ErrInvalidDimension)
		}
	}

	solver, err := grover.NewSolver(n, grover.MatchOracle(targets...), grover.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer solver.Close()

	trials := v.GetInt("trials")
	counts, err := solver.Run(ctx, trials)
	if err != nil {
		return err
	}

	marked := make(map[string]bool, len(targets))
	for _, t := range targets {
		marked[t] = true
	}

	fmt.Println(report.Histogram(counts, report.HistogramOptions{
		Title:    fmt.Sprintf("%d qubits, %d iterations, %d trials", n, solver.Iterations(), trials),
		Limit:    16,
		Marked:   marked,
		Unstyled: v.GetBool("plain"),
	}))

	if v.GetBool("per-qubit") {
		// same measurements as the histogram, split per qubit
		shots, err := grover.PerQubitShots(counts, n, cfg.Seed)
		if err != nil {
			return err
		}
		fmt.Println(report.PerQubit(shots, 64))
		fmt.Println(report.Marginals(solver.QubitProbabilities()))
	}

	if path := v.GetString("plot"); path != "" {
		if err := report.SavePNG(counts, n, "Grover search", path); err != nil {
			return err
		}
		grover.Logger.Info("chart written", "path", path)
	}

	grover.Logger.Debug("sampling metrics", "metrics", solver.Metrics())
	return nil
}
