package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/appengine-ltd/expedition/internal/game"
	"github.com/appengine-ltd/expedition/internal/tui"
)

var (
	flagSeed        int64
	flagSteps       int
	flagAuto        bool
	flagInstability int
	flagReport      string
	flagName        string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play one expedition",
	Long: `Start a single expedition. Interactive by default; pass --auto to let
the built-in heuristics play the whole run, which is useful for comparing
two runs of the same seed.`,
	RunE: runExpedition,
}

func init() {
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "world seed (0 picks one from the clock)")
	runCmd.Flags().IntVar(&flagSteps, "steps", 0, "route length in waypoints (0 uses the default)")
	runCmd.Flags().BoolVar(&flagAuto, "auto", false, "let the autopilot make every decision")
	runCmd.Flags().IntVar(&flagInstability, "instability", game.DefaultInstability, "world decay pressure, 0-10+")
	runCmd.Flags().StringVar(&flagReport, "report", "", "write a YAML run report to this path")
	runCmd.Flags().StringVar(&flagName, "name", "", "name of your drifter")
}

func runExpedition(cmd *cobra.Command, args []string) error {
	cfg := game.RunConfig{
		Seed:        flagSeed,
		Steps:       flagSteps,
		Auto:        flagAuto,
		Instability: flagInstability,
		PlayerName:  flagName,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if !flagAuto {
		logger.Info("starting interactive expedition", "seed", cfg.Seed, "steps", cfg.Steps)
		return tui.Run(cfg, flagReport)
	}

	run, err := game.NewRun(cfg, nil, game.NewLineSink(os.Stdout))
	if err != nil {
		return err
	}
	logger.Info("starting autopilot expedition",
		"seed", run.Seed(), "steps", cfg.Steps, "instability", cfg.Instability)

	outcome := run.Play()
	logger.Info("expedition finished", "outcome", outcome.String())

	if flagReport != "" {
		if err := game.WriteReport(flagReport, run.Report(outcome)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("report written", "path", flagReport)
	}
	return nil
}
