package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/plus3/dodge/internal/game"
)

var (
	flagFrames   int
	flagDelta    float64
	flagRealtime bool
	flagDuration time.Duration
	flagInput    string
	flagRecord   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the game without a window and print a report",
	Long: `Run the update systems headless with a scripted input and print a
markdown report of enemy counts, contacts and system timings.

By default a fixed number of frames is stepped with a fixed delta. With
--realtime the scheduler runs on a ticker for --duration instead.

Input scripts:
  none   - no keys held
  left   - hold left
  right  - hold right
  sweep  - alternate right and left every two seconds of frames

Examples:
  dodge simulate
  dodge simulate --frames 36000 --input sweep --seed 7
  dodge simulate --realtime --duration 5s`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 3600, "Number of frames to step")
	simulateCmd.Flags().Float64Var(&flagDelta, "dt", 1.0/60.0, "Delta time per frame in seconds")
	simulateCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Run on a wall-clock ticker instead of fixed steps")
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", 10*time.Second, "Run time for --realtime")
	simulateCmd.Flags().StringVar(&flagInput, "input", "none", "Input script: none, left, right, sweep")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session to the sessions database")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	logger, cfg, err := setup()
	if err != nil {
		return err
	}
	if flagDelta <= 0 {
		return fmt.Errorf("--dt must be positive, got %g", flagDelta)
	}

	input, err := scriptedInput(flagInput, flagDelta)
	if err != nil {
		return err
	}

	world := game.NewWorld(cfg, game.Options{
		Input:  input,
		Logger: logger,
		Seed:   flagSeed,
	})

	report := &Report{
		Mode:    "fixed",
		Input:   flagInput,
		Seed:    world.Seed,
		Despawn: string(cfg.Enemy.Despawn),
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	if flagRealtime {
		report.Mode = "realtime"
		logger.Info("simulating", "mode", report.Mode, "duration", flagDuration, "interval", flagDelta)
		ctx, cancel := context.WithTimeout(cmd.Context(), flagDuration)
		defer cancel()
		world.Update.Run(ctx, time.Duration(flagDelta*float64(time.Second)))
	} else {
		logger.Info("simulating", "mode", report.Mode, "frames", flagFrames, "dt", flagDelta)
		report.UpdateTime.Samples = make([]time.Duration, 0, flagFrames)
		for range flagFrames {
			stepStart := time.Now()
			world.Step(flagDelta)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(stepStart))
		}
	}

	report.WallTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Collect(world)

	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if flagRecord {
		saveSession(logger, cfg, "simulate", world)
	}
	return nil
}

// scriptedInput builds the key script named by name. sweep flips direction
// every two seconds of frames at the given delta.
func scriptedInput(name string, dt float64) (game.InputSource, error) {
	switch name {
	case "none", "":
		return game.StaticInput{}, nil
	case "left":
		return game.StaticInput{Left: true}, nil
	case "right":
		return game.StaticInput{Right: true}, nil
	case "sweep":
		period := max(int(2.0/dt), 1)
		frame := 0
		return game.InputFunc(func() game.InputState {
			right := (frame/period)%2 == 0
			frame++
			return game.InputState{Left: !right, Right: right}
		}), nil
	default:
		return nil, fmt.Errorf("unknown input script %q (want none, left, right or sweep)", name)
	}
}
