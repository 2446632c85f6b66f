// dodge is a small arcade game: keep the square away from the drifting enemies.
//
// Usage:
//
//	dodge                  - Play with the default configuration
//	dodge play [--debug]   - Play, optionally with the ImGui debug overlay
//	dodge simulate         - Run the game headless and print a report
//	dodge scores           - Show the longest recorded sessions
//
// Global flags:
//
//	--config <path>     - YAML config file (default: search ~/.dodge, ./configs, builtin)
//	--seed <value>      - RNG seed for reproducible enemy spawns (0 = config or time)
//	--log-level <lvl>   - debug, info, warn or error
//	--db <path>         - Session database path (default: from config)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plus3/dodge/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
	flagDBPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodge",
	Short: "Dodge - move left and right, avoid the red squares",
	Long: `Dodge is a tiny arcade game built on an archetype ECS and Ebiten.

The blue square moves along the bottom of the screen with the arrow keys.
Every two seconds a red square appears at the top edge and drifts off in a
random direction.

Available commands:
  play      - Open the game window (default)
  simulate  - Run the game headless and print a markdown report
  scores    - Show the longest recorded sessions

Examples:
  dodge
  dodge play --debug
  dodge simulate --frames 3600 --input sweep
  dodge scores --limit 5`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config seed, or time based)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the sessions database (default from config)")

	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the ImGui debug overlay")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
}

func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dodge",
		Level:           lvl,
	}), nil
}

// setup resolves the logger and configuration shared by every command.
func setup() (*log.Logger, config.Config, error) {
	logger, err := newLogger(flagLogLevel)
	if err != nil {
		return nil, config.Config{}, err
	}

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return nil, config.Config{}, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}

	logger.Debug("config loaded", "source", source, "despawn", cfg.Enemy.Despawn)
	return logger, cfg, nil
}
