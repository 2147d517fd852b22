// Command neatctl exercises the NEAT innovation core from the command line.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/baldhumanity/neat-innovation/neat"
	"github.com/spf13/cobra"
)

var (
	configPath string
	seed       int64
	logLevel   string
	logFormat  string

	logger = slog.Default()

	rootCmd = &cobra.Command{
		Use:   "neatctl",
		Short: "Build, mutate and compare NEAT genomes",
		Long: `neatctl drives the innovation registry and genome operations:
structural mutation, forward evaluation, speciation and crossover.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd.ErrOrStderr(), logLevel, logFormat)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to an INI or YAML config file (defaults are used when empty)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "seed for the random number generator")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(newSampleCmd())
	rootCmd.AddCommand(newVerifyCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a slog logger writing to w.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", format)
	}
}

// loadConfig returns the config named by --config, or the defaults.
func loadConfig() (*neat.Config, error) {
	if configPath == "" {
		return neat.DefaultConfig(), nil
	}
	config, err := neat.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return config, nil
}
