package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mastercactapus/gcheck/check"
	"github.com/mastercactapus/gcheck/config"
)

var (
	cfgFile string
	verbose bool

	// exitCode is set by subcommands that finish without a hard
	// error but still want a non-zero exit, such as a FAIL verdict.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "gcheck",
	Short: "gcheck - G-code program checker",
	Long: `gcheck analyzes CNC G-code programs: syntax, motion limits,
feed and spindle sanity, and subprogram call structure.

Commands:
  check    - Analyze one or more program files
  serve    - Run the HTTP analysis server
  history  - List recent analysis runs
  version  - Print version information`,
	SilenceUsage: true,
}

// Execute runs the root command and returns the process exit code:
// 0 for a clean pass, 1 for a FAIL verdict, 2 for usage or input
// errors.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 2
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $GCHECK_CONFIG, ./gcheck.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadDefault()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	if cfg.Log.JSON {
		zc = zap.NewProductionConfig()
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func newAnalyzer(cfg *config.Config, log *zap.Logger) *check.Analyzer {
	a := check.NewAnalyzer(check.Limits{
		MaxTravel: cfg.Check.MaxTravel,
		MaxFeed:   cfg.Check.MaxFeed,
	})
	a.Extensions = cfg.Check.Extensions
	a.Candidates = cfg.Check.Candidates
	a.Log = log
	return a
}
