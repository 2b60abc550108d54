package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mastercactapus/gcheck/history"
	"github.com/mastercactapus/gcheck/plot"
	"github.com/mastercactapus/gcheck/report"
)

var (
	checkJSON    bool
	checkJSONOut string
	checkPlot    bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Analyze one or more G-code programs",
	Long: `Analyzes G-code program files and prints a validation report.
Subprogram calls (M98 P<num>) are resolved relative to each file's
directory and included in the analysis.

Examples:
  gcheck check part.nc
  gcheck check --json part.nc > report.json
  gcheck check --json-out report.json part.nc
  gcheck check --plot part.nc     # writes part_analysis.svg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print a JSON report instead of text")
	checkCmd.Flags().StringVar(&checkJSONOut, "json-out", "", "Write a JSON report to this path")
	checkCmd.Flags().BoolVar(&checkPlot, "plot", false, "Write an SVG toolpath plot next to each input")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkJSONOut != "" && len(args) != 1 {
		return errors.New("--json-out takes exactly one input file")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()
	an := newAnalyzer(cfg, log)

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	failed := false
	for _, path := range args {
		res, err := an.AnalyzeFile(path)
		if err != nil {
			return err
		}

		if checkJSON {
			if err := report.JSON(os.Stdout, res, true); err != nil {
				return err
			}
		} else {
			report.Console(os.Stdout, res)
		}

		if checkJSONOut != "" {
			if err := report.JSONFile(checkJSONOut, res); err != nil {
				return err
			}
			log.Info("wrote json report", zap.String("file", checkJSONOut))
		}

		if checkPlot {
			out := plot.OutputPath(path)
			if err := plot.New().WriteFile(out, res); err != nil {
				return err
			}
			log.Info("wrote plot", zap.String("file", out))
		}

		if store != nil {
			if _, err := store.Record(res); err != nil {
				log.Warn("record run", zap.Error(err))
			}
		}

		if !res.Passed() {
			failed = true
		}
	}

	if failed {
		exitCode = 1
	}
	return nil
}
