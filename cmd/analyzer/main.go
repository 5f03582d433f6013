// Package main is the entry point of the performance-hub CLI.
//
// The pipeline is: Loader (CSV → validated records) → AnalysisEngine
// (aggregation, classification, ranking, section comparison) →
// Presenter (console report, optional file export). Any failure stops
// before report generation; analysis is deterministic, so nothing is
// retried.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/edupulse/performance-hub/config"
	"github.com/edupulse/performance-hub/internal/application/analyze"
	"github.com/edupulse/performance-hub/internal/domain/shared"
	"github.com/edupulse/performance-hub/internal/infrastructure/loader"
	"github.com/edupulse/performance-hub/internal/interface/report"
	"github.com/edupulse/performance-hub/pkg/logger"
)

var (
	flagConfigFile string
	flagOutput     string
	flagTopN       int
	flagRisk       float64
	flagFloor      float64
	flagEpsilon    float64
	flagLogLevel   string
	flagNoSave     bool
)

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Student performance analysis hub",
	Long: `Analyzes per-student, per-subject, per-semester score records and
produces descriptive statistics, rankings, at-risk flags, trend signals,
and section comparisons as a formatted report.`,
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dataset.csv>",
	Short: "Analyze a score dataset and print the report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Println("performance-hub (unknown version)")
			return
		}
		fmt.Printf("%s %s\n", cfg.App.Name, cfg.App.Version)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&flagConfigFile, "config", "c", "", "YAML config file overriding environment settings")
	analyzeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "report file path (overrides REPORT_OUTPUT_PATH)")
	analyzeCmd.Flags().IntVar(&flagTopN, "top", 0, "standings entries to show (overrides REPORT_TOP_N)")
	analyzeCmd.Flags().Float64Var(&flagRisk, "risk-threshold", -1, "overall average below which a student is at risk")
	analyzeCmd.Flags().Float64Var(&flagFloor, "subject-floor", -1, "subject average below which a student is at risk")
	analyzeCmd.Flags().Float64Var(&flagEpsilon, "improvement-epsilon", -1, "absolute delta for improvement/decline")
	analyzeCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn, or error")
	analyzeCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "skip writing the report file")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagConfigFile != "" {
		if err := cfg.ApplyFile(flagConfigFile); err != nil {
			return err
		}
	}
	applyFlags(cfg)

	log := logger.New(logger.Options{
		Output:    os.Stderr,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.Observability.AddCaller,
	}).With(logger.Component("analyzer"))

	datasetPath := args[0]
	log.Info("loading dataset", logger.Dataset(datasetPath))

	records, err := loader.NewLoader().LoadFile(datasetPath)
	if err != nil {
		log.Error("dataset rejected", logger.Dataset(datasetPath), logger.Err(err))
		return err
	}
	log.Info("dataset loaded", logger.Dataset(datasetPath), logger.RecordCount(len(records)))

	engine, err := analyze.NewEngine(cfg.Grading())
	if err != nil {
		log.Error("engine configuration rejected", logger.Err(err))
		return err
	}

	started := time.Now()
	result, err := engine.Analyze(records)
	if err != nil {
		if shared.IsInvalidInput(err) {
			log.Error("nothing to analyze", logger.Dataset(datasetPath))
		}
		return err
	}
	log.Info("analysis complete",
		logger.RunID(result.RunID),
		logger.StudentCount(result.StudentCount),
		logger.Latency(time.Since(started)),
	)

	presenter := report.NewPresenter(report.Options{
		TopN:      cfg.Report.TopN,
		MaxAtRisk: cfg.Report.MaxAtRisk,
	})
	fmt.Fprintln(cmd.OutOrStdout(), presenter.Render(result))

	if !flagNoSave && cfg.Report.OutputPath != "" {
		if err := presenter.Save(result, cfg.Report.OutputPath); err != nil {
			log.Error("report export failed", logger.Err(err))
			return err
		}
		log.Info("report saved", logger.F("path", cfg.Report.OutputPath), logger.RunID(result.RunID))
	}

	return nil
}

// applyFlags lets command-line flags override env and file settings.
func applyFlags(cfg *config.Config) {
	if flagOutput != "" {
		cfg.Report.OutputPath = flagOutput
	}
	if flagTopN > 0 {
		cfg.Report.TopN = flagTopN
	}
	if flagRisk >= 0 {
		cfg.Analysis.RiskThreshold = flagRisk
	}
	if flagFloor >= 0 {
		cfg.Analysis.SubjectFloor = flagFloor
	}
	if flagEpsilon >= 0 {
		cfg.Analysis.ImprovementEpsilon = flagEpsilon
	}
	if flagLogLevel != "" {
		cfg.Observability.LogLevel = flagLogLevel
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
