package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Harshhrajj/Logfile-analyzer/internal/aggregators"
	"github.com/Harshhrajj/Logfile-analyzer/internal/analyzer"
	"github.com/Harshhrajj/Logfile-analyzer/internal/config"
	"github.com/Harshhrajj/Logfile-analyzer/internal/dns"
	"github.com/Harshhrajj/Logfile-analyzer/internal/export"
	"github.com/Harshhrajj/Logfile-analyzer/internal/logging"
	"github.com/Harshhrajj/Logfile-analyzer/internal/logreader"
	"github.com/Harshhrajj/Logfile-analyzer/internal/tui"
	"github.com/Harshhrajj/Logfile-analyzer/internal/ui"
	"github.com/Harshhrajj/Logfile-analyzer/pkg/models"

	log "github.com/sirupsen/logrus"
)

var (
	// Global flags
	configPath string
	noColor    bool
	verbose    bool

	// analyze flags
	logFile      string
	exportFormat string
	exportFile   string
	saveResult   bool
	resolveNames bool
	topN         int

	settings config.Settings
	logger   *log.Logger
)

// RootCmd is the root command
var RootCmd = &cobra.Command{
	Use:   "logfile-analyzer",
	Short: "Security log analyzer - attack pattern detection for text logs",
	Long: `Logfile Analyzer classifies log lines into security event categories
and reports aggregate counts, per-address frequencies, and the matched
events per category.

Detected categories:
  - SQL injection attempts
  - Cross-site scripting (XSS) attempts
  - Brute force attempts
  - High-frequency sources (DDoS)`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			settings.Log.Level = 3
		}
		logger = logging.NewLogger(settings.Log)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	analyzeCmd.Flags().StringVarP(&logFile, "file", "f", "", "Log file to analyze (- for stdin)")
	analyzeCmd.Flags().StringVar(&exportFormat, "export", "", "Export format (csv, json, text)")
	analyzeCmd.Flags().StringVarP(&exportFile, "output", "o", "", "Output file for export")
	analyzeCmd.Flags().BoolVar(&saveResult, "save", false, "Persist a timestamped result file")
	analyzeCmd.Flags().BoolVar(&resolveNames, "resolve", false, "Reverse-resolve top source addresses")
	analyzeCmd.Flags().IntVar(&topN, "top", 10, "Number of top source addresses to show")

	latestCmd.Flags().BoolVar(&resolveNames, "resolve", false, "Reverse-resolve top source addresses")
	latestCmd.Flags().IntVar(&topN, "top", 10, "Number of top source addresses to show")

	RootCmd.AddCommand(analyzeCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(latestCmd)
}

// Execute runs the CLI
func Execute() error {
	return RootCmd.Execute()
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a log file for attack patterns",
	Long:  "Run one analysis over a log file (or stdin) and display the report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Tail a log file with a live attack counter view",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Display the most recent persisted analysis result",
	RunE:  runLatest,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	path := logFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no input: pass a file argument, --file, or - for stdin")
	}

	reader := logreader.NewLogReader()

	var lines <-chan logreader.Line
	var readErrors <-chan error

	if path == "-" {
		lines, readErrors = reader.ReadStdin(ctx)
	} else {
		if err := validateInput(reader, path); err != nil {
			return err
		}
		lines, readErrors = reader.ReadFile(ctx, path)
	}

	logger.WithField("file", path).Info("starting analysis")

	// One fresh analyzer per run; lines arrive pre-numbered from the
	// reader so the engine never tracks position itself.
	a := analyzer.New()
	for line := range lines {
		a.AnalyzeLine(line.Text, line.Number)
	}
	if err := <-readErrors; err != nil {
		return err
	}

	report := a.Report()
	logger.WithFields(log.Fields{
		"total_attacks": report.Stats.TotalAttacks,
		"unique_ips":    report.Stats.UniqueIPs,
	}).Info("analysis complete")

	displayReport(report)

	if saveResult {
		store := export.NewResultStore(settings.Results.Directory)
		resultPath, err := store.Save(report)
		if err != nil {
			return fmt.Errorf("failed to save result: %w", err)
		}
		logger.WithField("path", resultPath).Info("result saved")
		fmt.Printf("\nResult saved to %s\n", resultPath)
	}

	if exportFormat != "" && exportFile != "" {
		exporter := export.NewDataExporter()
		switch exportFormat {
		case "csv":
			return exporter.ExportToCSV(report, exportFile)
		case "json":
			return exporter.ExportToJSON(report, exportFile)
		case "text":
			return export.CreateReportSummary(report, exportFile)
		default:
			return fmt.Errorf("unknown export format: %s", exportFormat)
		}
	}

	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := args[0]
	reader := logreader.NewLogReader()
	if _, err := reader.Stat(path); err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}

	lines, readErrors := reader.TailFile(ctx, path, true)
	return tui.Run(path, analyzer.New(), lines, readErrors)
}

func runLatest(cmd *cobra.Command, args []string) error {
	store := export.NewResultStore(settings.Results.Directory)
	report, path, err := store.Latest()
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %s\n", path)
	displayReport(report)
	return nil
}

// validateInput applies the input limits from settings before a file
// is fed to the engine.
func validateInput(reader *logreader.LogReader, path string) error {
	info, err := reader.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	if !settings.AllowedFile(path) {
		return fmt.Errorf("invalid file type: %s (allowed: %v)", path, settings.Limits.AllowedExtensions)
	}

	if settings.Limits.MaxFileSize > 0 && info.Size > settings.Limits.MaxFileSize {
		return fmt.Errorf("file too large: %d bytes (limit %d)", info.Size, settings.Limits.MaxFileSize)
	}

	return nil
}

func displayReport(report *models.Report) {
	summary := aggregators.Summarize(report.IPFrequency, topN)

	var reverseDNS map[string]string
	if resolveNames && len(summary.TopTalkers) > 0 {
		lookup := dns.NewDNSLookup()
		ips := make([]string, len(summary.TopTalkers))
		for i, talker := range summary.TopTalkers {
			ips[i] = talker.IP
		}
		reverseDNS = lookup.BulkReverseLookup(ips)
	}

	consoleUI := ui.NewConsoleUI(!noColor)
	consoleUI.DisplayReport(report, summary, reverseDNS)
}

// Fatal prints an error the way the CLI reports failures and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
