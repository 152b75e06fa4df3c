package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/kxstack/anomaly-trainset/internal/config"
	"github.com/kxstack/anomaly-trainset/internal/corpus"
	"github.com/kxstack/anomaly-trainset/internal/dataset"
	"github.com/kxstack/anomaly-trainset/internal/metrics"
	"github.com/kxstack/anomaly-trainset/internal/utils"
	"github.com/kxstack/anomaly-trainset/internal/validate"
)

var (
	configPath string
	outputPath string
	corpusPath string
)

var rootCmd = &cobra.Command{
	Use:   "trainset-gen",
	Short: "Build fine-tuning datasets for the anomaly-analyzer model",
	Long: `trainset-gen converts a curated corpus of performance-anomaly records into
a line-delimited JSON dataset of instruction/output pairs matching the
prompt and response contract of the anomaly-analysis service, then checks
every written line against the response format.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the corpus into a JSONL dataset and validate it",
	RunE:  runGenerate,
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an existing dataset file against the response format",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file")
	generateCmd.Flags().StringVar(&outputPath, "output", "", "dataset file to write (overrides config)")
	generateCmd.Flags().StringVar(&corpusPath, "corpus", "", "scenario corpus file (default: embedded pack)")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if outputPath != "" {
		cfg.Output.Path = outputPath
	}
	if corpusPath != "" {
		cfg.Corpus.Path = corpusPath
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	records, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return err
	}
	logger.Info("corpus loaded",
		slog.Int("records", len(records)),
		slog.String("source", corpusSource(cfg.Corpus.Path)))

	stopMetrics := startMetricsServer(cfg.Metrics.Address, logger)
	defer stopMetrics()

	generator := dataset.NewGenerator(logger)
	n, err := generator.GenerateFile(records, cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("generation halted after %d examples: %w", n, err)
	}
	logger.Info("dataset written", slog.Int("examples", n), slog.String("path", cfg.Output.Path))

	return validateAndReport(cfg.Output.Path)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	return validateAndReport(args[0])
}

func validateAndReport(path string) error {
	results, err := validate.File(path)
	if err != nil {
		return err
	}
	fmt.Printf("Validation of %s:\n", path)
	validate.Report(os.Stdout, results)
	if !validate.AllPassed(results) {
		return fmt.Errorf("dataset %s failed format validation", path)
	}
	return nil
}

func corpusSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// startMetricsServer exposes /metrics while a run is in flight so long
// corpus builds can be scraped. Returns a shutdown func; a no-op when no
// address is configured.
func startMetricsServer(address string, logger *slog.Logger) func() {
	if address == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:         address,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		logger.Info("metrics server listening", slog.String("address", address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server exited", slog.Any("error", err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
	}
}
