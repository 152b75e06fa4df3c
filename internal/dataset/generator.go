package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kxstack/anomaly-trainset/internal/metrics"
	"github.com/kxstack/anomaly-trainset/internal/models"
	"github.com/kxstack/anomaly-trainset/internal/render"
	"github.com/kxstack/anomaly-trainset/internal/utils"
)

// Generator renders each corpus record into a training example and writes
// them in input order. The first render or encode failure aborts the run:
// emitting a malformed training pair is worse than emitting nothing.
type Generator struct {
	logger    *slog.Logger
	latencies *utils.LatencyTracker
}

// NewGenerator constructs a generator.
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		logger:    logger,
		latencies: utils.NewLatencyTracker(4096),
	}
}

// Generate writes one JSONL line per record to w and returns the number of
// examples written. On error the count is the number of examples completed
// before the failure; the error identifies the offending record index.
func (g *Generator) Generate(records []models.AnomalyRecord, w io.Writer) (int, error) {
	writer := NewWriter(w)
	for i, rec := range records {
		start := time.Now()
		example, err := buildExample(rec)
		if err != nil {
			metrics.ObserveExample(time.Since(start), metrics.OutcomeError)
			return i, utils.NewRecordError(i, "render", err)
		}
		if err := writer.Write(example); err != nil {
			metrics.ObserveExample(time.Since(start), metrics.OutcomeError)
			return i, utils.NewRecordError(i, "write", err)
		}
		duration := time.Since(start)
		g.latencies.Observe(duration)
		metrics.ObserveExample(duration, metrics.OutcomeSuccess)
		g.logger.Debug("example written",
			slog.Int("index", i),
			slog.String("service", rec.Service),
			slog.String("operation", rec.Operation))
	}
	if err := writer.Flush(); err != nil {
		return len(records), err
	}

	g.logger.Info("dataset generated",
		slog.Int("examples", len(records)),
		slog.Duration("render_p95", g.latencies.Percentile(95)))
	return len(records), nil
}

// GenerateFile renders the corpus into path, creating parent directories as
// needed. The file is closed before returning so a validation pass can
// re-read it.
func (g *Generator) GenerateFile(records []models.AnomalyRecord, path string) (int, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create dataset file: %w", err)
	}

	n, genErr := g.Generate(records, f)
	if closeErr := f.Close(); closeErr != nil && genErr == nil {
		return n, fmt.Errorf("close dataset file: %w", closeErr)
	}
	return n, genErr
}

func buildExample(rec models.AnomalyRecord) (models.TrainingExample, error) {
	instruction, err := render.Prompt(rec)
	if err != nil {
		return models.TrainingExample{}, err
	}
	output, err := render.Response(rec)
	if err != nil {
		return models.TrainingExample{}, err
	}
	// Input stays empty: the downstream trainer reserves it.
	return models.TrainingExample{Instruction: instruction, Output: output}, nil
}
