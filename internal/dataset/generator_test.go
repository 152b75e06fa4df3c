package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kxstack/anomaly-trainset/internal/models"
	"github.com/kxstack/anomaly-trainset/internal/utils"
)

func sampleRecord(service, operation string) models.AnomalyRecord {
	return models.AnomalyRecord{
		Service:        service,
		Operation:      operation,
		DurationMs:     125.67,
		ExpectedMeanMs: 0.45,
		ExpectedStdMs:  0.22,
		Deviation:      56.9,
		Severity:       2,
		SeverityName:   "Major",
		Attributes: models.Attributes{
			{Key: "db.system", Value: "redis"},
			{Key: "db.operation", Value: "GET"},
		},
		Summary:         "A GET took far longer than baseline.",
		Causes:          []string{"blocking command on the event loop", "background save fork"},
		Recommendations: []string{"replace KEYS with SCAN", "monitor the slowlog"},
		Confidence:      models.ConfidenceMedium,
	}
}

func TestGenerateOrderPreserved(t *testing.T) {
	records := []models.AnomalyRecord{
		sampleRecord("kx-exchange", "redis.get"),
		sampleRecord("api-gateway", "kong.proxy"),
		sampleRecord("payment-processor", "process.payment"),
	}

	var buf bytes.Buffer
	n, err := NewGenerator(nil).Generate(records, &buf)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if n != len(records) {
		t.Fatalf("expected %d examples, got %d", len(records), n)
	}

	scanner := bufio.NewScanner(&buf)
	for i := 0; scanner.Scan(); i++ {
		var example models.TrainingExample
		if err := json.Unmarshal(scanner.Bytes(), &example); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}
		want := "- Service: " + records[i].Service
		if !strings.Contains(example.Instruction, want) {
			t.Fatalf("line %d does not correspond to record %d (%s)", i, i, records[i].Service)
		}
		if example.Input != "" {
			t.Fatalf("line %d: input must be empty", i)
		}
	}
}

func TestGenerateIdempotent(t *testing.T) {
	records := []models.AnomalyRecord{
		sampleRecord("kx-exchange", "redis.get"),
		sampleRecord("kx-exchange", "order.match"),
	}

	var first, second bytes.Buffer
	if _, err := NewGenerator(nil).Generate(records, &first); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := NewGenerator(nil).Generate(records, &second); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("two runs over the same corpus differ")
	}
}

func TestGenerateFailsClosed(t *testing.T) {
	bad := sampleRecord("kx-exchange", "order.match")
	bad.Causes = nil
	records := []models.AnomalyRecord{
		sampleRecord("kx-exchange", "redis.get"),
		bad,
		sampleRecord("api-gateway", "kong.proxy"),
	}

	var buf bytes.Buffer
	n, err := NewGenerator(nil).Generate(records, &buf)
	if err == nil {
		t.Fatalf("expected error for record without causes")
	}
	if n != 1 {
		t.Fatalf("expected 1 complete example before the failure, got %d", n)
	}

	var recErr *utils.RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("expected RecordError, got %v", err)
	}
	if recErr.Index != 1 {
		t.Fatalf("expected offending index 1, got %d", recErr.Index)
	}
	var missing *models.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected wrapped MissingFieldError, got %v", err)
	}
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "dataset.jsonl")

	records := []models.AnomalyRecord{sampleRecord("kx-exchange", "redis.get")}
	n, err := NewGenerator(nil).GenerateFile(records, path)
	if err != nil {
		t.Fatalf("generate file: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 example, got %d", n)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 1 {
		t.Fatalf("expected 1 line, got %d", lines)
	}
}
