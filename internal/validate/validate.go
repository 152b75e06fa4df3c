// Package validate re-parses a written dataset file and checks every line
// against the response format contract. Failures are collected and reported,
// never thrown: the point is a diagnostic sweep over the whole file.
package validate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kxstack/anomaly-trainset/internal/metrics"
	"github.com/kxstack/anomaly-trainset/internal/models"
	"github.com/kxstack/anomaly-trainset/internal/render"
)

// maxLineSize bounds a single dataset line. Instructions run a few KB;
// anything near this limit is already broken.
const maxLineSize = 4 * 1024 * 1024

// File checks every line of the dataset at path and returns one result per
// line. Only I/O-level failures return an error; malformed lines are
// reported through their ValidationResult.
func File(path string) ([]models.ValidationResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Lines(f)
}

// Lines checks every line read from r.
func Lines(r io.Reader) ([]models.ValidationResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var results []models.ValidationResult
	line := 0
	for scanner.Scan() {
		result := checkLine(line, scanner.Bytes())
		metrics.ObserveValidation(result.OK())
		results = append(results, result)
		line++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return results, nil
}

// AllPassed reports the aggregate verdict. An empty dataset does not pass.
func AllPassed(results []models.ValidationResult) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if !r.OK() {
			return false
		}
	}
	return true
}

func checkLine(line int, data []byte) models.ValidationResult {
	result := models.ValidationResult{Line: line}

	var example models.TrainingExample
	if err := json.Unmarshal(data, &example); err != nil {
		result.Err = fmt.Errorf("parse line: %w", err)
		return result
	}

	out := example.Output
	result.OutputLen = len(out)
	result.HasSummary = strings.Contains(out, render.MarkerSummary)
	result.HasCauses = strings.Contains(out, render.MarkerCauses)
	result.HasRecommendations = strings.Contains(out, render.MarkerRecommendations)
	result.HasConfidence = strings.Contains(out, render.MarkerConfidence)
	result.Ordered = markersOrdered(out)
	return result
}

// markersOrdered checks the four markers occur in contract order, each
// strictly after the previous one.
func markersOrdered(out string) bool {
	pos := -1
	for _, marker := range render.Markers {
		idx := strings.Index(out, marker)
		if idx < 0 || idx <= pos {
			return false
		}
		pos = idx
	}
	return true
}
