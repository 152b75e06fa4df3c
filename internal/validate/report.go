package validate

import (
	"fmt"
	"io"

	"github.com/kxstack/anomaly-trainset/internal/models"
)

const (
	glyphPass = "✅"
	glyphFail = "❌"
)

// Report writes the human-readable per-line breakdown and aggregate verdict.
// Informational only; callers decide the exit code from AllPassed.
func Report(w io.Writer, results []models.ValidationResult) {
	for _, r := range results {
		glyph := glyphPass
		if !r.OK() {
			glyph = glyphFail
		}
		if r.Err != nil {
			fmt.Fprintf(w, "  [%2d] %s %v\n", r.Line, glyph, r.Err)
			continue
		}
		fmt.Fprintf(w, "  [%2d] %s len=%5d S=%t C=%t R=%t CF=%t ordered=%t\n",
			r.Line, glyph, r.OutputLen,
			r.HasSummary, r.HasCauses, r.HasRecommendations, r.HasConfidence,
			r.Ordered)
	}

	if AllPassed(results) {
		fmt.Fprintf(w, "\n%s all %d lines valid\n", glyphPass, len(results))
	} else {
		fmt.Fprintf(w, "\n%s dataset has invalid lines\n", glyphFail)
	}
}
