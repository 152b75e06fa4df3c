package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kxstack/anomaly-trainset/internal/models"
)

// promptTemplate is the fixed framing of the instruction. Only the
// data-bearing segments vary per record: service, operation, the duration
// line, the deviation value, the severity pair, and the attributes block.
const promptTemplate = `You are an expert in distributed systems and observability. Analyze this performance anomaly:

## Anomaly Details
- Service: %s
- Operation: %s
- Duration: %sms (expected: %sms ± %sms)
- Deviation: %sσ (standard deviations from mean)
- Severity: SEV%d (%s)

## Span Attributes
%s

Based on the trace data AND correlated metrics, provide:
1. A brief summary (1-2 sentences) of what likely caused this anomaly
2. 2-3 possible root causes (consider resource utilization if metrics show issues)
3. 2-3 actionable recommendations

Format your response as:
%s`

// Prompt renders the instruction for one anomaly record. It fails on an
// incomplete record instead of substituting defaults: a prompt that deviates
// from what the live service sends would desynchronize the training pair.
func Prompt(rec models.AnomalyRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	attrs, err := renderAttributes(rec.Attributes)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(promptTemplate,
		rec.Service,
		rec.Operation,
		formatNumber(rec.DurationMs),
		formatNumber(rec.ExpectedMeanMs),
		formatNumber(rec.ExpectedStdMs),
		formatNumber(rec.Deviation),
		rec.Severity,
		rec.SeverityName,
		attrs,
		responseSkeleton,
	), nil
}

// renderAttributes writes the span attributes as a JSON-style block with
// 2-space indentation, preserving insertion order.
func renderAttributes(attrs models.Attributes) (string, error) {
	if len(attrs) == 0 {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteString("{\n")
	for i, attr := range attrs {
		value, err := marshalScalar(attr.Value)
		if err != nil {
			return "", fmt.Errorf("attribute %q: %w", attr.Key, err)
		}
		fmt.Fprintf(&b, "  %q: %s", attr.Key, value)
		if i < len(attrs)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String(), nil
}

func marshalScalar(v any) (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	// Encode appends a newline.
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
