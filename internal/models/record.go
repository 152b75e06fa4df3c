package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AnomalyRecord is one curated performance-anomaly diagnosis: the observed
// timing deviation plus the expert analysis a model should learn to produce.
type AnomalyRecord struct {
	Service         string     `yaml:"service"`
	Operation       string     `yaml:"operation"`
	DurationMs      float64    `yaml:"duration"`
	ExpectedMeanMs  float64    `yaml:"expected_mean"`
	ExpectedStdMs   float64    `yaml:"expected_std"`
	Deviation       float64    `yaml:"deviation"`
	Severity        int        `yaml:"severity"`
	SeverityName    string     `yaml:"severity_name"`
	Attributes      Attributes `yaml:"attributes"`
	Summary         string     `yaml:"summary"`
	Causes          []string   `yaml:"causes"`
	Recommendations []string   `yaml:"recommendations"`
	Confidence      Confidence `yaml:"confidence"`
}

// Confidence labels how certain the diagnosis is.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Valid reports whether the label is one of the allowed values.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// MissingFieldError identifies the record field a renderer needs but the
// record does not carry. Rendering fails closed on it rather than defaulting.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record missing required field %q", e.Field)
}

// Validate checks that every field the renderers reference is populated and
// that constrained values are in range. Content is not inspected.
func (r AnomalyRecord) Validate() error {
	switch {
	case r.Service == "":
		return &MissingFieldError{Field: "service"}
	case r.Operation == "":
		return &MissingFieldError{Field: "operation"}
	case r.DurationMs == 0:
		return &MissingFieldError{Field: "duration"}
	case r.SeverityName == "":
		return &MissingFieldError{Field: "severity_name"}
	case r.Attributes == nil:
		return &MissingFieldError{Field: "attributes"}
	case r.Summary == "":
		return &MissingFieldError{Field: "summary"}
	case len(r.Causes) == 0:
		return &MissingFieldError{Field: "causes"}
	case len(r.Recommendations) == 0:
		return &MissingFieldError{Field: "recommendations"}
	case r.Confidence == "":
		return &MissingFieldError{Field: "confidence"}
	}
	if r.DurationMs < 0 {
		return fmt.Errorf("duration must be positive, got %v", r.DurationMs)
	}
	if r.ExpectedMeanMs < 0 || r.ExpectedStdMs < 0 {
		return fmt.Errorf("expected mean/std must be non-negative")
	}
	if r.Severity < 1 || r.Severity > 4 {
		return fmt.Errorf("severity must be 1-4, got %d", r.Severity)
	}
	if !r.Confidence.Valid() {
		return fmt.Errorf("confidence must be low, medium or high, got %q", r.Confidence)
	}
	return nil
}

// Attribute is one span attribute. Values are scalars (string, int, float,
// bool) as decoded from the corpus document.
type Attribute struct {
	Key   string
	Value any
}

// Attributes preserves the document order of span attributes. A plain map
// would lose it, and the prompt contract renders attributes in insertion
// order.
type Attributes []Attribute

// UnmarshalYAML decodes a YAML mapping keeping key order.
func (a *Attributes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("attributes must be a mapping, got %v", node.Kind)
	}
	attrs := make(Attributes, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("decode attribute %q: %w", node.Content[i].Value, err)
		}
		attrs = append(attrs, Attribute{Key: node.Content[i].Value, Value: value})
	}
	*a = attrs
	return nil
}

// TrainingExample is one line of the fine-tuning dataset. Field order in the
// struct fixes the key order on the wire. Input is reserved and always empty.
type TrainingExample struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}

// ValidationResult captures the structural checks for one written line.
type ValidationResult struct {
	Line               int
	OutputLen          int
	HasSummary         bool
	HasCauses          bool
	HasRecommendations bool
	HasConfidence      bool
	Ordered            bool
	Err                error
}

// OK reports whether the line satisfies the response format contract.
func (r ValidationResult) OK() bool {
	return r.Err == nil &&
		r.HasSummary && r.HasCauses && r.HasRecommendations && r.HasConfidence &&
		r.Ordered
}
