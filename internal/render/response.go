package render

import (
	"strings"

	"github.com/kxstack/anomaly-trainset/internal/models"
)

// Response renders the canonical answer for one anomaly record: four marker
// blocks in fixed order, bullet-dash lists in input order, no blank lines
// between blocks and no trailing newline. The downstream parser tolerates no
// variance here, so the training target reproduces the shape exactly.
func Response(rec models.AnomalyRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(MarkerSummary)
	b.WriteByte(' ')
	b.WriteString(rec.Summary)
	b.WriteByte('\n')

	b.WriteString(MarkerCauses)
	b.WriteByte('\n')
	writeBullets(&b, rec.Causes)

	b.WriteString(MarkerRecommendations)
	b.WriteByte('\n')
	writeBullets(&b, rec.Recommendations)

	b.WriteString(MarkerConfidence)
	b.WriteByte(' ')
	b.WriteString(string(rec.Confidence))
	return b.String(), nil
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString(BulletPrefix)
		b.WriteString(item)
		b.WriteByte('\n')
	}
}
