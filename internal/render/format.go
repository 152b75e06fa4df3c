// Package render produces the two halves of a training example: the
// instruction prompt the live analysis service builds, and the structured
// response its parser expects back. Both shapes are external contracts; the
// literal framing below must not drift from the service.
package render

// Response block markers. Shared with the validator so the renderer and the
// format check cannot disagree about the contract.
const (
	MarkerSummary         = "SUMMARY:"
	MarkerCauses          = "CAUSES:"
	MarkerRecommendations = "RECOMMENDATIONS:"
	MarkerConfidence      = "CONFIDENCE:"

	// BulletPrefix introduces each cause and recommendation line.
	BulletPrefix = "- "
)

// Markers lists the four response markers in contract order.
var Markers = []string{MarkerSummary, MarkerCauses, MarkerRecommendations, MarkerConfidence}

// responseSkeleton is the placeholder response shape shown to the model at
// the end of every prompt. Built from the marker constants so the skeleton
// and the real response renderer share one definition.
var responseSkeleton = MarkerSummary + " [your summary]\n" +
	MarkerCauses + "\n" +
	BulletPrefix + "[cause 1]\n" +
	BulletPrefix + "[cause 2]\n" +
	MarkerRecommendations + "\n" +
	BulletPrefix + "[recommendation 1]\n" +
	BulletPrefix + "[recommendation 2]\n" +
	MarkerConfidence + " [low/medium/high]"
