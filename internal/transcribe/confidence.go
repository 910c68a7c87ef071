package transcribe

import "leadmirror/internal/textutil"

// ConfidenceConfig tunes the agreement-to-confidence mapping. The zero value
// is not usable; callers load it from configuration.
type ConfidenceConfig struct {
	// Offset is added to the mean pairwise similarity before clamping.
	Offset float64
	// Floor is the lower clamp. The ceiling is always 1.0.
	Floor float64
	// Default is returned when fewer than two candidates are comparable.
	Default float64
}

// EstimateConfidence maps cross-pass agreement to a confidence value in
// [Floor, 1.0]. Candidates with fewer than ten characters of text are excluded
// from comparison; with fewer than two comparable candidates the configured
// default applies. Agreement is the mean pairwise Jaccard similarity over word
// sets, case-insensitive.
func EstimateConfidence(candidates []Candidate, cfg ConfidenceConfig) float64 {
	comparable := make([]map[string]struct{}, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Text) < minUsableTextChars {
			continue
		}
		comparable = append(comparable, textutil.WordSet(c.Text))
	}
	if len(comparable) < 2 {
		return cfg.Default
	}

	var total float64
	var pairs int
	for i := 0; i < len(comparable); i++ {
		for j := i + 1; j < len(comparable); j++ {
			total += textutil.Jaccard(comparable[i], comparable[j])
			pairs++
		}
	}

	confidence := total/float64(pairs) + cfg.Offset
	if confidence < cfg.Floor {
		confidence = cfg.Floor
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
