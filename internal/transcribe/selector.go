package transcribe

// minUsableTextChars is the threshold below which a transcript is considered
// noise and scores zero regardless of strategy.
const minUsableTextChars = 10

const (
	lengthScoreDivisor = 1000.0
	lengthScoreCap     = 5.0

	segmentScoreDivisor = 10.0
	segmentScoreCap     = 3.0

	domainPrimedBonus   = 2.0
	forcedLanguageBonus = 1.0
)

// ScoreCandidate computes the heuristic quality score for one candidate:
// capped length and segment-count components plus a strategy bonus. Transcripts
// under ten characters score zero.
func ScoreCandidate(c Candidate) float64 {
	if len(c.Text) < minUsableTextChars {
		return 0
	}

	score := float64(len(c.Text)) / lengthScoreDivisor
	if score > lengthScoreCap {
		score = lengthScoreCap
	}

	segScore := float64(len(c.Segments)) / segmentScoreDivisor
	if segScore > segmentScoreCap {
		segScore = segmentScoreCap
	}
	score += segScore

	switch c.Strategy {
	case StrategyDomainPrimed:
		score += domainPrimedBonus
	case StrategyForcedLanguage:
		score += forcedLanguageBonus
	}

	return score
}

// SelectBest returns the highest-scoring candidate. Ties resolve to the
// earliest candidate in issue order, so the outcome is deterministic for
// identical inputs. ok is false when candidates is empty.
func SelectBest(candidates []Candidate) (best Candidate, ok bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	best = candidates[0]
	bestScore := ScoreCandidate(best)
	for _, c := range candidates[1:] {
		if score := ScoreCandidate(c); score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, true
}
