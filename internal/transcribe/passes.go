package transcribe

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"leadmirror/internal/language"
	"leadmirror/internal/services/whisper"
)

// autoDetectTemperature is slightly above fully deterministic decoding so the
// unpinned pass can diverge from a mis-detected language.
const autoDetectTemperature = 0.2

// Transcriber abstracts the speech-to-text client so the pipeline can be
// exercised with fakes.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, req whisper.Request) (whisper.Result, error)
}

// PassConfig describes the shared parameters for building the three passes.
type PassConfig struct {
	// Language is the pinned language identifier (normalized to ISO 639-1).
	Language string
	// DomainPrompt primes the domain-primed pass with sales vocabulary.
	DomainPrompt string
}

// PassOutcome pairs one pass's candidate with its error, exactly one of which
// is meaningful.
type PassOutcome struct {
	Strategy  Strategy
	Candidate Candidate
	Err       error
}

// buildRequest maps a strategy onto the wire-level transcription parameters.
func buildRequest(strategy Strategy, cfg PassConfig) whisper.Request {
	lang := language.ToISO1(cfg.Language)
	switch strategy {
	case StrategyForcedLanguage:
		return whisper.Request{Language: lang, Temperature: 0}
	case StrategyAutoDetect:
		return whisper.Request{Temperature: autoDetectTemperature}
	case StrategyDomainPrimed:
		return whisper.Request{Language: lang, Temperature: 0, Prompt: cfg.DomainPrompt}
	default:
		return whisper.Request{}
	}
}

// RunPasses issues the three transcription passes concurrently and returns
// their outcomes in fixed issue order (forced-language, auto-detect,
// domain-primed). Partial failure is tolerated; the caller decides whether
// zero successes is fatal.
func RunPasses(ctx context.Context, client Transcriber, audioPath string, cfg PassConfig) []PassOutcome {
	outcomes := make([]PassOutcome, len(passOrder))

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(len(passOrder))

	for i, strategy := range passOrder {
		i, strategy := i, strategy
		group.Go(func() error {
			result, err := client.Transcribe(groupCtx, audioPath, buildRequest(strategy, cfg))
			outcome := PassOutcome{Strategy: strategy}
			if err != nil {
				outcome.Err = fmt.Errorf("pass %s: %w", strategy, err)
			} else {
				outcome.Candidate = Candidate{
					Strategy: strategy,
					Text:     strings.TrimSpace(result.Text),
					Duration: result.Duration,
					Segments: result.Segments,
				}
			}
			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			// Never propagate: sibling passes must run to completion even when
			// this one fails.
			return nil
		})
	}
	_ = group.Wait()

	return outcomes
}

// Succeeded filters the outcomes down to usable candidates, preserving issue
// order.
func Succeeded(outcomes []PassOutcome) []Candidate {
	candidates := make([]Candidate, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Err == nil {
			candidates = append(candidates, outcome.Candidate)
		}
	}
	return candidates
}

// Failures collects the human-readable failure descriptions, preserving issue
// order.
func Failures(outcomes []PassOutcome) []string {
	var failures []string
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failures = append(failures, outcome.Err.Error())
		}
	}
	return failures
}
