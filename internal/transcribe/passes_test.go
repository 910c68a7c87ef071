package transcribe

import (
	"context"
	"errors"
	"sync"
	"testing"

	"leadmirror/internal/services/whisper"
)

// fakeTranscriber returns canned results keyed by the request shape: a prompt
// marks the domain-primed pass, an empty language the auto-detect pass.
type fakeTranscriber struct {
	mu       sync.Mutex
	requests []whisper.Request
	results  map[Strategy]whisper.Result
	errs     map[Strategy]error
}

func strategyOf(req whisper.Request) Strategy {
	switch {
	case req.Prompt != "":
		return StrategyDomainPrimed
	case req.Language == "":
		return StrategyAutoDetect
	default:
		return StrategyForcedLanguage
	}
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string, req whisper.Request) (whisper.Result, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	strategy := strategyOf(req)
	if err := f.errs[strategy]; err != nil {
		return whisper.Result{}, err
	}
	return f.results[strategy], nil
}

func (f *fakeTranscriber) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func sameText(text string) map[Strategy]whisper.Result {
	return map[Strategy]whisper.Result{
		StrategyForcedLanguage: {Text: text, Duration: 42},
		StrategyAutoDetect:     {Text: text, Duration: 42},
		StrategyDomainPrimed:   {Text: text, Duration: 42},
	}
}

func TestBuildRequestParameters(t *testing.T) {
	cfg := PassConfig{Language: "French", DomainPrompt: "vocabulaire commercial"}

	forced := buildRequest(StrategyForcedLanguage, cfg)
	if forced.Language != "fr" || forced.Temperature != 0 || forced.Prompt != "" {
		t.Fatalf("forced request = %+v", forced)
	}

	auto := buildRequest(StrategyAutoDetect, cfg)
	if auto.Language != "" || auto.Temperature != autoDetectTemperature {
		t.Fatalf("auto request = %+v", auto)
	}

	primed := buildRequest(StrategyDomainPrimed, cfg)
	if primed.Language != "fr" || primed.Temperature != 0 || primed.Prompt != cfg.DomainPrompt {
		t.Fatalf("primed request = %+v", primed)
	}
}

func TestRunPassesIssuesAllThree(t *testing.T) {
	fake := &fakeTranscriber{results: sameText("bonjour tout le monde")}
	outcomes := RunPasses(context.Background(), fake, "audio.wav", PassConfig{Language: "fr"})

	if fake.callCount() != 3 {
		t.Fatalf("calls = %d, want 3", fake.callCount())
	}
	if len(outcomes) != 3 {
		t.Fatalf("outcomes = %d", len(outcomes))
	}
	for i, want := range []Strategy{StrategyForcedLanguage, StrategyAutoDetect, StrategyDomainPrimed} {
		if outcomes[i].Strategy != want {
			t.Fatalf("outcome %d strategy = %s, want %s", i, outcomes[i].Strategy, want)
		}
		if outcomes[i].Err != nil {
			t.Fatalf("outcome %d failed: %v", i, outcomes[i].Err)
		}
	}
}

func TestRunPassesToleratesPartialFailure(t *testing.T) {
	fake := &fakeTranscriber{
		results: sameText("bonjour tout le monde"),
		errs: map[Strategy]error{
			StrategyAutoDetect: errors.New("service overloaded"),
		},
	}
	outcomes := RunPasses(context.Background(), fake, "audio.wav", PassConfig{Language: "fr"})

	candidates := Succeeded(outcomes)
	if len(candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(candidates))
	}
	failures := Failures(outcomes)
	if len(failures) != 1 {
		t.Fatalf("failures = %v", failures)
	}
	if fake.callCount() != 3 {
		t.Fatalf("a failing pass must not cancel its siblings, calls = %d", fake.callCount())
	}
}

func TestRunPassesAllFail(t *testing.T) {
	boom := errors.New("boom")
	fake := &fakeTranscriber{
		errs: map[Strategy]error{
			StrategyForcedLanguage: boom,
			StrategyAutoDetect:     boom,
			StrategyDomainPrimed:   boom,
		},
	}
	outcomes := RunPasses(context.Background(), fake, "audio.wav", PassConfig{Language: "fr"})
	if len(Succeeded(outcomes)) != 0 {
		t.Fatal("expected zero candidates")
	}
	if len(Failures(outcomes)) != 3 {
		t.Fatalf("failures = %v", Failures(outcomes))
	}
}

func TestRunPassesTrimsWhitespace(t *testing.T) {
	fake := &fakeTranscriber{results: map[Strategy]whisper.Result{
		StrategyForcedLanguage: {Text: "  bonjour  \n"},
		StrategyAutoDetect:     {Text: "bonjour"},
		StrategyDomainPrimed:   {Text: "bonjour"},
	}}
	outcomes := RunPasses(context.Background(), fake, "audio.wav", PassConfig{Language: "fr"})
	if got := outcomes[0].Candidate.Text; got != "bonjour" {
		t.Fatalf("text = %q", got)
	}
}
