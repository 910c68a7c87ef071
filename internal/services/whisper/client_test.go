package whisper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"leadmirror/internal/testsupport"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "call.wav")
	testsupport.WriteFile(t, path, 2048)
	return path
}

func TestTranscribeSendsMultipartFields(t *testing.T) {
	var gotModel, gotLanguage, gotPrompt, gotFormat string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		gotPrompt = r.FormValue("prompt")
		gotFormat = r.FormValue("response_format")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("form file: %v", err)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(Result{
			Text:     "bonjour tout le monde",
			Language: "fr",
			Duration: 30,
			Segments: []Segment{{ID: 0, Start: 0, End: 3, Text: "bonjour tout le monde"}},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", BaseURL: server.URL, Model: "whisper-1"})
	result, err := client.Transcribe(context.Background(), writeAudio(t), Request{
		Language:    "fr",
		Temperature: 0,
		Prompt:      "vocabulaire commercial",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Text != "bonjour tout le monde" {
		t.Fatalf("text = %q", result.Text)
	}
	if gotModel != "whisper-1" || gotLanguage != "fr" || gotPrompt != "vocabulaire commercial" {
		t.Fatalf("fields = %q %q %q", gotModel, gotLanguage, gotPrompt)
	}
	if gotFormat != "verbose_json" {
		t.Fatalf("response_format = %q", gotFormat)
	}
	if len(result.Segments) != 1 {
		t.Fatalf("segments = %d", len(result.Segments))
	}
}

func TestTranscribeOmitsEmptyLanguage(t *testing.T) {
	var hadLanguage bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(32 << 20)
		_, hadLanguage = r.MultipartForm.Value["language"]
		_ = json.NewEncoder(w).Encode(Result{Text: "hello"})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "secret", BaseURL: server.URL})
	if _, err := client.Transcribe(context.Background(), writeAudio(t), Request{Temperature: 0.2}); err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if hadLanguage {
		t.Fatal("language field should be omitted for auto-detect")
	}
}

func TestTranscribeRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"error":"overloaded"}`, http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(Result{Text: "recovered"})
	}))
	defer server.Close()

	client := NewClient(
		Config{APIKey: "secret", BaseURL: server.URL, RetryAttempts: 2},
		WithSleeper(func(time.Duration) {}),
	)
	result, err := client.Transcribe(context.Background(), writeAudio(t), Request{})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Text != "recovered" {
		t.Fatalf("text = %q", result.Text)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d", calls.Load())
	}
}

func TestTranscribeDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"bad file"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(
		Config{APIKey: "secret", BaseURL: server.URL, RetryAttempts: 3},
		WithSleeper(func(time.Duration) {}),
	)
	if _, err := client.Transcribe(context.Background(), writeAudio(t), Request{}); err == nil {
		t.Fatal("expected error for 400")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestTranscribeRejectsEmptyTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Result{Text: "   "})
	}))
	defer server.Close()

	client := NewClient(
		Config{APIKey: "secret", BaseURL: server.URL},
		WithSleeper(func(time.Duration) {}),
	)
	if _, err := client.Transcribe(context.Background(), writeAudio(t), Request{}); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestTranscribeRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.Transcribe(context.Background(), writeAudio(t), Request{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestTranscribeCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(Config{APIKey: "secret", BaseURL: server.URL, RetryAttempts: 3})
	if _, err := client.Transcribe(ctx, writeAudio(t), Request{}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "ok", status: http.StatusOK},
		{name: "auth failure", status: http.StatusUnauthorized, wantErr: true},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/models" {
					t.Errorf("path = %q", r.URL.Path)
				}
				if r.Header.Get("Authorization") != "Bearer secret" {
					t.Errorf("auth header = %q", r.Header.Get("Authorization"))
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(Config{APIKey: "secret", BaseURL: server.URL})
			err := client.HealthCheck(context.Background())
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("HealthCheck: %v", err)
			}
		})
	}
}

func TestHealthCheckRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{})
	if err := client.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestBackoffDelayGrows(t *testing.T) {
	client := NewClient(Config{APIKey: "k"}, WithRetryBackoff(time.Second, 10*time.Second))
	first := client.backoffDelay(1)
	second := client.backoffDelay(2)
	third := client.backoffDelay(5)
	if first != time.Second {
		t.Fatalf("first = %v", first)
	}
	if second != 2*time.Second {
		t.Fatalf("second = %v", second)
	}
	if third > 10*time.Second {
		t.Fatalf("third exceeds cap: %v", third)
	}
}
