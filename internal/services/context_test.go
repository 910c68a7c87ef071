package services

import (
	"context"
	"testing"
)

func TestContextHelpersRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = WithRequestID(ctx, "req-123")
	ctx = WithStage(ctx, "transcribe")
	ctx = WithAssetHash(ctx, "abcd1234")

	if id, ok := RequestIDFromContext(ctx); !ok || id != "req-123" {
		t.Fatalf("request id = %q, %v", id, ok)
	}
	if stage, ok := StageFromContext(ctx); !ok || stage != "transcribe" {
		t.Fatalf("stage = %q, %v", stage, ok)
	}
	if hash, ok := AssetHashFromContext(ctx); !ok || hash != "abcd1234" {
		t.Fatalf("asset hash = %q, %v", hash, ok)
	}
}

func TestContextHelpersIgnoreEmptyValues(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if _, ok := RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id")
	}
	ctx = WithStage(ctx, "")
	if _, ok := StageFromContext(ctx); ok {
		t.Fatal("expected no stage")
	}
}
