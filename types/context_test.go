package types

import (
	"context"
	"testing"
)

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if _, ok := TraceID(ctx); ok {
		t.Fatalf("expected no trace id on empty context")
	}

	ctx = WithTraceID(ctx, "t1")
	if got, ok := TraceID(ctx); !ok || got != "t1" {
		t.Fatalf("TraceID mismatch: %v %v", got, ok)
	}

	ctx = WithRequestID(ctx, "req")
	if got, ok := RequestID(ctx); !ok || got != "req" {
		t.Fatalf("RequestID mismatch: %v %v", got, ok)
	}

	ctx = WithClientIP(ctx, "10.0.0.1")
	if got, ok := ClientIP(ctx); !ok || got != "10.0.0.1" {
		t.Fatalf("ClientIP mismatch: %v %v", got, ok)
	}

	ctx = WithRequestID(ctx, "")
	if _, ok := RequestID(ctx); ok {
		t.Fatalf("empty request id must report false")
	}
}
