package sink

import (
	"context"
	"testing"

	"github.com/null8bit/log-archive-processor/types"
)

func TestMemorySinkAccumulatesBatches(t *testing.T) {
	m := NewMemorySink()
	ctx := context.Background()

	info := &types.LogInfo{Country: "BR"}
	if err := m.BulkInsertCredentials(ctx, []types.Credential{
		{URL: "a.com", Username: "u", Password: "p", Info: info},
	}); err != nil {
		t.Fatalf("insert credentials: %v", err)
	}
	if err := m.BulkInsertCredentials(ctx, []types.Credential{
		{URL: "b.com", Username: "u2", Password: "p2", Info: info},
	}); err != nil {
		t.Fatalf("insert credentials: %v", err)
	}

	if err := m.BulkInsertCookieBundles(ctx, []*types.CookieBundle{
		{Info: info, Domain: "a.com"},
	}); err != nil {
		t.Fatalf("insert cookie bundles: %v", err)
	}

	if len(m.Credentials()) != 2 {
		t.Fatalf("expected 2 credentials, got %d", len(m.Credentials()))
	}
	if len(m.CookieBundles()) != 1 {
		t.Fatalf("expected 1 cookie bundle, got %d", len(m.CookieBundles()))
	}

	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
