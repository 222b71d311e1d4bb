package audit

import (
	"context"
	"testing"

	"agencysite/internal/audit/models"
)

func TestRecentToolCallsNewestFirst(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	for _, tool := range []string{"list_items", "upsert_service", "delete_item"} {
		if err := svc.RecordToolCall(ctx, models.ToolCallEntry{UserID: "u1", Tool: tool}); err != nil {
			t.Fatalf("RecordToolCall(%s): %v", tool, err)
		}
	}

	got, err := svc.RecentToolCalls(ctx, 2)
	if err != nil {
		t.Fatalf("RecentToolCalls: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Tool != "delete_item" || got[1].Tool != "upsert_service" {
		t.Errorf("unexpected order: %s, %s", got[0].Tool, got[1].Tool)
	}
}

func TestRecentToolCallsEmptyIsNotNil(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	got, err := svc.RecentToolCalls(context.Background(), 0)
	if err != nil {
		t.Fatalf("RecentToolCalls: %v", err)
	}
	if got == nil {
		t.Error("expected empty slice, got nil")
	}
}
