package content_test

import (
	"context"
	"errors"
	"testing"

	"agencysite/internal/content"
)

func TestService_PublishedFiltersAndOrders(t *testing.T) {
	store := content.NewMemoryStore()
	ctx := context.Background()

	store.Insert(ctx, content.TableServices, content.Row{"title": "B", "sort_order": 2})
	store.Insert(ctx, content.TableServices, content.Row{"title": "A", "sort_order": 1})
	store.Insert(ctx, content.TableServices, content.Row{"title": "Hidden", "sort_order": 0, "is_active": false})

	svc := content.NewService(store)
	rows, err := svc.Published(ctx, content.TableServices)
	if err != nil {
		t.Fatalf("Published() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Published() returned %d rows, want 2", len(rows))
	}
	if rows[0]["title"] != "A" || rows[1]["title"] != "B" {
		t.Errorf("Published() order = [%v %v], want [A B]", rows[0]["title"], rows[1]["title"])
	}
}

func TestService_PublishedRejectsLeads(t *testing.T) {
	svc := content.NewService(content.NewMemoryStore())
	if _, err := svc.Published(context.Background(), content.TableChatLeads); !errors.Is(err, content.ErrUnknownTable) {
		t.Errorf("Published(chat_leads) error = %v, want ErrUnknownTable", err)
	}
}

func TestService_BlogPostBySlug(t *testing.T) {
	store := content.NewMemoryStore()
	ctx := context.Background()
	store.Insert(ctx, content.TableBlogPosts, content.Row{"title": "Live", "slug": "live", "is_published": true})
	store.Insert(ctx, content.TableBlogPosts, content.Row{"title": "Draft", "slug": "draft"})

	svc := content.NewService(store)
	post, err := svc.BlogPostBySlug(ctx, "live")
	if err != nil {
		t.Fatalf("BlogPostBySlug(live) error = %v", err)
	}
	if post["title"] != "Live" {
		t.Errorf("title = %v, want Live", post["title"])
	}

	if _, err := svc.BlogPostBySlug(ctx, "draft"); !errors.Is(err, content.ErrPostNotFound) {
		t.Errorf("BlogPostBySlug(draft) error = %v, want ErrPostNotFound", err)
	}
}

func TestService_CaptureLead(t *testing.T) {
	store := content.NewMemoryStore()
	svc := content.NewService(store)
	ctx := context.Background()

	if _, err := svc.CaptureLead(ctx, content.ChatLead{Email: "a@b.co"}); !errors.Is(err, content.ErrLeadNameRequired) {
		t.Errorf("missing name error = %v", err)
	}
	if _, err := svc.CaptureLead(ctx, content.ChatLead{Name: "Sipho", Email: "not-an-email"}); !errors.Is(err, content.ErrLeadInvalidEmail) {
		t.Errorf("bad email error = %v", err)
	}

	row, err := svc.CaptureLead(ctx, content.ChatLead{Name: " Sipho ", Email: "sipho@example.com", Company: "Acme"})
	if err != nil {
		t.Fatalf("CaptureLead() error = %v", err)
	}
	if row["name"] != "Sipho" || row["company"] != "Acme" {
		t.Errorf("CaptureLead() row = %v", row)
	}
	if _, ok := row["phone"]; ok {
		t.Error("empty phone should not be stored")
	}
}
