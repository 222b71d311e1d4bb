package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	auditmodels "agencysite/internal/audit/models"
	"agencysite/internal/content"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const listItemsLimit = 50

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ToolResult is what the model sees for one tool call: either data with an
// optional action, or an error message.
type ToolResult struct {
	Data   any    `json:"data,omitempty"`
	Action Action `json:"action,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (r ToolResult) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return `{"error":"failed to encode tool result"}`
	}
	return string(b)
}

// toolCall is a decoded tool invocation. The set of implementations is
// closed to this package and each carries its own handler.
type toolCall interface {
	Name() ToolName
	execute(ctx context.Context, store content.Store, now time.Time) (any, Action, error)
}

type AuditRecorder interface {
	RecordToolCall(ctx context.Context, entry auditmodels.ToolCallEntry) error
}

type listItemsCall struct {
	table           content.Table
	includeInactive bool
}

func (listItemsCall) Name() ToolName { return ToolListItems }

func (c listItemsCall) execute(ctx context.Context, store content.Store, _ time.Time) (any, Action, error) {
	q := content.Query{
		Table:      c.table,
		OrderBy:    "created_at",
		Descending: true,
		Limit:      listItemsLimit,
	}
	if col := c.table.VisibilityColumn(); col != "" && !c.includeInactive {
		q.Filters = []content.Filter{{Column: col, Value: true}}
	}
	rows, err := store.Select(ctx, q)
	if err != nil {
		return nil, "", err
	}
	if rows == nil {
		rows = []content.Row{}
	}
	return rows, "", nil
}

type upsertServiceCall struct{ input content.ServiceOffering }

func (upsertServiceCall) Name() ToolName { return ToolUpsertService }

func (c upsertServiceCall) execute(ctx context.Context, store content.Store, _ time.Time) (any, Action, error) {
	return upsert(ctx, store, content.TableServices, c.input.ID, c.input.Fields())
}

type upsertPricingPlanCall struct{ input content.PricingPlan }

func (upsertPricingPlanCall) Name() ToolName { return ToolUpsertPricingPlan }

func (c upsertPricingPlanCall) execute(ctx context.Context, store content.Store, _ time.Time) (any, Action, error) {
	fields, err := c.input.Fields()
	if err != nil {
		return nil, "", err
	}
	return upsert(ctx, store, content.TablePricingPlans, c.input.ID, fields)
}

type upsertBlogPostCall struct{ input content.BlogPost }

func (upsertBlogPostCall) Name() ToolName { return ToolUpsertBlogPost }

func (c upsertBlogPostCall) execute(ctx context.Context, store content.Store, now time.Time) (any, Action, error) {
	creating := existingID(c.input.ID) == ""
	return upsert(ctx, store, content.TableBlogPosts, c.input.ID, c.input.Fields(now, creating))
}

type upsertPortfolioItemCall struct{ input content.PortfolioItem }

func (upsertPortfolioItemCall) Name() ToolName { return ToolUpsertPortfolioItem }

func (c upsertPortfolioItemCall) execute(ctx context.Context, store content.Store, _ time.Time) (any, Action, error) {
	return upsert(ctx, store, content.TablePortfolioItems, c.input.ID, c.input.Fields())
}

type upsertTestimonialCall struct{ input content.Testimonial }

func (upsertTestimonialCall) Name() ToolName { return ToolUpsertTestimonial }

func (c upsertTestimonialCall) execute(ctx context.Context, store content.Store, _ time.Time) (any, Action, error) {
	return upsert(ctx, store, content.TableTestimonials, c.input.ID, c.input.Fields())
}

type deleteItemCall struct {
	table content.Table
	id    string
}

func (deleteItemCall) Name() ToolName { return ToolDeleteItem }

func (c deleteItemCall) execute(ctx context.Context, store content.Store, _ time.Time) (any, Action, error) {
	if err := store.Delete(ctx, c.table, c.id); err != nil {
		return nil, "", err
	}
	return map[string]string{"id": c.id, "table": string(c.table)}, ActionDeleted, nil
}

func existingID(id *string) string {
	if id == nil {
		return ""
	}
	return strings.TrimSpace(*id)
}

func upsert(ctx context.Context, store content.Store, table content.Table, id *string, fields content.Row) (any, Action, error) {
	if rowID := existingID(id); rowID != "" {
		row, err := store.Update(ctx, table, rowID, fields)
		if err != nil {
			return nil, "", err
		}
		return row, ActionUpdated, nil
	}
	row, err := store.Insert(ctx, table, fields)
	if err != nil {
		return nil, "", err
	}
	return row, ActionCreated, nil
}

// executeToolCall runs one model tool call. Every failure is turned into a
// ToolResult so the conversation can continue.
func (s *Service) executeToolCall(ctx context.Context, id Identity, tc openai.ToolCall) ToolResult {
	log := logrus.WithFields(logrus.Fields{
		"user_id": id.UserID,
		"tool":    tc.Function.Name,
		"call_id": tc.ID,
	})

	var result ToolResult
	outcome := "ok"

	call, err := decodeToolCall(tc.Function.Name, tc.Function.Arguments)
	if err != nil {
		outcome = "invalid"
		result = ToolResult{Error: err.Error()}
		log.Warnf("rejected tool call: %v", err)
	} else {
		data, action, err := call.execute(ctx, s.store, s.now())
		if err != nil {
			outcome = "error"
			result = ToolResult{Error: err.Error()}
			log.Errorf("tool call failed: %v", err)
		} else {
			result = ToolResult{Data: data, Action: action}
			log.WithField("action", action).Info("tool call executed")
		}
	}

	s.metrics.ToolCall(tc.Function.Name, outcome)
	s.recordAudit(ctx, id, tc, result)
	return result
}

func (s *Service) recordAudit(ctx context.Context, id Identity, tc openai.ToolCall, result ToolResult) {
	if s.audit == nil {
		return
	}
	entry := auditmodels.ToolCallEntry{
		UserID:    id.UserID,
		Tool:      tc.Function.Name,
		CallID:    tc.ID,
		Arguments: tc.Function.Arguments,
	}
	if result.Action != "" {
		action := string(result.Action)
		entry.Action = &action
	}
	if result.Error != "" {
		msg := result.Error
		entry.Error = &msg
	}
	if err := s.audit.RecordToolCall(ctx, entry); err != nil {
		logrus.Warnf("failed to record tool call %s: %v", tc.ID, err)
	}
}
