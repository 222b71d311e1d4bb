package audit

import (
	"context"
	"fmt"

	"agencysite/internal/audit/models"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) StoreToolCall(ctx context.Context, entry models.ToolCallEntry) (int, error) {
	query := `
		INSERT INTO assistant_tool_audit (user_id, tool, call_id, arguments, action, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`

	var id int
	err := r.db.GetContext(ctx, &id, query, entry.UserID, entry.Tool, entry.CallID, entry.Arguments, entry.Action, entry.Error)
	if err != nil {
		return 0, fmt.Errorf("failed to store tool call audit: %w", err)
	}

	return id, nil
}

func (r *Repository) GetRecentToolCalls(ctx context.Context, limit int) ([]models.ToolCallEntry, error) {
	query := `
		SELECT id, user_id, tool, call_id, arguments, action, error, created_at
		FROM assistant_tool_audit
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	var entries []models.ToolCallEntry
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load tool call audit: %w", err)
	}

	logrus.Debugf("loaded %d tool call audit entries", len(entries))
	return entries, nil
}
