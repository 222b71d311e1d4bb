package models

import (
	"time"
)

// ToolCallEntry is one executed admin tool call.
type ToolCallEntry struct {
	ID        int       `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Tool      string    `db:"tool" json:"tool"`
	CallID    string    `db:"call_id" json:"call_id"`
	Arguments string    `db:"arguments" json:"arguments"`
	Action    *string   `db:"action" json:"action,omitempty"`
	Error     *string   `db:"error" json:"error,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
