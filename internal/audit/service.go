package audit

import (
	"context"
	"sync"

	"agencysite/internal/audit/models"

	"github.com/sirupsen/logrus"
)

const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 200
)

// Store is implemented by Repository and MemoryRepository.
type Store interface {
	StoreToolCall(ctx context.Context, entry models.ToolCallEntry) (int, error)
	GetRecentToolCalls(ctx context.Context, limit int) ([]models.ToolCallEntry, error)
}

type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) RecordToolCall(ctx context.Context, entry models.ToolCallEntry) error {
	logrus.Debugf("recording tool call %s (%s) for user %s", entry.Tool, entry.CallID, entry.UserID)
	_, err := s.repo.StoreToolCall(ctx, entry)
	return err
}

func (s *Service) RecentToolCalls(ctx context.Context, limit int) ([]models.ToolCallEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	entries, err := s.repo.GetRecentToolCalls(ctx, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.ToolCallEntry{}
	}
	return entries, nil
}

// MemoryRepository keeps the audit trail in process memory for
// STORE_DRIVER=memory.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []models.ToolCallEntry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) StoreToolCall(ctx context.Context, entry models.ToolCallEntry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = len(m.entries) + 1
	m.entries = append(m.entries, entry)
	return entry.ID, nil
}

func (m *MemoryRepository) GetRecentToolCalls(ctx context.Context, limit int) ([]models.ToolCallEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ToolCallEntry, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}
