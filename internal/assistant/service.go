package assistant

import (
	"time"

	"agencysite/internal/content"
	"agencysite/internal/metrics"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// MaxAdminIterations bounds the model round-trips of one admin request.
const MaxAdminIterations = 5

type Config struct {
	Model         string
	MaxIterations int
	Audit         AuditRecorder
	Metrics       *metrics.Metrics
}

type Service struct {
	model         ModelClient
	store         content.Store
	chatModel     string
	maxIterations int
	audit         AuditRecorder
	metrics       *metrics.Metrics
	now           func() time.Time
}

func NewService(model ModelClient, store content.Store, cfg Config) *Service {
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 || maxIterations > MaxAdminIterations {
		maxIterations = MaxAdminIterations
	}
	chatModel := cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4Dot1
	}
	return &Service{
		model:         model,
		store:         store,
		chatModel:     chatModel,
		maxIterations: maxIterations,
		audit:         cfg.Audit,
		metrics:       cfg.Metrics,
		now:           time.Now,
	}
}

// Message is one conversation turn as sent by the browser.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// buildMessages prepends the server-owned system prompt. Client turns other
// than user and assistant are dropped.
func buildMessages(systemPrompt string, history []Message) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		switch m.Role {
		case openai.ChatMessageRoleUser, openai.ChatMessageRoleAssistant:
			messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
		default:
			logrus.Debugf("dropping client message with role %q", m.Role)
		}
	}
	return messages
}

func (s *Service) upstreamError(err error) *UpstreamError {
	upErr := ClassifyUpstream(err)
	s.metrics.UpstreamError(string(upErr.Kind))
	logrus.Errorf("model API error: %v", upErr)
	return upErr
}
