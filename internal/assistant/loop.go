package assistant

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// LoopExhaustedMessage is returned when the round-trip bound is reached
// before the model produced a final answer.
const LoopExhaustedMessage = "Changes completed."

type loopState int

const (
	stateAwaitingModelResponse loopState = iota
	stateTerminal
)

type AdminReply struct {
	Content    string
	RoundTrips int
	ToolCalls  int
	Exhausted  bool
}

// RunAdmin drives the tool-calling loop for an admin conversation.
func (s *Service) RunAdmin(ctx context.Context, history []Message) (*AdminReply, error) {
	id := IdentityFromContext(ctx)
	messages := buildMessages(adminSystemPrompt(s.now()), history)
	tools := convertToOpenAITools(ToolFunctions())

	log := logrus.WithField("user_id", id.UserID)
	reply := &AdminReply{}

	state := stateAwaitingModelResponse
	for state != stateTerminal {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if reply.RoundTrips >= s.maxIterations {
			log.Warnf("admin loop stopped after %d round-trips", reply.RoundTrips)
			s.metrics.LoopExhausted()
			reply.Content = LoopExhaustedMessage
			reply.Exhausted = true
			state = stateTerminal
			continue
		}

		resp, err := s.model.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    s.chatModel,
			Messages: messages,
			Tools:    tools,
		})
		reply.RoundTrips++
		s.metrics.ModelRoundTrip()
		if err != nil {
			return nil, s.upstreamError(err)
		}
		if len(resp.Choices) == 0 {
			return nil, s.upstreamError(errors.New("no choices in model response"))
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			reply.Content = msg.Content
			if reply.Content == "" {
				reply.Content = LoopExhaustedMessage
			}
			state = stateTerminal
			continue
		}

		log.Infof("model requested %d tool calls", len(msg.ToolCalls))
		messages = append(messages, openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			Content:   msg.Content,
			ToolCalls: msg.ToolCalls,
		})
		for _, tc := range msg.ToolCalls {
			result := s.executeToolCall(ctx, id, tc)
			reply.ToolCalls++
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    result.JSON(),
				ToolCallID: tc.ID,
			})
		}
	}

	log.Infof("admin reply after %d round-trips and %d tool calls", reply.RoundTrips, reply.ToolCalls)
	return reply, nil
}
