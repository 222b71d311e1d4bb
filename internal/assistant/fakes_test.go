package assistant

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	auditmodels "agencysite/internal/audit/models"

	"github.com/sashabaranov/go-openai"
)

type fakeModel struct {
	mu        sync.Mutex
	responses []openai.ChatCompletionResponse
	errs      []error
	requests  []openai.ChatCompletionRequest

	streamChunks []string
	streamErr    error
}

func (f *fakeModel) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	i := len(f.requests) - 1
	if i < len(f.errs) && f.errs[i] != nil {
		return openai.ChatCompletionResponse{}, f.errs[i]
	}
	if len(f.responses) == 0 {
		return openai.ChatCompletionResponse{}, errors.New("no scripted response")
	}
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i], nil
}

func (f *fakeModel) OpenChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return io.NopCloser(&chunkReader{chunks: f.streamChunks}), nil
}

// chunkReader returns exactly one chunk per Read.
type chunkReader struct {
	chunks []string
	err    error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n < len(r.chunks[0]) {
		r.chunks[0] = r.chunks[0][n:]
	} else {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

type fakeAudit struct {
	entries []auditmodels.ToolCallEntry
	err     error
}

func (f *fakeAudit) RecordToolCall(ctx context.Context, entry auditmodels.ToolCallEntry) error {
	f.entries = append(f.entries, entry)
	return f.err
}

func textResponse(text string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: text},
		}},
	}
}

func toolResponse(calls ...openai.ToolCall) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, ToolCalls: calls},
		}},
	}
}

func toolCallOf(id string, name ToolName, args string) openai.ToolCall {
	return openai.ToolCall{
		ID:   id,
		Type: openai.ToolTypeFunction,
		Function: openai.FunctionCall{
			Name:      string(name),
			Arguments: args,
		},
	}
}

func adminCtx() context.Context {
	return WithIdentity(context.Background(), Identity{UserID: "admin-1", IsAdmin: true})
}

func sseData(payload string) string {
	return "data: " + payload + "\n\n"
}

const chunkJSON = `{"id":"c1","object":"chat.completion.chunk","created":1,"model":"m","choices":[{"index":0,"delta":{"content":"Hi"}}]}`

func chunkWith(text string) string {
	return strings.Replace(chunkJSON, `"Hi"`, `"`+text+`"`, 1)
}
