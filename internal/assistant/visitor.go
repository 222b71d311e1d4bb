package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const readBufferSize = 4096

// LeadPromptThreshold is the number of visitor messages after which the
// contact form is offered.
const LeadPromptThreshold = 3

// ShouldPromptForLead reports whether this reply should offer the lead
// form. It fires once: after the third user message, and never again once
// a lead was captured or the form was shown.
func ShouldPromptForLead(history []Message, leadCaptured, leadPrompted bool) bool {
	if leadCaptured || leadPrompted {
		return false
	}
	users := 0
	for _, m := range history {
		if m.Role == openai.ChatMessageRoleUser {
			users++
		}
	}
	return users >= LeadPromptThreshold
}

// VisitorStream is an open upstream stream ready to be relayed.
type VisitorStream struct {
	body io.ReadCloser
}

// OpenVisitorStream starts a streaming completion for a visitor. Upstream
// failures are returned before anything is written to the caller.
func (s *Service) OpenVisitorStream(ctx context.Context, history []Message) (*VisitorStream, error) {
	body, err := s.model.OpenChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    s.chatModel,
		Messages: buildMessages(visitorSystemPrompt, history),
		Stream:   true,
	})
	s.metrics.ModelRoundTrip()
	if err != nil {
		return nil, s.upstreamError(err)
	}
	return &VisitorStream{body: body}, nil
}

// Relay copies frames to w as server-sent events, calling flush after each,
// and always terminates the output with the done sentinel. It returns the
// assembled reply text.
func (vs *VisitorStream) Relay(w io.Writer, flush func()) (string, error) {
	defer vs.body.Close()

	var (
		dec   FrameDecoder
		reply strings.Builder
		done  bool
	)
	emit := func(frames []Frame) error {
		for _, f := range frames {
			if done {
				return nil
			}
			if f.Done {
				done = true
			} else if len(f.Chunk.Choices) > 0 {
				reply.WriteString(f.Chunk.Choices[0].Delta.Content)
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", f.Data); err != nil {
				return fmt.Errorf("error writing event: %w", err)
			}
			flush()
		}
		return nil
	}

	buf := make([]byte, readBufferSize)
	for !done {
		n, readErr := vs.body.Read(buf)
		if n > 0 {
			if err := emit(dec.Feed(buf[:n])); err != nil {
				return reply.String(), err
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			vs.fail(w, flush)
			return reply.String(), &UpstreamError{Kind: ErrorUpstream, Err: fmt.Errorf("error reading model stream: %w", readErr)}
		}
	}

	if !done {
		frames, err := dec.Finish()
		if emitErr := emit(frames); emitErr != nil {
			return reply.String(), emitErr
		}
		if err != nil {
			vs.fail(w, flush)
			return reply.String(), &UpstreamError{Kind: ErrorUpstream, Err: err}
		}
	}
	if !done {
		if _, err := fmt.Fprintf(w, "data: %s\n\n", doneSentinel); err != nil {
			return reply.String(), fmt.Errorf("error writing event: %w", err)
		}
		flush()
	}
	return reply.String(), nil
}

// fail reports a fatal stream error in-band. Headers are already sent so
// the status code can no longer change.
func (vs *VisitorStream) fail(w io.Writer, flush func()) {
	if _, err := fmt.Fprintf(w, "data: {\"error\":%q}\n\ndata: %s\n\n", ErrorUpstream.Message(), doneSentinel); err != nil {
		logrus.Debugf("error writing stream failure event: %v", err)
		return
	}
	flush()
}
