package assistant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const doneSentinel = "[DONE]"

var ErrIncompleteFrame = errors.New("stream ended inside an incomplete frame")

// Frame is one decoded data event of a completion stream.
type Frame struct {
	Data  string
	Done  bool
	Chunk openai.ChatCompletionStreamResponse
}

// FrameDecoder splits a raw completion stream into frames. Bytes are
// buffered until a full line is available. A data line whose payload does
// not parse is held and joined with the following data line.
type FrameDecoder struct {
	buf     []byte
	pending string
}

// Feed consumes p and returns the frames it completed.
func (d *FrameDecoder) Feed(p []byte) []Frame {
	d.buf = append(d.buf, p...)

	var frames []Frame
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimRight(d.buf[:i], "\r"))
		d.buf = d.buf[i+1:]
		if f, ok := d.decodeLine(line); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

// Finish flushes a trailing unterminated line. Anything still unparsed
// after that is an error.
func (d *FrameDecoder) Finish() ([]Frame, error) {
	var frames []Frame
	if rest := strings.TrimSpace(string(d.buf)); rest != "" {
		d.buf = nil
		if f, ok := d.decodeLine(rest); ok {
			frames = append(frames, f)
		}
	}
	if d.pending != "" {
		pending := d.pending
		d.pending = ""
		return frames, fmt.Errorf("%w: %.80q", ErrIncompleteFrame, pending)
	}
	return frames, nil
}

func (d *FrameDecoder) decodeLine(line string) (Frame, bool) {
	if line == "" || strings.HasPrefix(line, ":") {
		return Frame{}, false
	}
	payload, ok := strings.CutPrefix(line, "data:")
	if !ok {
		return Frame{}, false
	}
	payload = strings.TrimPrefix(payload, " ")

	if d.pending == "" && strings.TrimSpace(payload) == doneSentinel {
		return Frame{Data: doneSentinel, Done: true}, true
	}

	candidate := d.pending + payload
	var chunk openai.ChatCompletionStreamResponse
	if err := json.Unmarshal([]byte(candidate), &chunk); err != nil {
		d.pending = candidate
		return Frame{}, false
	}
	d.pending = ""
	return Frame{Data: candidate, Chunk: chunk}, true
}
