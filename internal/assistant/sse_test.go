package assistant

import (
	"errors"
	"testing"
)

func TestFrameDecoderReassemblesSplitPrefix(t *testing.T) {
	var dec FrameDecoder

	if frames := dec.Feed([]byte("dat")); len(frames) != 0 {
		t.Fatalf("expected no frames from partial line, got %d", len(frames))
	}
	frames := dec.Feed([]byte("a: " + chunkJSON + "\n"))
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if frames[0].Data != chunkJSON {
		t.Errorf("unexpected data %q", frames[0].Data)
	}
	if got := frames[0].Chunk.Choices[0].Delta.Content; got != "Hi" {
		t.Errorf("expected delta %q, got %q", "Hi", got)
	}
	if _, err := dec.Finish(); err != nil {
		t.Errorf("unexpected error at end of stream: %v", err)
	}
}

func TestFrameDecoderJoinsUnparsableDataLines(t *testing.T) {
	var dec FrameDecoder
	half := len(chunkJSON) / 2

	frames := dec.Feed([]byte("data: " + chunkJSON[:half] + "\n"))
	if len(frames) != 0 {
		t.Fatalf("expected first half to be held, got %d frames", len(frames))
	}
	frames = dec.Feed([]byte("data: " + chunkJSON[half:] + "\n\n"))
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame after second half, got %d", len(frames))
	}
	if frames[0].Data != chunkJSON {
		t.Errorf("unexpected data %q", frames[0].Data)
	}
}

func TestFrameDecoderSkipsCommentsAndOtherFields(t *testing.T) {
	var dec FrameDecoder
	frames := dec.Feed([]byte(": keep-alive\r\nevent: message\r\n" + "data: " + chunkJSON + "\r\n\r\ndata: [DONE]\n\n"))
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].Done || !frames[1].Done {
		t.Errorf("unexpected done flags: %v %v", frames[0].Done, frames[1].Done)
	}
}

func TestFrameDecoderIncompleteAtEOF(t *testing.T) {
	var dec FrameDecoder
	dec.Feed([]byte("data: {\"id\":\"c1\",\n"))

	_, err := dec.Finish()
	if !errors.Is(err, ErrIncompleteFrame) {
		t.Fatalf("expected ErrIncompleteFrame, got %v", err)
	}
}

func TestFrameDecoderFlushesUnterminatedLastLine(t *testing.T) {
	var dec FrameDecoder
	if frames := dec.Feed([]byte("data: " + chunkJSON)); len(frames) != 0 {
		t.Fatalf("expected line to stay buffered, got %d frames", len(frames))
	}
	frames, err := dec.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
}
