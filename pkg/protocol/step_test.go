package protocol

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStepFrames(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		frames int
	}{
		{"empty", "", 1},
		{"small", "<p>hi</p>", 1},
		{"large ascii", strings.Repeat("<li>x</li>", 7000), 2},
		{"large multibyte", strings.Repeat("é", 70000), 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frames, err := StepFrames(&StepMessage{Index: 4, Name: "step", HTML: tc.html})
			if err != nil {
				t.Fatalf("StepFrames() error = %v", err)
			}
			if len(frames) != tc.frames {
				t.Errorf("StepFrames() = %d frames, want %d", len(frames), tc.frames)
			}

			var html strings.Builder
			for i, f := range frames {
				data, err := f.Encode()
				if err != nil {
					t.Fatalf("frame %d Encode() error = %v", i, err)
				}
				decoded, err := DecodeFrame(data)
				if err != nil {
					t.Fatalf("frame %d DecodeFrame() error = %v", i, err)
				}
				if decoded.Type != FrameStep {
					t.Errorf("frame %d Type = %v, want %v", i, decoded.Type, FrameStep)
				}
				if got, want := decoded.Flags.Has(FlagFinal), i == len(frames)-1; got != want {
					t.Errorf("frame %d final = %v, want %v", i, got, want)
				}
				sm, err := DecodeStepMessage(decoded.Payload)
				if err != nil {
					t.Fatalf("frame %d DecodeStepMessage() error = %v", i, err)
				}
				if sm.Index != 4 || sm.Name != "step" {
					t.Errorf("frame %d = %d %q, want 4 \"step\"", i, sm.Index, sm.Name)
				}
				if !utf8.ValidString(sm.HTML) {
					t.Errorf("frame %d HTML chunk splits a rune", i)
				}
				html.WriteString(sm.HTML)
			}
			if html.String() != tc.html {
				t.Errorf("joined HTML length = %d, want %d", html.Len(), len(tc.html))
			}
		})
	}
}

func TestStepFramesNameTooLarge(t *testing.T) {
	_, err := StepFrames(&StepMessage{Name: strings.Repeat("n", MaxPayloadSize)})
	if err != ErrFrameTooLarge {
		t.Errorf("StepFrames() error = %v, want %v", err, ErrFrameTooLarge)
	}
}
