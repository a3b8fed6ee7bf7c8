package protocol

import (
	"bytes"
	"io"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		frame   Frame
		wantLen int
	}{
		{"empty_payload", Frame{Type: FrameStep, Payload: []byte{}}, FrameHeaderSize},
		{"with_payload", Frame{Type: FrameMutations, Payload: []byte{0x01, 0x02, 0x03}}, FrameHeaderSize + 3},
		{"final", Frame{Type: FrameMutations, Flags: FlagFinal, Payload: []byte("test")}, FrameHeaderSize + 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := tc.frame.Encode()
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if len(encoded) != tc.wantLen {
				t.Errorf("Encode() length = %d, want %d", len(encoded), tc.wantLen)
			}

			decoded, err := DecodeFrame(encoded)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if decoded.Type != tc.frame.Type {
				t.Errorf("Type = %v, want %v", decoded.Type, tc.frame.Type)
			}
			if decoded.Flags != tc.frame.Flags {
				t.Errorf("Flags = %v, want %v", decoded.Flags, tc.frame.Flags)
			}
			if !bytes.Equal(decoded.Payload, tc.frame.Payload) {
				t.Errorf("Payload = %v, want %v", decoded.Payload, tc.frame.Payload)
			}
		})
	}
}

func TestFrameErrors(t *testing.T) {
	big := &Frame{Type: FrameStep, Payload: make([]byte, MaxPayloadSize+1)}
	if _, err := big.Encode(); err != ErrFrameTooLarge {
		t.Errorf("Encode() error = %v, want %v", err, ErrFrameTooLarge)
	}
	if err := WriteFrame(io.Discard, big); err != ErrFrameTooLarge {
		t.Errorf("WriteFrame() error = %v, want %v", err, ErrFrameTooLarge)
	}

	if _, err := DecodeFrame([]byte{0x01, 0x00}); err != io.ErrUnexpectedEOF {
		t.Errorf("DecodeFrame(short header) error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
	if _, err := DecodeFrame([]byte{0x01, 0x00, 0x00, 0x05, 0x01}); err != io.ErrUnexpectedEOF {
		t.Errorf("DecodeFrame(short payload) error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
	if _, err := DecodeFrame([]byte{0x7F, 0x00, 0x00, 0x00}); err != ErrInvalidFrameType {
		t.Errorf("DecodeFrame(bad type) error = %v, want %v", err, ErrInvalidFrameType)
	}
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	frames := []*Frame{
		NewFrame(FrameStep, []byte("one")),
		{Type: FrameMutations, Flags: FlagFinal, Payload: []byte("two")},
	}
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatalf("WriteFrame() error = %v", err)
		}
	}

	for i, want := range frames {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame() #%d error = %v", i, err)
		}
		if got.Type != want.Type || got.Flags != want.Flags || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("ReadFrame() #%d = %+v, want %+v", i, got, want)
		}
	}
	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Errorf("ReadFrame() at end error = %v, want %v", err, io.EOF)
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := map[FrameType]string{
		FrameStep:      "Step",
		FrameMutations: "Mutations",
		FrameError:     "Error",
		FrameType(0):   "Unknown",
	}
	for ft, want := range tests {
		if got := ft.String(); got != want {
			t.Errorf("FrameType(%d).String() = %q, want %q", ft, got, want)
		}
	}
	if !FlagFinal.Has(FlagFinal) || FrameFlags(0).Has(FlagFinal) {
		t.Error("FrameFlags.Has mismatch")
	}
}
