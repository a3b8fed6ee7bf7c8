package protocol

import "unicode/utf8"

// StepMessage reports a finished render step.
type StepMessage struct {
	Index uint32 // Zero-based step index
	Name  string // Step name from the scene
	HTML  string // Container inner HTML after the step, or a chunk of it
}

// EncodeStepMessage encodes a StepMessage to bytes.
func EncodeStepMessage(sm *StepMessage) []byte {
	e := NewEncoder()
	e.WriteUvarint(uint64(sm.Index))
	e.WriteString(sm.Name)
	e.WriteString(sm.HTML)
	return e.Bytes()
}

// DecodeStepMessage decodes a StepMessage from bytes.
func DecodeStepMessage(data []byte) (*StepMessage, error) {
	d := NewDecoder(data)

	index, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	name, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	html, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &StepMessage{Index: uint32(index), Name: name, HTML: html}, nil
}

// StepFrames encodes sm as one or more FrameStep frames. HTML that does
// not fit one payload is split on rune boundaries; every frame repeats the
// index and name, and the last one carries FlagFinal. Concatenating the
// HTML of the frames in order yields sm.HTML.
func StepFrames(sm *StepMessage) ([]*Frame, error) {
	// Room for the index, the name and the chunk's length prefix.
	budget := MaxPayloadSize - UvarintLen(uint64(sm.Index)) -
		UvarintLen(uint64(len(sm.Name))) - len(sm.Name) - UvarintLen(MaxPayloadSize)
	if budget < utf8.UTFMax {
		return nil, ErrFrameTooLarge
	}

	var frames []*Frame
	html := sm.HTML
	for {
		n := len(html)
		if n > budget {
			n = budget
			for !utf8.RuneStart(html[n]) {
				n--
			}
		}
		payload := EncodeStepMessage(&StepMessage{Index: sm.Index, Name: sm.Name, HTML: html[:n]})
		frames = append(frames, NewFrame(FrameStep, payload))
		html = html[n:]
		if html == "" {
			break
		}
	}

	frames[len(frames)-1].Flags |= FlagFinal
	return frames, nil
}
