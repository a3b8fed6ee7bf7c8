package protocol

import (
	"errors"
	"fmt"

	"github.com/vango-dev/vnode/pkg/host"
)

// ErrUnknownOp is returned when a mutation carries an unknown opcode.
var ErrUnknownOp = errors.New("protocol: unknown mutation op")

// MutationBatch is one chunk of a step's mutation log.
type MutationBatch struct {
	Step      uint32
	Mutations []host.Mutation
}

// EncodeMutation appends a single mutation. Only the fields meaningful for
// the op are written.
func EncodeMutation(e *Encoder, m *host.Mutation) {
	e.WriteByte(byte(m.Op))
	e.WriteSvarint(m.Node)

	switch m.Op {
	case host.OpCreateElement, host.OpCreateText, host.OpSetClass, host.OpSetText:
		e.WriteString(m.Value)

	case host.OpInsert:
		e.WriteSvarint(m.Parent)
		e.WriteSvarint(m.Anchor)

	case host.OpRemove:
		e.WriteSvarint(m.Parent)

	case host.OpSetAttr, host.OpSetStyle:
		e.WriteString(m.Name)
		e.WriteString(m.Value)

	case host.OpRemoveAttr, host.OpRemoveStyle, host.OpAddListener, host.OpRemoveListener:
		e.WriteString(m.Name)
	}
}

// DecodeMutation reads a single mutation.
func DecodeMutation(d *Decoder) (host.Mutation, error) {
	var m host.Mutation

	op, err := d.ReadByte()
	if err != nil {
		return m, err
	}
	m.Op = host.Op(op)
	if m.Node, err = d.ReadSvarint(); err != nil {
		return m, err
	}

	switch m.Op {
	case host.OpCreateElement, host.OpCreateText, host.OpSetClass, host.OpSetText:
		m.Value, err = d.ReadString()

	case host.OpInsert:
		if m.Parent, err = d.ReadSvarint(); err != nil {
			return m, err
		}
		m.Anchor, err = d.ReadSvarint()

	case host.OpRemove:
		m.Parent, err = d.ReadSvarint()

	case host.OpSetAttr, host.OpSetStyle:
		if m.Name, err = d.ReadString(); err != nil {
			return m, err
		}
		m.Value, err = d.ReadString()

	case host.OpRemoveAttr, host.OpRemoveStyle, host.OpAddListener, host.OpRemoveListener:
		m.Name, err = d.ReadString()

	default:
		return m, fmt.Errorf("%w: 0x%02x", ErrUnknownOp, op)
	}
	return m, err
}

// EncodeMutationBatch encodes a batch to a frame payload.
// Format: [step: uvarint][count: uvarint][mutation...]
func EncodeMutationBatch(b *MutationBatch) []byte {
	e := NewEncoder()
	e.WriteUvarint(uint64(b.Step))
	e.WriteUvarint(uint64(len(b.Mutations)))
	for i := range b.Mutations {
		EncodeMutation(e, &b.Mutations[i])
	}
	return e.Bytes()
}

// DecodeMutationBatch decodes a payload written by EncodeMutationBatch.
func DecodeMutationBatch(data []byte) (*MutationBatch, error) {
	d := NewDecoder(data)

	step, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	b := &MutationBatch{Step: uint32(step), Mutations: make([]host.Mutation, 0, count)}
	for i := 0; i < count; i++ {
		m, err := DecodeMutation(d)
		if err != nil {
			return nil, fmt.Errorf("mutation %d: %w", i, err)
		}
		b.Mutations = append(b.Mutations, m)
	}
	return b, nil
}

// MutationFrames splits a step's mutation log into FrameMutations frames
// whose payloads fit MaxPayloadSize. The last frame carries FlagFinal; an
// empty log yields a single empty final frame.
func MutationFrames(step uint32, log []host.Mutation) ([]*Frame, error) {
	// Room for the step and count prefixes.
	budget := MaxPayloadSize - UvarintLen(uint64(step)) - UvarintLen(uint64(len(log)))

	var (
		frames []*Frame
		chunk  []host.Mutation
		size   int
		enc    = NewEncoder()
	)
	flush := func() {
		payload := EncodeMutationBatch(&MutationBatch{Step: step, Mutations: chunk})
		frames = append(frames, NewFrame(FrameMutations, payload))
		chunk, size = nil, 0
	}

	for i := range log {
		enc.Reset()
		EncodeMutation(enc, &log[i])
		n := enc.Len()
		if n > budget {
			return nil, fmt.Errorf("mutation %d: %w", i, ErrFrameTooLarge)
		}
		if size+n > budget {
			flush()
		}
		chunk = append(chunk, log[i])
		size += n
	}
	flush()

	frames[len(frames)-1].Flags |= FlagFinal
	return frames, nil
}
