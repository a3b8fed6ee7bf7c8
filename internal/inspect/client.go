package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vnode/pkg/host"
	"github.com/vango-dev/vnode/pkg/protocol"
)

// Step is one replay step reassembled from a frame stream.
type Step struct {
	Index     int
	Name      string
	HTML      string
	Mutations []host.Mutation
	Code      string // Set when the step failed
	Message   string
}

// Failed reports whether the stream carried an error for the step.
func (s *Step) Failed() bool {
	return s.Code != "" || s.Message != ""
}

// assembler turns frames back into steps. A step is complete once the
// next step starts or the stream ends.
type assembler struct {
	cur      *Step
	html     strings.Builder
	htmlDone bool
	emit     func(*Step) error
}

func (a *assembler) add(f *protocol.Frame) error {
	switch f.Type {
	case protocol.FrameStep:
		sm, err := protocol.DecodeStepMessage(f.Payload)
		if err != nil {
			return fmt.Errorf("step frame: %w", err)
		}
		if a.cur == nil || a.htmlDone || a.cur.Index != int(sm.Index) {
			if err := a.flush(); err != nil {
				return err
			}
			a.cur = &Step{Index: int(sm.Index), Name: sm.Name}
		}
		a.html.WriteString(sm.HTML)
		a.htmlDone = f.Flags.Has(protocol.FlagFinal)

	case protocol.FrameMutations:
		b, err := protocol.DecodeMutationBatch(f.Payload)
		if err != nil {
			return fmt.Errorf("mutation frame: %w", err)
		}
		if err := a.expect(int(b.Step)); err != nil {
			return err
		}
		a.cur.Mutations = append(a.cur.Mutations, b.Mutations...)

	case protocol.FrameError:
		em, err := protocol.DecodeErrorMessage(f.Payload)
		if err != nil {
			return fmt.Errorf("error frame: %w", err)
		}
		if err := a.expect(int(em.Step)); err != nil {
			return err
		}
		a.cur.Code, a.cur.Message = em.Code, em.Message
	}
	return nil
}

func (a *assembler) expect(step int) error {
	if a.cur == nil || a.cur.Index != step {
		return fmt.Errorf("inspect: frame for step %d outside its step", step)
	}
	return nil
}

func (a *assembler) flush() error {
	if a.cur == nil {
		return nil
	}
	s := a.cur
	s.HTML = a.html.String()
	a.cur, a.htmlDone = nil, false
	a.html.Reset()
	return a.emit(s)
}

// ReadSteps reads frames from r until io.EOF and calls fn with each step
// in stream order.
func ReadSteps(r io.Reader, fn func(*Step) error) error {
	a := &assembler{emit: fn}
	for {
		f, err := protocol.ReadFrame(r)
		if errors.Is(err, io.EOF) {
			return a.flush()
		}
		if err != nil {
			return err
		}
		if err := a.add(f); err != nil {
			return err
		}
	}
}

// Stream connects to a /ws endpoint and calls fn with each step in stream
// order. It returns nil once the server closes the stream normally.
func Stream(ctx context.Context, url string, fn func(*Step) error) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	a := &assembler{emit: fn}
	for {
		kind, r, err := conn.NextReader()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return a.flush()
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		f, err := protocol.ReadFrame(r)
		if err != nil {
			return err
		}
		if err := a.add(f); err != nil {
			return err
		}
	}
}
