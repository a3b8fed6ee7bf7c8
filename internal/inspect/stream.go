package inspect

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/vnode/internal/replay"
	"github.com/vango-dev/vnode/pkg/protocol"
)

const writeWait = 10 * time.Second

// Frames returns the protocol frames describing one step: its FrameStep
// frames, then its mutations, then a FrameError if the step failed.
func Frames(res *replay.Result) ([]*protocol.Frame, error) {
	frames, err := protocol.StepFrames(&protocol.StepMessage{
		Index: uint32(res.Index),
		Name:  res.Name,
		HTML:  res.HTML,
	})
	if err != nil {
		return nil, err
	}

	mutations, err := protocol.MutationFrames(uint32(res.Index), res.Mutations)
	if err != nil {
		return nil, err
	}
	frames = append(frames, mutations...)

	if res.Err != nil {
		frames = append(frames, protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(&protocol.ErrorMessage{
			Step:    uint32(res.Index),
			Code:    res.Code(),
			Message: res.Err.Error(),
		})))
	}
	return frames, nil
}

// WriteSteps writes the frames of every result to w, in order. ReadSteps
// reads them back.
func WriteSteps(w io.Writer, results []replay.Result) error {
	for i := range results {
		frames, err := Frames(&results[i])
		if err != nil {
			return fmt.Errorf("step %d: %w", results[i].Index, err)
		}
		for _, f := range frames {
			if err := protocol.WriteFrame(w, f); err != nil {
				return fmt.Errorf("step %d: %w", results[i].Index, err)
			}
		}
	}
	return nil
}

// handleWebSocket streams every step as binary frames, one frame per
// websocket message, then closes the connection normally. A step that
// cannot be encoded ends the stream with CloseInternalServerErr.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	log := s.opts.Logger.With("remote", r.RemoteAddr)
	closeWith := func(code int, text string) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(code, text),
			time.Now().Add(writeWait))
	}

	for i := range s.results {
		frames, err := Frames(&s.results[i])
		if err != nil {
			log.Warn("encode step", "step", i, "error", err)
			closeWith(websocket.CloseInternalServerErr, err.Error())
			return
		}
		for _, f := range frames {
			data, err := f.Encode()
			if err != nil {
				log.Warn("encode frame", "step", i, "frame", f.Type, "error", err)
				closeWith(websocket.CloseInternalServerErr, err.Error())
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				log.Debug("client gone", "error", err)
				return
			}
		}
	}

	closeWith(websocket.CloseNormalClosure, "done")
}
