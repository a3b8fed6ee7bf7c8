package scene

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/vango-dev/vnode/internal/errors"
	"github.com/vango-dev/vnode/pkg/host"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// Scene is a parsed scene file.
type Scene struct {
	Name      string `toml:"name" json:"name"`
	KeyPolicy string `toml:"key_policy" json:"keyPolicy,omitempty"`
	Steps     []Step `toml:"step" json:"steps"`

	// OnEvent, if set, is called whenever a named handler fires.
	OnEvent func(handler string, event any) `toml:"-" json:"-"`

	path     string
	mu       sync.Mutex
	handlers map[string]*host.Handler
}

// Step is one tree to render. A step with Unmount set clears the container
// instead.
type Step struct {
	Name    string    `toml:"name" json:"name"`
	Root    *NodeSpec `toml:"root" json:"root,omitempty"`
	Unmount bool      `toml:"unmount" json:"unmount,omitempty"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.New(errors.CodeSceneParse).
			WithDetailf("%s: unknown scene format %q", path, filepath.Ext(path)).
			WithSuggestion("Use a .toml or .json file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeSceneParse).WithDetail(path).Wrap(err)
	}

	s, err := parse(data, format, path)
	if err != nil {
		return nil, err
	}
	s.path = path
	return s, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	return parse(data, format, "")
}

func parse(data []byte, format Format, path string) (*Scene, error) {
	var s Scene

	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, tomlError(err, path)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.CodeSceneInvalid).
				WithDetailf("unknown key %q", undecoded[0].String())
		}

	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, jsonError(err, data, path)
		}

	default:
		return nil, errors.New(errors.CodeSceneParse).WithDetailf("unknown scene format %q", format)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func tomlError(err error, path string) error {
	e := errors.New(errors.CodeSceneParse).Wrap(err)
	var perr toml.ParseError
	if stderrors.As(err, &perr) {
		e.WithDetail(perr.Message)
		if path != "" {
			e.WithLocation(path, perr.Position.Line, perr.Position.Col)
		}
	}
	return e
}

func jsonError(err error, data []byte, path string) error {
	e := errors.New(errors.CodeSceneParse).Wrap(err)
	var serr *json.SyntaxError
	if stderrors.As(err, &serr) && path != "" {
		line, col := lineCol(data, serr.Offset)
		e.WithLocation(path, line, col)
	}
	return e
}

// lineCol converts a byte offset to a 1-based line and column.
func lineCol(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}

// Path returns the file the scene was loaded from, if any.
func (s *Scene) Path() string {
	return s.path
}

// Validate checks every step.
func (s *Scene) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New(errors.CodeSceneInvalid).WithDetail("scene has no steps")
	}
	for i, step := range s.Steps {
		if step.Unmount {
			if step.Root != nil {
				return invalid(i, "root", "an unmount step cannot have a root")
			}
			continue
		}
		if step.Root == nil {
			return invalid(i, "root", "missing root node")
		}
		if err := step.Root.validate(i, "root"); err != nil {
			return err
		}
	}
	return nil
}

// StepName returns a display name for step i.
func (s *Scene) StepName(i int) string {
	if name := s.Steps[i].Name; name != "" {
		return name
	}
	return fmt.Sprintf("step-%d", i)
}

// Handler returns the handler bound to name, creating it on first use.
func (s *Scene) Handler(name string) *host.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handlers == nil {
		s.handlers = make(map[string]*host.Handler)
	}
	if h, ok := s.handlers[name]; ok {
		return h
	}
	h := host.NewHandler(func(event any) {
		if s.OnEvent != nil {
			s.OnEvent(name, event)
		}
	})
	s.handlers[name] = h
	return h
}

func invalid(step int, at, detail string) error {
	return errors.New(errors.CodeSceneInvalid).
		WithDetailf("step %d: %s: %s", step, at, detail)
}
