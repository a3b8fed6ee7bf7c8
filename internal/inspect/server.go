package inspect

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vnode/internal/replay"
)

// Options configures a Server.
type Options struct {
	Scene    string
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer // Defaults to prometheus.DefaultGatherer
}

// Server serves replay results.
type Server struct {
	results  []replay.Result
	opts     Options
	router   chi.Router
	upgrader websocket.Upgrader
}

// StepSummary is the JSON form of a step.
type StepSummary struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Mutations int    `json:"mutations"`
	Duration  string `json:"duration"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
}

// New creates a Server over the given results.
func New(results []replay.Result, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		results: results,
		opts:    opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Local inspection tool
			},
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/steps", s.handleSteps)
	r.Get("/steps/{n}", s.handleStepHTML)
	r.Get("/steps/{n}/mutations", s.handleStepMutations)
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/ws", s.handleWebSocket)

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) step(w http.ResponseWriter, r *http.Request) (*replay.Result, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 0 || n >= len(s.results) {
		http.NotFound(w, r)
		return nil, false
	}
	return &s.results[n], true
}

func (s *Server) summaries() []StepSummary {
	out := make([]StepSummary, 0, len(s.results))
	for i := range s.results {
		res := &s.results[i]
		sum := StepSummary{
			Index:     res.Index,
			Name:      res.Name,
			Mutations: len(res.Mutations),
			Duration:  res.Duration.String(),
			Code:      res.Code(),
		}
		if res.Err != nil {
			sum.Error = res.Err.Error()
		}
		out = append(out, sum)
	}
	return out
}

func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.summaries()); err != nil {
		s.opts.Logger.Warn("encode steps", "error", err)
	}
}

func (s *Server) handleStepHTML(w http.ResponseWriter, r *http.Request) {
	res, ok := s.step(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, res.HTML)
}

func (s *Server) handleStepMutations(w http.ResponseWriter, r *http.Request) {
	res, ok := s.step(w, r)
	if !ok {
		return
	}
	var b strings.Builder
	for _, m := range res.Mutations {
		b.WriteString(m.String())
		b.WriteByte('\n')
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, b.String())
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Scene}}</title></head>
<body>
<h1>{{.Scene}}</h1>
<ol start="0">
{{- range .Steps}}
<li><a href="/steps/{{.Index}}">{{.Name}}</a> ({{.Mutations}} mutations, <a href="/steps/{{.Index}}/mutations">log</a>){{if .Code}} <strong>{{.Code}}</strong>{{end}}</li>
{{- end}}
</ol>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Scene string
		Steps []StepSummary
	}{s.opts.Scene, s.summaries()}
	if err := indexTemplate.Execute(w, data); err != nil {
		s.opts.Logger.Warn("render index", "error", err)
	}
}
