package replay

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/vango-dev/vnode/internal/errors"
	"github.com/vango-dev/vnode/pkg/host"
	"github.com/vango-dev/vnode/pkg/host/memhost"
	"github.com/vango-dev/vnode/pkg/render"
	"github.com/vango-dev/vnode/pkg/scene"
	"github.com/vango-dev/vnode/pkg/snapshot"
)

// Result is the outcome of one step.
type Result struct {
	Index     int
	Name      string
	HTML      string          // Container inner HTML after the step
	Mutations []host.Mutation // Host mutations applied by the step, in order
	Duration  time.Duration
	Err       error
}

// Code returns the error code of a failed step, or "".
func (r *Result) Code() string {
	if r.Err == nil {
		return ""
	}
	if code := errors.CodeOf(r.Err); code != "" {
		return code
	}
	return "unknown"
}

// Options configures a Runner.
type Options struct {
	// Policy is used unless the scene names its own key policy.
	Policy render.KeyPolicy

	// StopOnError stops Run at the first failed step.
	StopOnError bool

	Logger  *slog.Logger
	Metrics *render.Metrics

	// Stores receive a snapshot of every step.
	Stores []snapshot.Store
}

// Runner replays a scene.
type Runner struct {
	scene   *scene.Scene
	opts    Options
	doc     *memhost.Document
	r       *render.Renderer
	c       *render.Container
	next    int
	results []Result
}

// New creates a Runner for s.
func New(s *scene.Scene, opts Options) (*Runner, error) {
	policy := opts.Policy
	if s.KeyPolicy != "" {
		p, err := render.ParseKeyPolicy(s.KeyPolicy)
		if err != nil {
			return nil, errors.New(errors.CodeSceneInvalid).WithDetail("key_policy: " + err.Error())
		}
		policy = p
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Logger = opts.Logger.With("scene", s.Name)

	doc := memhost.NewDocument()
	return &Runner{
		scene: s,
		opts:  opts,
		doc:   doc,
		r: render.New(doc,
			render.WithKeyPolicy(policy),
			render.WithLogger(opts.Logger),
			render.WithMetrics(opts.Metrics),
		),
		c: render.NewContainer(doc.Root()),
	}, nil
}

// Document returns the host document the scene renders into.
func (r *Runner) Document() *memhost.Document {
	return r.doc
}

// Policy returns the key policy in effect.
func (r *Runner) Policy() render.KeyPolicy {
	return r.r.Policy()
}

// Results returns the results of the steps run so far.
func (r *Runner) Results() []Result {
	return r.results
}

// Done reports whether every step has run.
func (r *Runner) Done() bool {
	return r.next >= len(r.scene.Steps)
}

// Step runs the next step. It returns io.EOF once every step has run. A
// render failure is reported in Result.Err, not as the returned error;
// the returned error is reserved for snapshot store failures.
func (r *Runner) Step(ctx context.Context) (*Result, error) {
	if r.Done() {
		return nil, io.EOF
	}
	i := r.next
	r.next++

	res := Result{Index: i, Name: r.scene.StepName(i)}
	tree, err := r.scene.Build(i)
	if err != nil {
		res.Err = err
	} else {
		r.doc.ResetLog()
		start := time.Now()
		res.Err = r.r.Render(ctx, tree, r.c)
		res.Duration = time.Since(start)
		res.Mutations = r.doc.ResetLog()
	}
	res.HTML = r.doc.InnerHTML(r.doc.Root())

	log := r.opts.Logger.With("step", i, "name", res.Name)
	if res.Err != nil {
		log.Warn("step failed", "code", res.Code(), "error", res.Err)
	} else {
		log.Info("step rendered", "mutations", len(res.Mutations), "duration", res.Duration)
	}

	r.results = append(r.results, res)
	if err := r.snapshot(ctx, &res); err != nil {
		return &res, err
	}
	return &res, nil
}

// Run runs every remaining step.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return r.results, err
		}
		res, err := r.Step(ctx)
		if err != nil {
			return r.results, err
		}
		if res.Err != nil && r.opts.StopOnError {
			break
		}
	}
	return r.results, nil
}

func (r *Runner) snapshot(ctx context.Context, res *Result) error {
	if len(r.opts.Stores) == 0 {
		return nil
	}
	snap := &snapshot.Snapshot{
		Scene:     r.scene.Name,
		Step:      res.Index,
		Name:      res.Name,
		HTML:      res.HTML,
		Mutations: res.Mutations,
		CreatedAt: time.Now().UTC(),
	}
	if res.Err != nil {
		snap.Error = res.Err.Error()
	}
	for _, store := range r.opts.Stores {
		if err := store.Put(ctx, snap); err != nil {
			return err
		}
	}
	return nil
}
