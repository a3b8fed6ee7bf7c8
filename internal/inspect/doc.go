// Package inspect serves the results of a scene replay over HTTP.
//
// Routes:
//
//	GET /                      step index (HTML)
//	GET /steps                 step summaries (JSON)
//	GET /steps/{n}             container HTML after step n
//	GET /steps/{n}/mutations   mutation log of step n, one per line
//	GET /metrics               Prometheus metrics
//	GET /ws                    binary protocol frames for every step
//
// Each step is sent as FrameStep frames (HTML split across frames, the
// last flagged final), its FrameMutations frames and an optional
// FrameError. Stream reads /ws back into Steps; WriteSteps and ReadSteps
// do the same over any io.Writer and io.Reader.
package inspect
