package snapshot

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/vango-dev/vnode/internal/errors"
	"github.com/vango-dev/vnode/pkg/host"
)

// ErrNotFound is returned when a snapshot doesn't exist.
var ErrNotFound = stderrors.New("snapshot: not found")

// Snapshot is the recorded outcome of one render step.
type Snapshot struct {
	Scene     string          `json:"scene"`
	Step      int             `json:"step"`
	Name      string          `json:"name"`
	HTML      string          `json:"html"`
	Mutations []host.Mutation `json:"mutations"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Key returns the storage key for the snapshot: "<scene>/<step>-<name>.json".
func (s *Snapshot) Key() string {
	return Key(s.Scene, s.Step, s.Name)
}

// Key builds a storage key from its parts.
func Key(scene string, step int, name string) string {
	return fmt.Sprintf("%s/%03d-%s.json", slug(scene), step, slug(name))
}

// slug keeps keys portable across filesystems and object stores.
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "untitled"
	}
	return out
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put stores s under s.Key(), replacing any previous snapshot.
	Put(ctx context.Context, s *Snapshot) error

	// Get loads the snapshot stored under key.
	Get(ctx context.Context, key string) (*Snapshot, error)

	// List returns the keys that start with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

func storeError(op, key string, err error) error {
	return errors.New(errors.CodeSnapshotStore).WithDetailf("%s %s", op, key).Wrap(err)
}
