package snapshot

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vango-dev/vnode/internal/errors"
	"github.com/vango-dev/vnode/pkg/host"
)

func sample(scene string, step int, name string) *Snapshot {
	return &Snapshot{
		Scene: scene,
		Step:  step,
		Name:  name,
		HTML:  "<ul><li>a</li></ul>",
		Mutations: []host.Mutation{
			{Op: host.OpCreateElement, Node: 2, Value: "ul"},
			{Op: host.OpInsert, Node: 2, Parent: 1},
		},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		scene string
		step  int
		name  string
		want  string
	}{
		{"reorder", 0, "initial", "reorder/000-initial.json"},
		{"My Scene!", 12, "Rotate  Right", "my-scene/012-rotate-right.json"},
		{"", 3, "../etc", "untitled/003-etc.json"},
	}
	for _, tt := range tests {
		if got := Key(tt.scene, tt.step, tt.name); got != tt.want {
			t.Errorf("Key(%q, %d, %q) = %q, want %q", tt.scene, tt.step, tt.name, got, tt.want)
		}
	}
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	for _, s := range []*Snapshot{
		sample("reorder", 1, "rotate"),
		sample("reorder", 0, "initial"),
		sample("form", 0, "initial"),
	} {
		if err := store.Put(ctx, s); err != nil {
			t.Fatalf("Put(%s) error = %v", s.Key(), err)
		}
	}

	want := sample("reorder", 1, "rotate")
	got, err := store.Get(ctx, want.Key())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	keys, err := store.List(ctx, "reorder/")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	wantKeys := []string{"reorder/000-initial.json", "reorder/001-rotate.json"}
	if !reflect.DeepEqual(keys, wantKeys) {
		t.Errorf("List() = %v, want %v", keys, wantKeys)
	}

	_, err = store.Get(ctx, "reorder/999-missing.json")
	if !stderrors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want %v", err, ErrNotFound)
	}
	if got := errors.CodeOf(err); got != errors.CodeSnapshotStore {
		t.Errorf("CodeOf() = %q, want %q", got, errors.CodeSnapshotStore)
	}
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	testStore(t, store)
}

func TestS3Store(t *testing.T) {
	fake := newFakeS3()
	store := NewS3Store(fake, "snaps", "runs")
	testStore(t, store)

	for key := range fake.objects {
		if !strings.HasPrefix(key, "runs/") {
			t.Errorf("object %q stored outside prefix", key)
		}
	}
	if ct := fake.contentType["runs/form/000-initial.json"]; ct != "application/json" {
		t.Errorf("ContentType = %q, want application/json", ct)
	}
}

func TestS3StoreErrors(t *testing.T) {
	fake := newFakeS3()
	fake.err = stderrors.New("throttled")
	store := NewS3Store(fake, "snaps", "")

	err := store.Put(context.Background(), sample("s", 0, "x"))
	if !stderrors.Is(err, fake.err) {
		t.Errorf("Put() error = %v, want wrapped %v", err, fake.err)
	}
	if _, err := store.List(context.Background(), ""); !stderrors.Is(err, fake.err) {
		t.Errorf("List() error = %v, want wrapped %v", err, fake.err)
	}
}

func TestS3StoreNonASCIINames(t *testing.T) {
	fake := newFakeS3()
	store := NewS3Store(fake, "snaps", "")

	snap := &Snapshot{Scene: "Café Menü", Step: 2, Name: "überschrift ändern", HTML: "<h1>Ä</h1>"}
	if err := store.Put(context.Background(), snap); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	key := snap.Key()
	want := map[string]string{"scene": "caf-men", "step": "2", "name": "berschrift-ndern"}
	if got := fake.metadata[key]; !reflect.DeepEqual(got, want) {
		t.Errorf("metadata = %v, want %v", got, want)
	}

	got, err := store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != snap.Name || got.HTML != snap.HTML {
		t.Errorf("Get() = %q %q, want %q %q", got.Name, got.HTML, snap.Name, snap.HTML)
	}
}

// fakeS3 is an in-memory S3API.
type fakeS3 struct {
	objects     map[string][]byte
	contentType map[string]string
	metadata    map[string]map[string]string
	err         error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		objects:     make(map[string][]byte),
		contentType: make(map[string]string),
		metadata:    make(map[string]map[string]string),
	}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	// S3 rejects user metadata that is not US-ASCII.
	for k, v := range in.Metadata {
		for _, r := range k + v {
			if r > unicode.MaxASCII {
				return nil, fmt.Errorf("metadata %s: non-ASCII value %q", k, v)
			}
		}
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Key)
	f.objects[key] = data
	f.contentType[key] = aws.ToString(in.ContentType)
	f.metadata[key] = in.Metadata
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.err != nil {
		return nil, f.err
	}
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}
