package render

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/vango-dev/vnode/pkg/host"
	"github.com/vango-dev/vnode/pkg/host/memhost"
	"github.com/vango-dev/vnode/pkg/vdom"
)

func hostNode(t *testing.T, v *vdom.VNode) *memhost.Node {
	t.Helper()
	n, ok := v.Host.(*memhost.Node)
	if !ok {
		t.Fatalf("vnode %s has host %T, want *memhost.Node", describe(v), v.Host)
	}
	return n
}

func TestPatchAttributes(t *testing.T) {
	tests := []struct {
		name    string
		prev    []any
		next    []any
		want    string
		wantOps map[host.Op]int
	}{
		{
			name:    "add",
			prev:    nil,
			next:    []any{vdom.Title("t")},
			want:    `<div title="t"></div>`,
			wantOps: map[host.Op]int{host.OpSetAttr: 1},
		},
		{
			name:    "change",
			prev:    []any{vdom.Title("a")},
			next:    []any{vdom.Title("b")},
			want:    `<div title="b"></div>`,
			wantOps: map[host.Op]int{host.OpSetAttr: 1},
		},
		{
			name:    "remove when absent",
			prev:    []any{vdom.Title("a"), vdom.ID("x")},
			next:    []any{vdom.ID("x")},
			want:    `<div id="x"></div>`,
			wantOps: map[host.Op]int{host.OpRemoveAttr: 1},
		},
		{
			name:    "remove when nil",
			prev:    []any{vdom.AttrOf("title", "a")},
			next:    []any{vdom.AttrOf("title", nil)},
			want:    `<div></div>`,
			wantOps: map[host.Op]int{host.OpRemoveAttr: 1},
		},
		{
			name:    "false removes",
			prev:    []any{vdom.AttrOf("disabled", true)},
			next:    []any{vdom.AttrOf("disabled", false)},
			want:    `<div></div>`,
			wantOps: map[host.Op]int{host.OpRemoveAttr: 1},
		},
		{
			name:    "class cleared",
			prev:    []any{vdom.Class("a", "b")},
			next:    nil,
			want:    `<div></div>`,
			wantOps: map[host.Op]int{host.OpSetClass: 1},
		},
		{
			name:    "class unchanged",
			prev:    []any{vdom.Class("a")},
			next:    []any{vdom.Class("a")},
			want:    `<div class="a"></div>`,
			wantOps: map[host.Op]int{},
		},
		{
			name:    "key never written",
			prev:    []any{vdom.Key("k")},
			next:    []any{vdom.Key("k")},
			want:    `<div></div>`,
			wantOps: map[host.Op]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, doc, c := newTestRenderer(t)
			mustRender(t, r, vdom.Div(tt.prev...), c)
			doc.ResetLog()

			mustRender(t, r, vdom.Div(tt.next...), c)
			if got := innerHTML(doc); got != tt.want {
				t.Errorf("html = %s, want %s", got, tt.want)
			}
			if got := len(doc.Mutations()); got != sumOps(tt.wantOps) {
				t.Errorf("mutations = %v, want %v", doc.Mutations(), tt.wantOps)
			}
			for op, n := range tt.wantOps {
				if got := doc.Count(op); got != n {
					t.Errorf("%s count = %d, want %d", op, got, n)
				}
			}
		})
	}
}

func sumOps(ops map[host.Op]int) int {
	n := 0
	for _, v := range ops {
		n += v
	}
	return n
}

func TestPatchStyle(t *testing.T) {
	r, doc, c := newTestRenderer(t)
	mustRender(t, r, vdom.Div(vdom.Style{"color": "red", "margin": "0"}), c)
	doc.ResetLog()

	mustRender(t, r, vdom.Div(vdom.Style{"color": "blue", "padding": "1px"}), c)

	want := []host.Mutation{
		{Op: host.OpSetStyle, Name: "color", Value: "blue"},
		{Op: host.OpSetStyle, Name: "padding", Value: "1px"},
		{Op: host.OpRemoveStyle, Name: "margin"},
	}
	got := doc.Mutations()
	if len(got) != len(want) {
		t.Fatalf("mutations = %v, want %d", got, len(want))
	}
	for i := range want {
		if got[i].Op != want[i].Op || got[i].Name != want[i].Name || got[i].Value != want[i].Value {
			t.Errorf("mutation[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	doc.ResetLog()
	mustRender(t, r, vdom.Div(), c)
	el := hostNode(t, c.Current())
	if names := el.StyleNames(); len(names) != 0 {
		t.Errorf("style after removal = %v, want none", names)
	}
	if got := doc.Count(host.OpRemoveStyle); got != 2 {
		t.Errorf("RemoveStyle count = %d, want 2", got)
	}
}

func TestPatchStyleRejectsScalar(t *testing.T) {
	r, _, c := newTestRenderer(t)
	node := vdom.CreateVNode("div", vdom.Props{vdom.PropStyle: "color: red"}, nil)

	err := r.Render(context.Background(), node, c)
	if !stderrors.Is(err, ErrInvalidNode) {
		t.Errorf("Render() error = %v, want %v", err, ErrInvalidNode)
	}
}

func TestPatchEvents(t *testing.T) {
	r, doc, c := newTestRenderer(t)

	var calls []string
	first := vdom.NewHandler(func(any) { calls = append(calls, "first") })
	second := vdom.NewHandler(func(any) { calls = append(calls, "second") })

	mustRender(t, r, vdom.Button(vdom.OnClick(first), "go"), c)
	btn := c.Current().Host

	// Same handler identity: nothing to do.
	doc.ResetLog()
	mustRender(t, r, vdom.Button(vdom.OnClick(first), "go"), c)
	if log := doc.Mutations(); len(log) != 0 {
		t.Errorf("rebinding the same handler applied %v", log)
	}

	// New handler: exactly one listener remains bound.
	mustRender(t, r, vdom.Button(vdom.OnClick(second), "go"), c)
	if err := doc.Dispatch(btn, "click", nil); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("calls = %v, want [second]", calls)
	}

	// Dropping the prop unbinds.
	mustRender(t, r, vdom.Button("go"), c)
	if got := hostNode(t, c.Current()).Listeners("click"); len(got) != 0 {
		t.Errorf("listeners after removal = %d, want 0", len(got))
	}
}

func TestPatchEventRejectsFunc(t *testing.T) {
	r, _, c := newTestRenderer(t)
	node := vdom.CreateVNode("button", vdom.Props{"@click": func(any) {}}, nil)

	err := r.Render(context.Background(), node, c)
	if !stderrors.Is(err, ErrInvalidNode) {
		t.Errorf("Render() error = %v, want %v", err, ErrInvalidNode)
	}
}

func TestPatchText(t *testing.T) {
	r, doc, c := newTestRenderer(t)
	mustRender(t, r, vdom.Text("a"), c)
	text := c.Current().Host

	doc.ResetLog()
	mustRender(t, r, vdom.Text("a"), c)
	if log := doc.Mutations(); len(log) != 0 {
		t.Errorf("unchanged text applied %v", log)
	}

	mustRender(t, r, vdom.Text("b"), c)
	if c.Current().Host != text {
		t.Error("text patch should reuse the host node")
	}
	if got := doc.Count(host.OpSetText); got != 1 {
		t.Errorf("SetText count = %d, want 1", got)
	}
	if got := innerHTML(doc); got != "b" {
		t.Errorf("html = %q, want %q", got, "b")
	}
}

func TestPatchReplaceKeepsPosition(t *testing.T) {
	tests := []struct {
		name   string
		middle *vdom.VNode
		want   string
	}{
		{"element to text", vdom.Text("two"), "<p>one</p>two<p>three</p>"},
		{"tag change", vdom.Span("two"), "<p>one</p><span>two</span><p>three</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, doc, c := newTestRenderer(t)
			mustRender(t, r, vdom.Div(vdom.P("one"), vdom.P("two"), vdom.P("three")), c)
			old := c.Current().Children[1].Host

			mustRender(t, r, vdom.Div(vdom.P("one"), tt.middle, vdom.P("three")), c)
			div := hostNode(t, c.Current())
			if got := doc.InnerHTML(div); got != tt.want {
				t.Errorf("html = %s, want %s", got, tt.want)
			}
			if _, ok := doc.Node(old.ID()); ok {
				t.Error("replaced node should be released")
			}
		})
	}
}

func TestPatchReplaceLastChild(t *testing.T) {
	r, doc, c := newTestRenderer(t)
	mustRender(t, r, vdom.Div(vdom.P("one"), vdom.P("two")), c)
	mustRender(t, r, vdom.Div(vdom.P("one"), vdom.Text("end")), c)

	if got, want := innerHTML(doc), "<div><p>one</p>end</div>"; got != want {
		t.Errorf("html = %s, want %s", got, want)
	}
}

func TestPatchRootReplace(t *testing.T) {
	r, doc, c := newTestRenderer(t)
	mustRender(t, r, vdom.Div("x"), c)
	mustRender(t, r, vdom.Section("y"), c)

	if got, want := innerHTML(doc), "<section>y</section>"; got != want {
		t.Errorf("html = %s, want %s", got, want)
	}
}

func TestPatchChildShapes(t *testing.T) {
	empty := func() *vdom.VNode { return vdom.Div() }
	single := func() *vdom.VNode { return vdom.Div(vdom.Span("s")) }
	multi := func() *vdom.VNode { return vdom.Div(vdom.Span("m1"), vdom.Span("m2")) }

	shapes := map[string]struct {
		build func() *vdom.VNode
		html  string
	}{
		"empty":    {empty, "<div></div>"},
		"single":   {single, "<div><span>s</span></div>"},
		"multiple": {multi, "<div><span>m1</span><span>m2</span></div>"},
	}

	for fromName, from := range shapes {
		for toName, to := range shapes {
			t.Run(fromName+"->"+toName, func(t *testing.T) {
				r, doc, c := newTestRenderer(t)
				mustRender(t, r, from.build(), c)
				mustRender(t, r, to.build(), c)
				if got := innerHTML(doc); got != to.html {
					t.Errorf("html = %s, want %s", got, to.html)
				}
			})
		}
	}
}

func TestPatchUnmounted(t *testing.T) {
	r, doc, _ := newTestRenderer(t)
	err := r.Patch(vdom.Div(), vdom.Div(), doc.Root())
	if !stderrors.Is(err, ErrInvalidNode) {
		t.Errorf("Patch() error = %v, want %v", err, ErrInvalidNode)
	}
}
