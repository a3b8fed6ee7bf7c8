package memhost

import (
	"errors"
	"testing"

	"github.com/vango-dev/vnode/pkg/host"
)

func mustElement(t *testing.T, d *Document, tag string) *Node {
	t.Helper()
	n, err := d.CreateElement(tag)
	if err != nil {
		t.Fatalf("CreateElement(%q) error = %v", tag, err)
	}
	return n.(*Node)
}

func mustText(t *testing.T, d *Document, text string) *Node {
	t.Helper()
	n, err := d.CreateText(text)
	if err != nil {
		t.Fatalf("CreateText(%q) error = %v", text, err)
	}
	return n.(*Node)
}

func TestInsertBeforeOrdering(t *testing.T) {
	d := NewDocument()
	a := mustElement(t, d, "li")
	b := mustElement(t, d, "li")
	c := mustElement(t, d, "li")

	if err := d.AppendChild(d.Root(), a); err != nil {
		t.Fatal(err)
	}
	if err := d.AppendChild(d.Root(), c); err != nil {
		t.Fatal(err)
	}
	if err := d.InsertBefore(d.Root(), b, c); err != nil {
		t.Fatal(err)
	}

	got := d.Root().Children()
	want := []*Node{a, b, c}
	if len(got) != len(want) {
		t.Fatalf("len(children) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("children[%d] = #%d, want #%d", i, got[i].ID(), want[i].ID())
		}
	}
}

func TestInsertBeforeMovesAttachedNode(t *testing.T) {
	d := NewDocument()
	a := mustElement(t, d, "li")
	b := mustElement(t, d, "li")
	c := mustElement(t, d, "li")
	for _, n := range []*Node{a, b, c} {
		if err := d.AppendChild(d.Root(), n); err != nil {
			t.Fatal(err)
		}
	}

	// Move c to the front.
	if err := d.InsertBefore(d.Root(), c, a); err != nil {
		t.Fatal(err)
	}
	got := d.Root().Children()
	if got[0] != c || got[1] != a || got[2] != b {
		t.Errorf("order = [#%d #%d #%d], want [#%d #%d #%d]",
			got[0].ID(), got[1].ID(), got[2].ID(), c.ID(), a.ID(), b.ID())
	}

	// Inserting a node before itself keeps it in place.
	if err := d.InsertBefore(d.Root(), a, a); err != nil {
		t.Fatal(err)
	}
	got = d.Root().Children()
	if got[1] != a {
		t.Errorf("self-anchored insert moved node to index %d", d.Root().indexOf(a))
	}
}

func TestNextSibling(t *testing.T) {
	d := NewDocument()
	a := mustElement(t, d, "p")
	b := mustText(t, d, "x")
	_ = d.AppendChild(d.Root(), a)
	_ = d.AppendChild(d.Root(), b)

	if got := d.NextSibling(a); got != host.Node(b) {
		t.Errorf("NextSibling(a) = %v, want b", got)
	}
	if got := d.NextSibling(b); got != nil {
		t.Errorf("NextSibling(last) = %v, want nil", got)
	}
	detached := mustElement(t, d, "p")
	if got := d.NextSibling(detached); got != nil {
		t.Errorf("NextSibling(detached) = %v, want nil", got)
	}
}

func TestRemoveChildErrors(t *testing.T) {
	d := NewDocument()
	a := mustElement(t, d, "div")
	b := mustElement(t, d, "div")
	_ = d.AppendChild(d.Root(), a)

	if err := d.RemoveChild(a, b); !errors.Is(err, ErrNotChild) {
		t.Errorf("RemoveChild(non-child) error = %v, want ErrNotChild", err)
	}
	if err := d.RemoveChild(d.Root(), a); err != nil {
		t.Fatalf("RemoveChild() error = %v", err)
	}
	if _, ok := d.Node(a.ID()); ok {
		t.Error("removed node still resolvable")
	}
	if err := d.SetAttribute(a, "id", "x"); !errors.Is(err, ErrForeignNode) {
		t.Errorf("SetAttribute(removed) error = %v, want ErrForeignNode", err)
	}
}

func TestInsertCycle(t *testing.T) {
	d := NewDocument()
	outer := mustElement(t, d, "div")
	inner := mustElement(t, d, "div")
	_ = d.AppendChild(d.Root(), outer)
	_ = d.AppendChild(outer, inner)

	if err := d.AppendChild(inner, outer); !errors.Is(err, ErrCycle) {
		t.Errorf("AppendChild(ancestor) error = %v, want ErrCycle", err)
	}
}

func TestTextContentRequiresText(t *testing.T) {
	d := NewDocument()
	el := mustElement(t, d, "span")
	if err := d.SetTextContent(el, "x"); !errors.Is(err, ErrNotText) {
		t.Errorf("SetTextContent(element) error = %v, want ErrNotText", err)
	}
	txt := mustText(t, d, "a")
	if err := d.SetAttribute(txt, "id", "x"); !errors.Is(err, ErrNotElement) {
		t.Errorf("SetAttribute(text) error = %v, want ErrNotElement", err)
	}
}

func TestListenersByIdentity(t *testing.T) {
	d := NewDocument()
	el := mustElement(t, d, "button")

	var calls []string
	h1 := host.NewHandler(func(any) { calls = append(calls, "h1") })
	h2 := host.NewHandler(func(any) { calls = append(calls, "h2") })

	_ = d.AddEventListener(el, "click", h1)
	_ = d.AddEventListener(el, "click", h1) // duplicate ignored
	_ = d.AddEventListener(el, "click", h2)
	if got := len(el.Listeners("click")); got != 2 {
		t.Fatalf("listeners = %d, want 2", got)
	}

	_ = d.Dispatch(el, "click", nil)
	if len(calls) != 2 || calls[0] != "h1" || calls[1] != "h2" {
		t.Errorf("calls = %v, want [h1 h2]", calls)
	}

	_ = d.RemoveEventListener(el, "click", h1)
	calls = nil
	_ = d.Dispatch(el, "click", nil)
	if len(calls) != 1 || calls[0] != "h2" {
		t.Errorf("calls after remove = %v, want [h2]", calls)
	}
	if got := d.Count(host.OpAddListener); got != 2 {
		t.Errorf("Count(AddListener) = %d, want 2", got)
	}
}

func TestFailOn(t *testing.T) {
	d := NewDocument()
	boom := errors.New("boom")
	d.FailOn(host.OpCreateElement, boom)

	if _, err := d.CreateElement("div"); !errors.Is(err, boom) {
		t.Errorf("CreateElement() error = %v, want boom", err)
	}
	d.FailOn(host.OpCreateElement, nil)
	if _, err := d.CreateElement("div"); err != nil {
		t.Errorf("CreateElement() after clear error = %v", err)
	}
}

func TestMutationLog(t *testing.T) {
	d := NewDocument()
	el := mustElement(t, d, "p")
	_ = d.AppendChild(d.Root(), el)
	_ = d.SetAttribute(el, "id", "x")

	log := d.ResetLog()
	if len(log) != 3 {
		t.Fatalf("len(log) = %d, want 3", len(log))
	}
	wantOps := []host.Op{host.OpCreateElement, host.OpInsert, host.OpSetAttr}
	for i, op := range wantOps {
		if log[i].Op != op {
			t.Errorf("log[%d].Op = %v, want %v", i, log[i].Op, op)
		}
	}
	if log[1].Parent != d.Root().ID() || log[1].Anchor != 0 {
		t.Errorf("insert record = %+v", log[1])
	}
	if len(d.Mutations()) != 0 {
		t.Error("ResetLog did not clear the log")
	}
}
