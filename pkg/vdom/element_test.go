package vdom

import "testing"

func TestHSingleAndMultiple(t *testing.T) {
	if n := P("hello"); n.Shape != ShapeSingle || n.Child().Text != "hello" {
		t.Errorf("P(text) = %+v, want single text child", n)
	}
	if n := Div(Span()); n.Shape != ShapeSingle {
		t.Errorf("Div(Span()) Shape = %v, want Single", n.Shape)
	}
	if n := Div(Span(), Span()); n.Shape != ShapeMultiple || len(n.Children) != 2 {
		t.Errorf("Div(Span(), Span()) = %v/%d, want Multiple/2", n.Shape, len(n.Children))
	}
	// A spread list stays multiple even with one element.
	if n := Ul([]*VNode{Li(Key("a"))}); n.Shape != ShapeMultiple {
		t.Errorf("Ul([]*VNode{...}) Shape = %v, want Multiple", n.Shape)
	}
	if n := Ul([]*VNode{}); n.Shape != ShapeEmpty {
		t.Errorf("Ul(empty list) Shape = %v, want Empty", n.Shape)
	}
	if n := Div(); n.Shape != ShapeEmpty || n.Props != nil {
		t.Errorf("Div() = %+v, want empty", n)
	}
}

func TestHProps(t *testing.T) {
	h := NewHandler(func(any) {})
	n := Li(
		Key(3),
		Class("a", "b"),
		ID("x"),
		nil,
		[]Attr{Data("id", "7"), {}},
		StyleProp("color", "red"),
		StyleProp("margin", "0"),
		OnClick(h),
		"text",
	)

	if n.Key != "3" {
		t.Errorf("Key = %q, want 3", n.Key)
	}
	if n.Props[PropClass] != "a b" {
		t.Errorf("class = %v, want 'a b'", n.Props[PropClass])
	}
	if n.Props["id"] != "x" || n.Props["data-id"] != "7" {
		t.Errorf("attrs = %v", n.Props)
	}
	style, ok := n.Props[PropStyle].(Style)
	if !ok || style["color"] != "red" || style["margin"] != "0" {
		t.Errorf("style = %#v, want color+margin", n.Props[PropStyle])
	}
	if n.Props["@click"] != h {
		t.Errorf("@click = %v, want handler", n.Props["@click"])
	}
	if _, ok := n.Props[""]; ok {
		t.Error("empty attr stored")
	}
}

func TestHStyleMap(t *testing.T) {
	n := Div(Style{"color": "blue"}, StyleProp("width", "1px"))
	style := n.Props[PropStyle].(Style)
	if len(style) != 2 || style["color"] != "blue" || style["width"] != "1px" {
		t.Errorf("style = %v", style)
	}
}

func TestHDoesNotMutateSharedStyle(t *testing.T) {
	shared := Style{"color": "blue"}
	_ = Div(AttrOf(PropStyle, shared), StyleProp("width", "1px"))
	if len(shared) != 1 {
		t.Errorf("shared style mutated: %v", shared)
	}
}

func TestOnIgnoresNilHandler(t *testing.T) {
	n := Button(On("click", nil))
	if _, ok := n.Props["@click"]; ok {
		t.Error("nil handler bound")
	}
}
