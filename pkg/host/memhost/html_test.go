package memhost

import "testing"

func TestOuterHTML(t *testing.T) {
	d := NewDocument()
	ul := mustElement(t, d, "ul")
	li := mustElement(t, d, "li")
	br := mustElement(t, d, "br")
	txt := mustText(t, d, "a < b & c")

	_ = d.SetClassName(ul, "list")
	_ = d.SetStyle(ul, "color", "red")
	_ = d.SetStyle(ul, "margin", "0")
	_ = d.SetAttribute(ul, "title", `say "hi"`)
	_ = d.SetAttribute(ul, "data-id", "7")
	_ = d.AppendChild(ul, li)
	_ = d.AppendChild(li, txt)
	_ = d.AppendChild(li, br)
	_ = d.AppendChild(d.Root(), ul)

	want := `<ul class="list" style="color: red; margin: 0" data-id="7" title="say &quot;hi&quot;">` +
		`<li>a &lt; b &amp; c<br></li></ul>`
	if got := d.OuterHTML(ul); got != want {
		t.Errorf("OuterHTML() =\n%s\nwant\n%s", got, want)
	}
	if got := d.InnerHTML(d.Root()); got != want {
		t.Errorf("InnerHTML(root) =\n%s\nwant\n%s", got, want)
	}
}

func TestEscapeAttrWhitespace(t *testing.T) {
	if got, want := escapeAttr("a\nb\tc"), "a&#10;b&#9;c"; got != want {
		t.Errorf("escapeAttr() = %q, want %q", got, want)
	}
}
