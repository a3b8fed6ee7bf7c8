// Package memhost implements host.Adapter over an in-memory tree.
//
// A Document owns every node it creates and records each applied mutation
// in order. Tests use the log as an oracle ("no inserts, no removes") and
// the CLI replays it over the wire. Subtrees serialize to HTML with
// OuterHTML, escaping text and attribute values.
//
//	doc := memhost.NewDocument()
//	r := render.New(doc)
//	c := render.NewContainer(doc.Root())
//	_ = r.Render(ctx, tree, c)
//	fmt.Println(doc.InnerHTML(doc.Root()))
package memhost
