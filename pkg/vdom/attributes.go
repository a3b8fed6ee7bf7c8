package vdom

import (
	"fmt"
	"strings"
)

// Attr represents a single prop.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Key creates the reconciliation key. The key is converted to a string.
func Key(key any) Attr {
	return attr(PropKey, fmt.Sprintf("%v", key))
}

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr(PropClass, strings.Join(classes, " ")) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Title sets the title attribute.
func Title(title string) Attr { return attr("title", title) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Value sets the value attribute.
func Value(v string) Attr { return attr("value", v) }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// AttrOf creates an arbitrary attribute.
func AttrOf(name string, value any) Attr { return attr(name, value) }

type styleProp struct {
	name  string
	value string
}

// StyleProp sets one style property. Multiple StyleProp arguments to H
// merge into a single Style prop.
func StyleProp(name, value string) Attr {
	return attr(PropStyle, styleProp{name: name, value: value})
}
