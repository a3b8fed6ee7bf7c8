package render

import (
	"github.com/vango-dev/vnode/internal/errors"
	"github.com/vango-dev/vnode/pkg/vdom"
)

// Sentinels for errors.Is. Errors returned by the renderer carry the same
// codes plus detail about the offending node.
var (
	ErrUnsupportedNodeKind = errors.New(errors.CodeUnsupportedNodeKind)
	ErrHostAdapter         = errors.New(errors.CodeHostAdapterFailure)
	ErrDuplicateKey        = errors.New(errors.CodeDuplicateKey)
	ErrMissingKey          = errors.New(errors.CodeMissingKey)
	ErrNoContainerRoot     = errors.New(errors.CodeNoContainerRoot)
	ErrInvalidNode         = errors.New(errors.CodeInvalidNode)
)

func unsupported(node *vdom.VNode) error {
	return errors.New(errors.CodeUnsupportedNodeKind).
		WithDetailf("%s nodes are not rendered", node.Kind)
}

func invalidNode(format string, args ...any) error {
	return errors.New(errors.CodeInvalidNode).WithDetailf(format, args...)
}

func hostFailure(op string, err error) error {
	return errors.New(errors.CodeHostAdapterFailure).WithDetail(op).Wrap(err)
}

func describe(node *vdom.VNode) string {
	switch {
	case node == nil:
		return "<nil>"
	case node.Kind == vdom.KindElement:
		return "<" + node.Tag + ">"
	default:
		return node.Kind.String()
	}
}
