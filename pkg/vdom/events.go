package vdom

// EventHandler binds a handler to an event type.
type EventHandler struct {
	Event   string   // "click", "input", etc.
	Handler *Handler // Compared by reference
}

// On binds h to the given event type.
func On(event string, h *Handler) EventHandler {
	return EventHandler{Event: event, Handler: h}
}

// OnClick handles click events.
func OnClick(h *Handler) EventHandler { return On("click", h) }

// OnInput handles input events (fired when value changes).
func OnInput(h *Handler) EventHandler { return On("input", h) }

// OnChange handles change events (fired when value is committed).
func OnChange(h *Handler) EventHandler { return On("change", h) }

// OnSubmit handles form submit events.
func OnSubmit(h *Handler) EventHandler { return On("submit", h) }

// OnKeyDown handles keydown events.
func OnKeyDown(h *Handler) EventHandler { return On("keydown", h) }

// OnFocus handles focus events.
func OnFocus(h *Handler) EventHandler { return On("focus", h) }

// OnBlur handles blur events.
func OnBlur(h *Handler) EventHandler { return On("blur", h) }
