package vdom

import "github.com/vango-dev/cells/pkg/dom"

// On handles events of any type.
func On(event string, handler func(*dom.Event)) EventHandler {
	return EventHandler{Event: event, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler func(*dom.Event)) EventHandler { return On("click", handler) }

// OnInput handles input events (fired when value changes).
func OnInput(handler func(*dom.Event)) EventHandler { return On("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler func(*dom.Event)) EventHandler { return On("change", handler) }

// OnSubmit handles form submission.
func OnSubmit(handler func(*dom.Event)) EventHandler { return On("submit", handler) }
