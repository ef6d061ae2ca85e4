package memory

import "github.com/aretw0/scormkit/pkg/ports"

// Window implements ports.Frame as an in-memory window/frame tree.
// Use it to model the browser hierarchy an LMS launches content into.
type Window struct {
	Name string

	bindings map[string]ports.API
	parent   *Window
	top      *Window
	opener   *Window
	document *Window
}

// NewWindow creates a top-level window.
func NewWindow(name string) *Window {
	return &Window{
		Name:     name,
		bindings: make(map[string]ports.API),
	}
}

// Child creates a frame nested inside w.
func (w *Window) Child(name string) *Window {
	c := NewWindow(name)
	c.parent = w
	c.top = w.topmost()
	return c
}

// Publish exposes api under a global binding name (e.g. "API_1484_11").
func (w *Window) Publish(binding string, api ports.API) *Window {
	w.bindings[binding] = api
	return w
}

// Unpublish removes a binding.
func (w *Window) Unpublish(binding string) *Window {
	delete(w.bindings, binding)
	return w
}

// SetParent rewires the parent link. Cycles are allowed.
func (w *Window) SetParent(p *Window) *Window {
	w.parent = p
	return w
}

// SetOpener sets the window that opened w.
func (w *Window) SetOpener(o *Window) *Window {
	w.opener = o
	return w
}

// SetDocument sets the document context of w.
func (w *Window) SetDocument(d *Window) *Window {
	w.document = d
	return w
}

// Binding returns the API published under name, or nil.
func (w *Window) Binding(name string) ports.API {
	api, ok := w.bindings[name]
	if !ok {
		return nil
	}
	return api
}

// Parent returns the enclosing frame, or nil at the top.
func (w *Window) Parent() ports.Frame {
	if w.parent == nil {
		return nil
	}
	return w.parent
}

// Top returns the outermost window.
func (w *Window) Top() ports.Frame {
	return w.topmost()
}

// Opener returns the opener window, or nil.
func (w *Window) Opener() ports.Frame {
	if w.opener == nil {
		return nil
	}
	return w.opener
}

// Document returns the document context, or nil.
func (w *Window) Document() ports.Frame {
	if w.document == nil {
		return nil
	}
	return w.document
}

func (w *Window) topmost() *Window {
	if w.top != nil {
		return w.top
	}
	return w
}
