package ports

import "github.com/aretw0/scormkit/pkg/domain"

// API is the host-provided runtime object.
// Method names follow the active dialect (e.g. "LMSInitialize" or "Initialize").
// Results are loosely typed: hosts may answer with strings, numbers, booleans or nil.
type API interface {
	Invoke(method string, args ...string) any
}

// APIFunc adapts a function to the API interface.
type APIFunc func(method string, args ...string) any

// Invoke calls f.
func (f APIFunc) Invoke(method string, args ...string) any {
	return f(method, args...)
}

// Frame is a node of the window/frame hierarchy.
// Implementations must return a nil interface (not a typed nil) when a relation is absent.
type Frame interface {
	// Binding returns the API object published under name, or nil.
	Binding(name string) API

	// Parent returns the enclosing frame. A top-level frame may return itself.
	Parent() Frame

	// Top returns the outermost frame of this window.
	Top() Frame

	// Opener returns the frame that opened this window, if any.
	Opener() Frame

	// Document returns the document context of the frame, if distinct.
	Document() Frame
}

// Resolver hands out the host API handle, discovering it if necessary.
// When preferred is non-nil only a handle speaking that dialect is returned.
type Resolver interface {
	Handle(preferred *domain.Dialect) (API, *domain.Dialect)
}
