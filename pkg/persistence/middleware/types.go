package middleware

import "github.com/aretw0/scormkit/pkg/ports"

// Middleware allows wrapping a Storage to add behavior.
type Middleware func(ports.Storage) ports.Storage

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.Storage, mws ...Middleware) ports.Storage {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
