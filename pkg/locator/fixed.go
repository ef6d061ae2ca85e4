package locator

import (
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/ports"
)

// Fixed resolves to a handle known up front, such as an LMS reached over the
// HTTP bridge, skipping frame discovery.
type Fixed struct {
	API     ports.API
	Dialect *domain.Dialect
}

// Handle implements ports.Resolver.
func (f Fixed) Handle(preferred *domain.Dialect) (ports.API, *domain.Dialect) {
	if f.API == nil {
		return nil, nil
	}
	if preferred != nil && f.Dialect != nil && preferred != f.Dialect {
		return nil, nil
	}
	if f.Dialect == nil {
		return f.API, preferred
	}
	return f.API, f.Dialect
}

var (
	_ ports.Resolver = (*Locator)(nil)
	_ ports.Resolver = Fixed{}
)
