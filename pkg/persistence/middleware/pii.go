package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/scormkit/pkg/ports"
)

// Mask replaces redacted values.
const Mask = "***"

type piiMiddleware struct {
	next     ports.Storage
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a read-side middleware that masks values of keys
// matching the patterns. Writes pass through untouched, so it is meant for
// inspection views, not for the store a course writes to.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.Storage) ports.Storage {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) GetItem(ctx context.Context, key string) (string, error) {
	v, err := m.next.GetItem(ctx, key)
	if err != nil {
		return "", err
	}
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return Mask, nil
		}
	}
	return v, nil
}

func (m *piiMiddleware) SetItem(ctx context.Context, key, value string) error {
	return m.next.SetItem(ctx, key, value)
}

func (m *piiMiddleware) RemoveItem(ctx context.Context, key string) error {
	return m.next.RemoveItem(ctx, key)
}

func (m *piiMiddleware) Keys(ctx context.Context) ([]string, error) {
	return m.next.Keys(ctx)
}

func (m *piiMiddleware) Clear(ctx context.Context) error {
	return m.next.Clear(ctx)
}
