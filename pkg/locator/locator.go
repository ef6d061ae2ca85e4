package locator

import (
	"log/slog"

	"github.com/aretw0/scormkit/internal/logging"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/ports"
)

// DefaultMaxHops bounds a single ancestor walk.
const DefaultMaxHops = 500

// Outcome describes the last known result of discovery.
type Outcome struct {
	// Found is true once a handle has been resolved. It never reverts to false.
	Found bool

	// Dialect is the dialect of the resolved handle.
	Dialect *domain.Dialect

	// Searches counts the full (escalating) searches performed.
	Searches int

	// Hops is the number of parent hops taken by the last walk.
	Hops int
}

// Locator finds and caches the host runtime API handle.
// It is not safe for concurrent use; one Locator serves one launch.
type Locator struct {
	root    ports.Frame
	maxHops int
	logger  *slog.Logger

	handle  ports.API
	outcome Outcome
}

// Option configures the Locator.
type Option func(*Locator)

// WithLogger configures a logger for discovery diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// WithMaxHops overrides the per-walk hop bound.
func WithMaxHops(n int) Option {
	return func(l *Locator) {
		if n > 0 {
			l.maxHops = n
		}
	}
}

// New creates a Locator rooted at the content frame.
// A nil root is allowed and simply never yields a handle.
func New(root ports.Frame, opts ...Option) *Locator {
	l := &Locator{
		root:    root,
		maxHops: DefaultMaxHops,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Handle returns the cached handle, searching only if none has been found yet.
// When preferred is non-nil only that dialect's binding is accepted, and a
// cached handle of the other dialect yields nil.
func (l *Locator) Handle(preferred *domain.Dialect) (ports.API, *domain.Dialect) {
	if l.handle == nil && !l.outcome.Found {
		l.handle, l.outcome.Dialect = l.Locate(preferred)
		l.outcome.Found = l.handle != nil
	}
	if l.handle != nil && preferred != nil && preferred != l.outcome.Dialect {
		l.logger.Debug("locator: cached API speaks another version",
			"version", l.outcome.Dialect.Version,
			"requested", preferred.Version,
		)
		return nil, nil
	}
	return l.handle, l.outcome.Dialect
}

// Outcome returns the last known discovery outcome.
func (l *Locator) Outcome() Outcome {
	return l.outcome
}

// Reset drops the cached handle so the next Handle call searches again.
func (l *Locator) Reset() {
	l.handle = nil
	l.outcome = Outcome{Searches: l.outcome.Searches}
}

// Locate performs an uncached search: the root frame's ancestor chain, then the
// parent's, then the top-level opener's, then the opener's document.
func (l *Locator) Locate(preferred *domain.Dialect) (ports.API, *domain.Dialect) {
	l.outcome.Searches++

	win := l.root
	if win == nil {
		l.logger.Debug("locator: no root frame, cannot find the API")
		return nil, nil
	}

	if api, d := l.find(win, preferred); api != nil {
		return api, d
	}

	if parent := win.Parent(); parent != nil && parent != win {
		if api, d := l.find(parent, preferred); api != nil {
			return api, d
		}
	}

	if top := win.Top(); top != nil {
		if opener := top.Opener(); opener != nil {
			if api, d := l.find(opener, preferred); api != nil {
				return api, d
			}
			// Some legacy hosts only publish the API on the opener's document.
			if doc := opener.Document(); doc != nil {
				if api, d := l.find(doc, preferred); api != nil {
					return api, d
				}
			}
		}
	}

	l.logger.Debug("locator: can't find the API")
	return nil, nil
}

// find walks up from win until a frame publishes any API binding, then picks
// the binding matching preferred (or the newest dialect when preferred is nil).
func (l *Locator) find(win ports.Frame, preferred *domain.Dialect) (ports.API, *domain.Dialect) {
	hops := 0
	for !publishesAny(win) && hops < l.maxHops {
		parent := win.Parent()
		if parent == nil || parent == win {
			break
		}
		hops++
		win = parent
	}
	l.outcome.Hops = hops

	if preferred != nil {
		if api := win.Binding(preferred.Binding); api != nil {
			l.logger.Debug("locator: API found", "version", preferred.Version, "hops", hops)
			return api, preferred
		}
		l.logger.Debug("locator: version was specified but its API cannot be found",
			"version", preferred.Version,
			"binding", preferred.Binding,
		)
		return nil, nil
	}

	for _, d := range domain.Dialects {
		if api := win.Binding(d.Binding); api != nil {
			l.logger.Debug("locator: API found", "version", d.Version, "hops", hops)
			return api, d
		}
	}

	l.logger.Debug("locator: error finding API", "hops", hops, "max_hops", l.maxHops)
	return nil, nil
}

func publishesAny(win ports.Frame) bool {
	for _, d := range domain.Dialects {
		if win.Binding(d.Binding) != nil {
			return true
		}
	}
	return false
}
