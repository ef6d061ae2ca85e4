package scormkit

import (
	"log/slog"

	"github.com/aretw0/scormkit/internal/logging"
	"github.com/aretw0/scormkit/pkg/course"
	"github.com/aretw0/scormkit/pkg/locator"
	"github.com/aretw0/scormkit/pkg/ports"
	"github.com/aretw0/scormkit/pkg/session"
	"github.com/aretw0/scormkit/pkg/suspend"
)

// Version is the scormkit release.
const Version = "0.1.0"

type options struct {
	logger   *slog.Logger
	config   session.Config
	codec    suspend.Codec
	maxHops  int
	resolver ports.Resolver
	client   []course.Option
}

// Option configures New.
type Option func(*options)

// WithLogger sets a structured logger shared by the locator, manager and client.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConfig sets the session configuration applied on connect.
func WithConfig(cfg session.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithCodec replaces the suspend data codec.
func WithCodec(codec suspend.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithMaxHops bounds the frame walk of API discovery.
func WithMaxHops(n int) Option {
	return func(o *options) {
		o.maxHops = n
	}
}

// WithResolver bypasses frame discovery, e.g. with a locator.Fixed over an HTTP bridge.
func WithResolver(r ports.Resolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithClientOptions passes extra options to the course client.
func WithClientOptions(opts ...course.Option) Option {
	return func(o *options) {
		o.client = append(o.client, opts...)
	}
}

// New wires a course client for content running in frame: a locator walking
// from frame, a session manager, and storage as the disconnected fallback.
// frame may be nil when a resolver is supplied or no LMS exists at all.
func New(frame ports.Frame, storage ports.Storage, opts ...Option) *course.Client {
	o := &options{
		logger:  logging.NewNop(),
		config:  session.Config{Version: session.DefaultVersion},
		codec:   suspend.Substitution{},
		maxHops: locator.DefaultMaxHops,
	}
	for _, opt := range opts {
		opt(o)
	}

	resolver := o.resolver
	if resolver == nil {
		resolver = locator.New(frame,
			locator.WithLogger(o.logger),
			locator.WithMaxHops(o.maxHops),
		)
	}

	manager := session.NewManager(resolver, session.WithLogger(o.logger))

	clientOpts := append([]course.Option{
		course.WithLogger(o.logger),
		course.WithConfig(o.config),
		course.WithCodec(o.codec),
	}, o.client...)
	return course.NewClient(manager, storage, clientOpts...)
}
