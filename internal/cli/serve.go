package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/scormkit"
	bridge "github.com/aretw0/scormkit/pkg/adapters/http"
	"github.com/aretw0/scormkit/pkg/adapters/memory"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout bounds graceful shutdown of the bridge.
const ShutdownTimeout = 5 * time.Second

// ServeOptions configures the embedded LMS bridge.
type ServeOptions struct {
	Addr        string
	Version     string
	LearnerName string
	LearnerID   string
	Debug       bool
	Output      io.Writer
}

// NewBridgeHandler builds the HTTP handler serving an embedded LMS with metrics.
func NewBridgeHandler(opts ServeOptions) (http.Handler, *memory.LMS, error) {
	d, err := domain.ParseDialect(opts.Version)
	if err != nil {
		return nil, nil, err
	}

	lmsOpts := []memory.LMSOption{}
	if opts.LearnerName != "" || opts.LearnerID != "" {
		lmsOpts = append(lmsOpts, memory.WithLearner(opts.LearnerName, opts.LearnerID))
	}
	lms := memory.NewLMS(d, lmsOpts...)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := observability.NewMetrics(reg)

	handler := bridge.NewHandler(observability.Instrument(lms, metrics),
		bridge.WithLogger(CreateLogger(opts.Debug)),
		bridge.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		bridge.WithInfo("dialect", d.Version),
		bridge.WithInfo("binding", d.Binding),
		bridge.WithInfo("version", scormkit.Version),
	)
	return handler, lms, nil
}

// Serve runs the bridge until ctx is cancelled or a signal arrives.
func Serve(ctx context.Context, opts ServeOptions) error {
	handler, _, err := NewBridgeHandler(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(opts.Output, "Serving SCORM %s LMS on %s", opts.Version, srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		printSystemMessage(opts.Output, "Start shutdown... Signal: %v", sigCtx.Signal())

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", ShutdownTimeout, err)
		}
		printSystemMessage(opts.Output, "Bridge stopped gracefully")
		return nil
	}
}
