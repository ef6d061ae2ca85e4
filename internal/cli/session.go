package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/scormkit"
	"github.com/aretw0/scormkit/internal/config"
	"github.com/aretw0/scormkit/internal/presentation/tui"
	bridge "github.com/aretw0/scormkit/pkg/adapters/http"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/locator"
	"github.com/aretw0/scormkit/pkg/suspend"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Config    config.Config
	Namespace string
	Headless  bool
	Escaped   bool
	Script    io.Reader
	Output    io.Writer
}

// RunSession executes one learner session: against the LMS bridge when
// Config.Bridge.URL is set, otherwise standalone on fallback storage.
func RunSession(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	debug := cfg.Session.Debug != nil && *cfg.Session.Debug
	logger := CreateLogger(debug)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	in := opts.Script
	if in == nil {
		in = os.Stdin
	}

	backend, err := OpenStorage(cfg, opts.Namespace, StorageOptions{})
	if err != nil {
		return err
	}
	defer backend.Close()

	clientOpts := []scormkit.Option{
		scormkit.WithLogger(logger),
		scormkit.WithConfig(cfg.Session),
	}
	if opts.Escaped {
		clientOpts = append(clientOpts, scormkit.WithCodec(suspend.Escaped{}))
	}

	if cfg.Bridge.URL != "" {
		d, err := domain.ParseDialect(cfg.Session.Version)
		if err != nil {
			return err
		}
		api := bridge.NewClient(cfg.Bridge.URL, bridge.WithClientLogger(logger))
		clientOpts = append(clientOpts, scormkit.WithResolver(locator.Fixed{API: api, Dialect: d}))
	}

	client := scormkit.New(nil, backend.Storage, clientOpts...)

	if !opts.Headless {
		tui.PrintBanner(out)
		target := cfg.Bridge.URL
		if target == "" {
			target = "no LMS (fallback storage only)"
		}
		printSystemMessage(out, "LMS: %s", target)
		printSystemMessage(out, "Storage: %s/%s", cfg.Storage.Driver, backend.Namespace)
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	r := scormkit.NewRunner()
	r.Input = in
	r.Output = out
	r.Headless = opts.Headless
	r.Report = tui.SessionReport
	if !opts.Headless {
		r.Renderer = scormkit.ContentRenderer(tui.NewRenderer())
	}

	runErr := r.Run(sigCtx, client)
	if sigCtx.Signal() != nil && !opts.Headless {
		fmt.Fprintln(out)
		printSystemMessage(out, "Interrupted.")
	}
	return handleExecutionError(runErr)
}
