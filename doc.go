/*
Package scormkit is a client-side SCORM runtime session layer for learning content.

It finds the SCORM API object an LMS publishes somewhere in the window hierarchy
around the content, drives the SCORM 1.2 or 2004 lifecycle on it, and exposes a
small course-facing facade for bookmarks, suspend data, scores, objectives and
interactions. When no LMS is reachable, bookmark and suspend data writes degrade
to a key/value fallback storage so the content keeps working standalone.

# Architecture

The layer is hexagonal. The host environment is a set of ports:

  - ports.Frame: a window in the hierarchy (parent, top, opener, document, bindings).
  - ports.API: the SCORM runtime object an LMS publishes.
  - ports.Storage: the fallback key/value store.

Adapters implement them in memory (an embedded LMS and window tree), on disk,
in Redis, and over HTTP (a bridge exposing any API to remote content).

# Usage

	top := memory.NewWindow("lms").Publish("API", memory.NewLMS(domain.SCORM12))
	client := scormkit.New(top.Child("content"), memory.NewStore(),
		scormkit.WithConfig(session.Config{Version: "1.2"}),
	)

	client.Connect()
	_ = client.SetLocation(ctx, 3, map[string]any{"page": 3})
	client.SetScore(80)
	client.SetComplete()
	client.Terminate()

The scormkit command (cmd/scormkit) serves an embedded LMS over HTTP, runs
scripted learner sessions against it, and inspects fallback storage.
*/
package scormkit
