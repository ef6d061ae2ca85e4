/*
Package ports defines the driven ports (interfaces) of the SCORM session layer.

These interfaces decouple the session logic from the environment it runs in,
allowing the same code to talk to an embedded LMS, an LMS bridged over HTTP, or a
browser frame tree, and to persist fallback data in memory, on disk or in Redis.

# Key Interfaces

  - API: The host-provided runtime object exposing the SCORM method set.
  - Frame: A node of the window/frame hierarchy searched for the API object.
  - Storage: Session-scoped key/value store used while no LMS is reachable.
*/
package ports
