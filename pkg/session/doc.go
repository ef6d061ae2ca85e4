/*
Package session implements the SCORM runtime session manager.

A Manager owns one runtime session against the host API: it tracks the lifecycle
phase (uninitialized, active, terminated), dispatches reads and writes through the
active dialect's strategy record, re-verifies host answers through the error
channel, and applies the exit-mode and completion-status conventions that keep a
launch resumable.

The Manager is not safe for concurrent use; SCORM allows one session per launch
and every host call is synchronous.
*/
package session
