/*
Package observability provides Prometheus instrumentation for SCORM host APIs.

Instrument decorates any ports.API so that every runtime call is counted by
method and outcome and timed, whether the host is the embedded LMS, an LMS
bridged over HTTP, or a browser frame.
*/
package observability
