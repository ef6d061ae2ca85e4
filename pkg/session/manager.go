package session

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/scormkit/internal/logging"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/ports"
)

// UnknownErrorCode is reported when the host answers GetLastError with something
// that does not start with an integer.
const UnknownErrorCode = -1

// Result is the outcome of Initialize.
type Result struct {
	Success bool   `json:"success"`
	Version string `json:"version"`
}

// Manager orchestrates one SCORM runtime session.
type Manager struct {
	resolver ports.Resolver
	logger   *slog.Logger

	cfg   settings
	state domain.SessionState
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for protocol traces and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager that obtains its host handle from resolver.
// Until Configure is called the dialect is auto-detected during discovery.
func NewManager(resolver ports.Resolver, opts ...Option) *Manager {
	m := &Manager{
		resolver: resolver,
		logger:   logging.NewNop(), // Default to no-op
		cfg:      defaultSettings(),
		state:    domain.NewSessionState(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Configure applies cfg. It must be called before Initialize to take effect;
// calls on an active session are ignored.
func (m *Manager) Configure(cfg Config) error {
	s, err := cfg.resolve()
	if err != nil {
		return err
	}
	if m.state.Active() {
		m.logger.Warn("session: configure ignored, connection already active")
		return nil
	}
	m.cfg = s
	m.state.Dialect = s.dialect
	return nil
}

// State returns a snapshot of the session state.
func (m *Manager) State() domain.SessionState {
	return m.state
}

// Dialect returns the active dialect, nil while unknown.
func (m *Manager) Dialect() *domain.Dialect {
	return m.state.Dialect
}

// Active reports whether the session is between Initialize and Terminate.
func (m *Manager) Active() bool {
	return m.state.Active()
}

// Initialize opens the runtime session.
func (m *Manager) Initialize() Result {
	m.trace("session: initialize called")

	switch m.state.Phase {
	case domain.PhaseActive:
		m.trace("session: initialize aborted, connection already active")
		return m.result(false)
	case domain.PhaseTerminated:
		m.trace("session: initialize aborted, session already terminated")
		return m.result(false)
	}

	api := m.handle()
	if api == nil {
		m.trace("session: initialize failed, API is null")
		return m.result(false)
	}
	d := m.state.Dialect
	if d == nil {
		m.logger.Warn("session: initialize failed, API dialect is unknown")
		return m.result(false)
	}

	success := domain.Truthy(api.Invoke(d.Methods.Initialize, ""))
	code := m.LastError()

	switch {
	case success && code == 0:
		m.state.Phase = domain.PhaseActive
		m.onActivate()
	case success:
		// The host said yes but its error channel disagrees.
		success = false
		m.protocolFailure("initialize", code)
	case code != 0:
		m.protocolFailure("initialize", code)
	default:
		m.logger.Warn("session: initialize failed, no response from server")
	}

	return m.result(success)
}

// onActivate runs once per successful Initialize. A fresh launch is moved
// from "not attempted"/"unknown" to "incomplete" so it is never left ambiguous.
func (m *Manager) onActivate() {
	if !m.cfg.handleCompletionStatus {
		return
	}
	status, ok := m.Status()
	if !ok || !m.state.Dialect.IsFreshStatus(status) {
		return
	}
	if m.SetStatus(domain.StatusIncomplete) {
		m.Commit()
	}
}

// Terminate closes the runtime session. Unless an exit value was already set
// or read this session, exit is set to "suspend" so the launch stays resumable.
func (m *Manager) Terminate() bool {
	if !m.state.Active() {
		m.trace("session: terminate aborted, connection is not active")
		return false
	}

	api := m.handle()
	if api == nil {
		m.trace("session: terminate failed, API is null")
		return false
	}
	d := m.state.Dialect

	if m.cfg.handleExitMode && m.state.ExitStatus == "" {
		m.Set(d.Keys.Exit, domain.ExitSuspend)
	}

	if !m.Commit() {
		return false
	}

	if !domain.Truthy(api.Invoke(d.Methods.Terminate, "")) {
		m.protocolFailure("terminate", m.LastError())
		return false
	}

	m.state.Phase = domain.PhaseTerminated
	return true
}

// Get reads a runtime variable. An empty value is a failure only when the host
// also reports a non-zero error code.
func (m *Manager) Get(key string) (string, bool) {
	if !m.state.Active() {
		m.trace("session: get failed, API connection is inactive", "key", key)
		return "", false
	}
	api := m.handle()
	if api == nil {
		m.trace("session: get failed, API is null", "key", key)
		return "", false
	}

	value := domain.Stringify(api.Invoke(m.state.Dialect.Methods.GetValue, key))
	code := m.LastError()

	if value == "" && code != 0 {
		m.protocolFailure("get", code, "key", key)
		return "", false
	}

	m.track(key, value)
	m.trace("session: get", "key", key, "value", value)
	return value, true
}

// Set writes a runtime variable.
func (m *Manager) Set(key, value string) bool {
	if !m.state.Active() {
		m.trace("session: set failed, API connection is inactive", "key", key)
		return false
	}
	api := m.handle()
	if api == nil {
		m.trace("session: set failed, API is null", "key", key)
		return false
	}

	if !domain.Truthy(api.Invoke(m.state.Dialect.Methods.SetValue, key, value)) {
		m.protocolFailure("set", m.LastError(), "key", key)
		return false
	}

	m.track(key, value)
	m.trace("session: set", "key", key, "value", value)
	return true
}

// Commit asks the host to persist pending writes.
func (m *Manager) Commit() bool {
	if !m.state.Active() {
		m.trace("session: commit failed, API connection is inactive")
		return false
	}
	api := m.handle()
	if api == nil {
		m.trace("session: commit failed, API is null")
		return false
	}

	if !domain.Truthy(api.Invoke(m.state.Dialect.Methods.Commit, "")) {
		m.protocolFailure("commit", m.LastError())
		return false
	}
	return true
}

// Status reads the dialect's completion status.
func (m *Manager) Status() (string, bool) {
	if m.state.Dialect == nil {
		m.trace("session: status failed, dialect is unknown")
		return "", false
	}
	return m.Get(m.state.Dialect.Keys.CompletionStatus)
}

// SetStatus writes the dialect's completion status.
func (m *Manager) SetStatus(status string) bool {
	if status == "" {
		m.trace("session: status failed, status was not specified")
		return false
	}
	if m.state.Dialect == nil {
		m.trace("session: status failed, dialect is unknown")
		return false
	}
	return m.Set(m.state.Dialect.Keys.CompletionStatus, status)
}

// LastError returns the host's last error code, or 0 without a handle.
func (m *Manager) LastError() int {
	api, d := m.handle(), m.state.Dialect
	if api == nil || d == nil {
		m.trace("session: getLastError failed, API is null")
		return 0
	}
	return parseCode(domain.Stringify(api.Invoke(d.Methods.GetLastError)))
}

// ErrorString returns the host's description of code, or "" without a handle.
func (m *Manager) ErrorString(code int) string {
	api, d := m.handle(), m.state.Dialect
	if api == nil || d == nil {
		m.trace("session: getErrorString failed, API is null")
		return ""
	}
	return domain.Stringify(api.Invoke(d.Methods.GetErrorString, strconv.Itoa(code)))
}

// Diagnostic returns host-specific detail for code, or "" without a handle.
func (m *Manager) Diagnostic(code int) string {
	api, d := m.handle(), m.state.Dialect
	if api == nil || d == nil {
		m.trace("session: getDiagnostic failed, API is null")
		return ""
	}
	return domain.Stringify(api.Invoke(d.Methods.GetDiagnostic, strconv.Itoa(code)))
}

// handle resolves the host API. An unconfigured manager adopts the dialect found.
func (m *Manager) handle() ports.API {
	if m.resolver == nil {
		return nil
	}
	api, d := m.resolver.Handle(m.state.Dialect)
	if api != nil && m.state.Dialect == nil {
		m.state.Dialect = d
	}
	return api
}

// track caches completion and exit values so Terminate can consult them
// without a round trip.
func (m *Manager) track(key, value string) {
	switch key {
	case m.state.Dialect.Keys.CompletionStatus:
		m.state.CompletionStatus = value
	case m.state.Dialect.Keys.Exit:
		m.state.ExitStatus = value
	}
}

func (m *Manager) result(success bool) Result {
	return Result{Success: success, Version: m.state.Dialect.String()}
}

func (m *Manager) protocolFailure(op string, code int, args ...any) {
	attrs := append([]any{"op", op, "code", code, "info", m.ErrorString(code)}, args...)
	m.logger.Warn("session: host call failed", attrs...)
}

func (m *Manager) trace(msg string, args ...any) {
	if m.cfg.debug {
		m.logger.Debug(msg, args...)
	}
}

// parseCode reads a leading base-10 integer the way hosts are lenient about it
// ("101", " 0 ", "201 invalid").
func parseCode(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return UnknownErrorCode
	}
	code, err := strconv.Atoi(s[:end])
	if err != nil {
		return UnknownErrorCode
	}
	return code
}
