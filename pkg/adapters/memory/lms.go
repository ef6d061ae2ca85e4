package memory

import (
	"maps"
	"strconv"
	"sync"

	"github.com/aretw0/scormkit/pkg/domain"
)

// Error codes reported by the embedded LMS.
const (
	CodeNoError             = 0
	CodeGeneralException    = 101
	CodeAlreadyInitialized  = 103
	CodeContentTerminated   = 104
	CodeNotInitialized      = 301
	CodeTerminatedBeforeUse = 112
)

var errorStrings = map[int]string{
	CodeNoError:             "No error",
	CodeGeneralException:    "General exception",
	CodeAlreadyInitialized:  "Already initialized",
	CodeContentTerminated:   "Content instance terminated",
	CodeNotInitialized:      "Not initialized",
	CodeTerminatedBeforeUse: "Termination before initialization",
}

// Fault forces a host method to answer with Result and set the last error to Code,
// without performing the operation.
type Fault struct {
	Result any
	Code   int
}

// Call is one recorded host invocation.
type Call struct {
	Method string
	Args   []string
}

// LMS is an embedded host implementing one SCORM dialect in memory.
// It answers "true"/"false" strings like browser LMS implementations do.
// Safe for concurrent use, so it can back the HTTP bridge.
type LMS struct {
	dialect *domain.Dialect

	mu          sync.Mutex
	values      map[string]string
	committed   map[string]string
	faults      map[string]Fault
	calls       []Call
	initialized bool
	terminated  bool
	lastError   int
}

// LMSOption configures the LMS.
type LMSOption func(*LMS)

// WithValues seeds runtime variables.
func WithValues(values map[string]string) LMSOption {
	return func(l *LMS) {
		maps.Copy(l.values, values)
	}
}

// WithLearner seeds the learner identity keys.
func WithLearner(name, id string) LMSOption {
	return func(l *LMS) {
		l.values[l.dialect.Keys.LearnerName] = name
		l.values[l.dialect.Keys.LearnerID] = id
	}
}

// WithFault forces method to answer with the given fault.
func WithFault(method string, f Fault) LMSOption {
	return func(l *LMS) {
		l.faults[method] = f
	}
}

// NewLMS creates an LMS speaking dialect d. A fresh launch reports
// "not attempted" (1.2) or "unknown" (2004) as completion status.
func NewLMS(d *domain.Dialect, opts ...LMSOption) *LMS {
	l := &LMS{
		dialect:   d,
		values:    make(map[string]string),
		committed: make(map[string]string),
		faults:    make(map[string]Fault),
	}
	if d.UnknownIsUnset {
		l.values[d.Keys.CompletionStatus] = domain.StatusUnknown
	} else {
		l.values[d.Keys.CompletionStatus] = domain.StatusNotAttempted
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dialect returns the dialect the LMS speaks.
func (l *LMS) Dialect() *domain.Dialect {
	return l.dialect
}

// Invoke implements ports.API.
func (l *LMS) Invoke(method string, args ...string) any {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls = append(l.calls, Call{Method: method, Args: append([]string(nil), args...)})

	if f, ok := l.faults[method]; ok {
		l.lastError = f.Code
		return f.Result
	}

	m := l.dialect.Methods
	switch method {
	case m.Initialize:
		return l.initialize()
	case m.Terminate:
		return l.terminate()
	case m.GetValue:
		return l.getValue(arg(args, 0))
	case m.SetValue:
		return l.setValue(arg(args, 0), arg(args, 1))
	case m.Commit:
		return l.commit()
	case m.GetLastError:
		return strconv.Itoa(l.lastError)
	case m.GetErrorString:
		code, _ := strconv.Atoi(arg(args, 0))
		return errorStrings[code]
	case m.GetDiagnostic:
		code, _ := strconv.Atoi(arg(args, 0))
		return "diagnostic: " + errorStrings[code]
	default:
		l.lastError = CodeGeneralException
		return nil
	}
}

func (l *LMS) initialize() string {
	switch {
	case l.terminated:
		l.lastError = CodeContentTerminated
		return "false"
	case l.initialized:
		l.lastError = CodeAlreadyInitialized
		return "false"
	}
	l.initialized = true
	l.lastError = CodeNoError
	return "true"
}

func (l *LMS) terminate() string {
	if !l.ready() {
		return "false"
	}
	l.terminated = true
	l.lastError = CodeNoError
	return "true"
}

func (l *LMS) getValue(key string) string {
	if !l.ready() {
		return ""
	}
	l.lastError = CodeNoError
	return l.values[key]
}

func (l *LMS) setValue(key, value string) string {
	if !l.ready() {
		return "false"
	}
	l.values[key] = value
	l.lastError = CodeNoError
	return "true"
}

func (l *LMS) commit() string {
	if !l.ready() {
		return "false"
	}
	maps.Copy(l.committed, l.values)
	l.lastError = CodeNoError
	return "true"
}

func (l *LMS) ready() bool {
	switch {
	case l.terminated:
		l.lastError = CodeContentTerminated
		return false
	case !l.initialized:
		l.lastError = CodeNotInitialized
		return false
	}
	return true
}

// Value returns the current (possibly uncommitted) value of key.
func (l *LMS) Value(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.values[key]
	return v, ok
}

// Committed returns the value of key as of the last commit.
func (l *LMS) Committed(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.committed[key]
	return v, ok
}

// Calls returns a copy of the recorded invocations.
func (l *LMS) Calls() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Call(nil), l.calls...)
}

// Count returns how many times method was invoked.
func (l *LMS) Count(method string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Terminated reports whether the content instance has been terminated.
func (l *LMS) Terminated() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.terminated
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
