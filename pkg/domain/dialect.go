package domain

import "fmt"

// Methods holds the host method names for one dialect.
type Methods struct {
	Initialize     string
	Terminate      string
	GetValue       string
	SetValue       string
	Commit         string
	GetLastError   string
	GetErrorString string
	GetDiagnostic  string
}

// Keys holds the runtime variable names for one dialect.
type Keys struct {
	CompletionStatus string
	Exit             string
	Location         string
	LearnerName      string
	LearnerID        string
	ScoreMin         string
	ScoreMax         string
	ScoreRaw         string
	SuspendData      string
}

// Results holds the interaction result vocabulary for one dialect.
type Results struct {
	Correct   string
	Incorrect string
	Neutral   string
}

// Dialect is the strategy record for a SCORM runtime version.
// Every dialect-dependent operation is a lookup on this record.
type Dialect struct {
	// Version is the configuration name ("1.2" or "2004").
	Version string

	// Binding is the global name the host publishes its API object under.
	Binding string

	Methods Methods
	Keys    Keys
	Results Results

	// SuspendDataLimit is the maximum suspend data length in characters (0 = unbounded).
	SuspendDataLimit int

	// UnknownIsUnset reports whether "unknown" is a fresh-launch completion status.
	UnknownIsUnset bool
}

// SCORM12 is the SCORM 1.2 dialect.
var SCORM12 = &Dialect{
	Version: "1.2",
	Binding: "API",
	Methods: Methods{
		Initialize:     "LMSInitialize",
		Terminate:      "LMSFinish",
		GetValue:       "LMSGetValue",
		SetValue:       "LMSSetValue",
		Commit:         "LMSCommit",
		GetLastError:   "LMSGetLastError",
		GetErrorString: "LMSGetErrorString",
		GetDiagnostic:  "LMSGetDiagnostic",
	},
	Keys: Keys{
		CompletionStatus: "cmi.core.lesson_status",
		Exit:             "cmi.core.exit",
		Location:         "cmi.core.lesson_location",
		LearnerName:      "cmi.core.student_name",
		LearnerID:        "cmi.core.student_id",
		ScoreMin:         "cmi.core.score.min",
		ScoreMax:         "cmi.core.score.max",
		ScoreRaw:         "cmi.core.score.raw",
		SuspendData:      "cmi.suspend_data",
	},
	Results: Results{
		Correct:   "correct",
		Incorrect: "wrong",
		Neutral:   "neutral",
	},
	SuspendDataLimit: 4096,
}

// SCORM2004 is the SCORM 2004 dialect.
var SCORM2004 = &Dialect{
	Version: "2004",
	Binding: "API_1484_11",
	Methods: Methods{
		Initialize:     "Initialize",
		Terminate:      "Terminate",
		GetValue:       "GetValue",
		SetValue:       "SetValue",
		Commit:         "Commit",
		GetLastError:   "GetLastError",
		GetErrorString: "GetErrorString",
		GetDiagnostic:  "GetDiagnostic",
	},
	Keys: Keys{
		CompletionStatus: "cmi.completion_status",
		Exit:             "cmi.exit",
		Location:         "cmi.location",
		LearnerName:      "cmi.learner_name",
		LearnerID:        "cmi.learner_id",
		ScoreMin:         "cmi.score.min",
		ScoreMax:         "cmi.score.max",
		ScoreRaw:         "cmi.score.raw",
		SuspendData:      "cmi.suspend_data",
	},
	Results: Results{
		Correct:   "correct",
		Incorrect: "incorrect",
		Neutral:   "neutral",
	},
	UnknownIsUnset: true,
}

// Dialects lists the supported dialects in discovery preference order (newest first).
var Dialects = []*Dialect{SCORM2004, SCORM12}

// ParseDialect resolves a version string to its dialect record.
func ParseDialect(version string) (*Dialect, error) {
	for _, d := range Dialects {
		if d.Version == version {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, version)
}

// String returns the version name.
func (d *Dialect) String() string {
	if d == nil {
		return ""
	}
	return d.Version
}

// IsFreshStatus reports whether a completion status marks a launch that was never started.
func (d *Dialect) IsFreshStatus(status string) bool {
	switch status {
	case StatusNotAttempted:
		return true
	case StatusUnknown:
		return d.UnknownIsUnset
	}
	return false
}

// InteractionKey builds a cmi.interactions.<n>.<field> key.
func (d *Dialect) InteractionKey(index int, field string) string {
	return fmt.Sprintf("cmi.interactions.%d.%s", index, field)
}

// ObjectiveKey builds a cmi.objectives.<n>.<field> key.
func (d *Dialect) ObjectiveKey(index int, field string) string {
	return fmt.Sprintf("cmi.objectives.%d.%s", index, field)
}

// Result maps a correctness flag to the dialect's interaction result value.
func (d *Dialect) Result(wasCorrect *bool) string {
	switch {
	case wasCorrect == nil:
		return d.Results.Neutral
	case *wasCorrect:
		return d.Results.Correct
	default:
		return d.Results.Incorrect
	}
}
