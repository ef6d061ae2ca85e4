package domain

// Fallback storage keys used while no LMS connection exists.
const (
	KeyBookmark         = "bookmark"
	KeyBookmarkLocation = "bookmark_location"
	KeySuspendData      = "suspend_data"
	KeySuspendDataStr   = "suspend_data_str"
)

// Status values shared by both dialects.
const (
	StatusNotAttempted = "not attempted"
	StatusUnknown      = "unknown"
	StatusIncomplete   = "incomplete"
	StatusCompleted    = "completed"
	StatusPassed       = "passed"

	ExitSuspend = "suspend"
)

// Score bounds always written alongside a raw score.
const (
	ScoreMin = "0"
	ScoreMax = "100"
)
