package domain

import (
	"fmt"
	"regexp"
)

var truthyPattern = regexp.MustCompile(`(?i)(true|1)`)

// Truthy normalizes a loosely typed host response into a success flag.
//
// Strings (and any other value, via its printed form) are truthy when they
// contain "true" or "1", case-insensitively. Numbers are truthy when non-zero.
// nil is false.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return truthyPattern.MatchString(t)
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case uintptr:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case fmt.Stringer:
		return truthyPattern.MatchString(t.String())
	default:
		return truthyPattern.MatchString(fmt.Sprint(t))
	}
}

// Stringify converts a host response into the string the protocol expects.
// nil becomes the empty string.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
