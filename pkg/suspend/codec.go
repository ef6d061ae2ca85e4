// Package suspend encodes structured learner state into the SCORM suspend_data
// channel, which only safely carries strings free of quotes and commas.
package suspend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/aretw0/scormkit/pkg/domain"
)

// Placeholder characters standing in for the reserved JSON characters.
const (
	QuotePlaceholder      = '~' // "
	CommaPlaceholder      = '|' // ,
	ApostrophePlaceholder = '¬' // '
)

// ErrMalformed is returned when an escaped envelope contains an invalid escape sequence.
var ErrMalformed = errors.New("malformed suspend data envelope")

// Codec converts between a structured value and the suspend_data string.
type Codec interface {
	Name() string
	Encode(v any) (string, error)
	Decode(s string, dst any) error
}

// Marshal encodes v as compact JSON, leaving <, > and & unescaped so the
// output matches what browser content stores.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

var (
	substitute = strings.NewReplacer(`'`, "¬", `"`, "~", ",", "|")
	restore    = strings.NewReplacer("~", `"`, "|", ",", "¬", `'`)
)

// Substitution is the compatibility codec: JSON with quote, comma and apostrophe
// replaced by ~, | and ¬. Values that already contain a placeholder character
// do not survive a round trip; use Escaped when that matters.
type Substitution struct{}

// Name implements Codec.
func (Substitution) Name() string { return "substitution" }

// Encode implements Codec.
func (Substitution) Encode(v any) (string, error) {
	raw, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal suspend data: %w", err)
	}
	return substitute.Replace(string(raw)), nil
}

// Decode implements Codec.
func (Substitution) Decode(s string, dst any) error {
	if err := json.Unmarshal([]byte(restore.Replace(s)), dst); err != nil {
		return fmt.Errorf("failed to unmarshal suspend data: %w", err)
	}
	return nil
}

// Escaped is an unambiguous variant of Substitution: placeholder characters
// already present in the data, and the escape character itself, are escaped
// with '^' before substitution.
type Escaped struct{}

const escape = '^'

// Name implements Codec.
func (Escaped) Name() string { return "escaped" }

// Encode implements Codec.
func (Escaped) Encode(v any) (string, error) {
	raw, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal suspend data: %w", err)
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range string(raw) {
		switch r {
		case escape:
			b.WriteString("^^")
		case QuotePlaceholder:
			b.WriteString("^t")
		case CommaPlaceholder:
			b.WriteString("^p")
		case ApostrophePlaceholder:
			b.WriteString("^n")
		case '"':
			b.WriteRune(QuotePlaceholder)
		case ',':
			b.WriteRune(CommaPlaceholder)
		case '\'':
			b.WriteRune(ApostrophePlaceholder)
		default:
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// Decode implements Codec.
func (Escaped) Decode(s string, dst any) error {
	var b strings.Builder
	b.Grow(len(s))

	escaped := false
	for _, r := range s {
		if escaped {
			switch r {
			case escape:
				b.WriteRune(escape)
			case 't':
				b.WriteRune(QuotePlaceholder)
			case 'p':
				b.WriteRune(CommaPlaceholder)
			case 'n':
				b.WriteRune(ApostrophePlaceholder)
			default:
				return fmt.Errorf("%w: unknown escape %q", ErrMalformed, r)
			}
			escaped = false
			continue
		}
		switch r {
		case escape:
			escaped = true
		case QuotePlaceholder:
			b.WriteRune('"')
		case CommaPlaceholder:
			b.WriteRune(',')
		case ApostrophePlaceholder:
			b.WriteRune('\'')
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		return fmt.Errorf("%w: trailing escape", ErrMalformed)
	}

	if err := json.Unmarshal([]byte(b.String()), dst); err != nil {
		return fmt.Errorf("failed to unmarshal suspend data: %w", err)
	}
	return nil
}

// Length returns the envelope length in UTF-16 code units, the unit LMS
// limits are expressed in. Characters outside the BMP count as two.
func Length(encoded string) int {
	n := 0
	for _, r := range encoded {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// CheckLimit reports domain.ErrSuspendDataTooLarge when the Length of encoded
// exceeds the dialect's suspend data limit. Dialects without a limit always pass.
func CheckLimit(d *domain.Dialect, encoded string) error {
	if d == nil || d.SuspendDataLimit == 0 {
		return nil
	}
	if n := Length(encoded); n > d.SuspendDataLimit {
		return fmt.Errorf("%w: %d characters on SCORM %s (max %d)", domain.ErrSuspendDataTooLarge, n, d.Version, d.SuspendDataLimit)
	}
	return nil
}
