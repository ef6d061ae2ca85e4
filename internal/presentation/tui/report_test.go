package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/scormkit/pkg/course"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSessionReport(t *testing.T) {
	recs := domain.DefaultInteractions()
	recs[1].Answer("Banana")

	out := SessionReport(course.Snapshot{Version: "1.2", ConnectRuns: 1, Location: 4}, recs)

	assert.Contains(t, out, "| Connected | false |")
	assert.Contains(t, out, "| Version | 1.2 |")
	assert.Contains(t, out, "| Location | 4 |")
	assert.Contains(t, out, "| Suspend data | `-` |")
	assert.Contains(t, out, "| q1 | Which colour is the sky on a clear day? | - | - |")
	assert.Contains(t, out, "| q2 | Which fruit is yellow? | Banana | true |")
}

func TestStorageReport(t *testing.T) {
	out := StorageReport("learner", []string{domain.KeyBookmark, domain.KeySuspendDataStr}, map[string]string{
		domain.KeyBookmark:       "3",
		domain.KeySuspendDataStr: "{~a~:1|~b~:2}",
	})
	assert.Contains(t, out, "# Storage `learner`")
	assert.Contains(t, out, "| bookmark | `3` |")
	assert.Contains(t, out, `| suspend_data_str | `+"`{~a~:1\\|~b~:2}`"+` |`)

	assert.Contains(t, StorageReport("empty", nil, nil), "_empty_")
}

func TestPlainAndBanner(t *testing.T) {
	out, err := Plain("# hi")
	assert.NoError(t, err)
	assert.Equal(t, "# hi", out)

	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.NotEmpty(t, buf.String())
	assert.Contains(t, Status(true, "ok"), "ok")
}
