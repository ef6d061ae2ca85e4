package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/scormkit/pkg/course"
	"github.com/aretw0/scormkit/pkg/domain"
)

// SessionReport renders a learner session summary as markdown.
func SessionReport(snap course.Snapshot, interactions []domain.Interaction) string {
	var b strings.Builder

	b.WriteString("# SCORM session\n\n")
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Connected | %t |\n", snap.Connected)
	fmt.Fprintf(&b, "| Version | %s |\n", orDash(snap.Version))
	fmt.Fprintf(&b, "| Connect attempts | %d |\n", snap.ConnectRuns)
	fmt.Fprintf(&b, "| Location | %d |\n", snap.Location)
	fmt.Fprintf(&b, "| Suspend data | `%s` |\n", orDash(snap.SuspendData))

	if len(interactions) > 0 {
		b.WriteString("\n## Interactions\n\n")
		b.WriteString("| ID | Question | Response | Correct |\n|---|---|---|---|\n")
		for _, rec := range interactions {
			correct := "-"
			if rec.WasCorrect != nil {
				correct = fmt.Sprint(*rec.WasCorrect)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", rec.ID, rec.QuestionRef, orDash(rec.LearnerResponse), correct)
		}
	}
	return b.String()
}

// StorageReport renders the items of one storage namespace as markdown.
func StorageReport(namespace string, keys []string, values map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Storage `%s`\n\n", namespace)
	if len(keys) == 0 {
		b.WriteString("_empty_\n")
		return b.String()
	}
	b.WriteString("| Key | Value |\n|---|---|\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s | `%s` |\n", k, strings.ReplaceAll(values[k], "|", "\\|"))
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
