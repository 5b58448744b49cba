package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/hay-kot/rulemend/internal/core/rules"
	"github.com/hay-kot/rulemend/internal/core/styles"
)

// printReport renders a batch report in the shared text layout: a header,
// one icon line per file, and a summary count line.
func printReport(w io.Writer, title string, report rules.Report) {
	divider := styles.TextMutedStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextPrimaryBoldStyle.Render(title))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	if report.Scanned == 0 {
		_, _ = fmt.Fprintln(w, styles.TextMutedStyle.Render("no rule files found"))
		_, _ = fmt.Fprintln(w)
		return
	}

	for _, f := range report.Files {
		var icon string
		switch f.Status {
		case rules.StatusOK, rules.StatusNone, rules.StatusFixed:
			icon = styles.TextSuccessStyle.Render("✔")
		case rules.StatusNeedsFix, rules.StatusSkipped:
			icon = styles.TextWarningStyle.Render("●")
		case rules.StatusFailed:
			icon = styles.TextErrorStyle.Render("✘")
		}

		detail := string(f.Status)
		if f.Detail != "" {
			detail = fmt.Sprintf("%s: %s", f.Status, f.Detail)
		}

		_, _ = fmt.Fprintf(w, "  %s %s %s\n", icon, f.Name, styles.TextMutedStyle.Render(detail))
	}

	_, _ = fmt.Fprintln(w)

	middle := fmt.Sprintf("%d fixed", report.Fixed)
	if n := report.NeedsFix(); n > 0 {
		middle = fmt.Sprintf("%d need fixing", n)
	}

	summary := fmt.Sprintf("%s  %s  %s",
		styles.TextSuccessStyle.Render(fmt.Sprintf("%d clean", report.Clean)),
		styles.TextWarningStyle.Render(middle),
		styles.TextErrorStyle.Render(fmt.Sprintf("%d failed", report.Failed)),
	)
	if report.Skipped > 0 {
		summary += "  " + styles.TextMutedStyle.Render(fmt.Sprintf("%d skipped", report.Skipped))
	}
	_, _ = fmt.Fprintln(w, summary)
}
