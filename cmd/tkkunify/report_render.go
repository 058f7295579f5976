package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"tkkunify/internal/unify"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 14
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderRunReport(out io.Writer, res *unify.Result, colorize bool) {
	for _, line := range renderSectionHeader("Unification", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Entries", statusInfo, fmt.Sprintf("%d processed", res.Entries), colorize))
	fmt.Fprintln(out, renderStatusLine("Renames", statusOK, fmt.Sprintf("%d", res.Renames), colorize))

	if len(res.Failures) == 0 {
		fmt.Fprintln(out, renderStatusLine("Failures", statusOK, "none", colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Failures", statusWarn, fmt.Sprintf("%d blocks left untouched", len(res.Failures)), colorize))
		for _, failure := range res.Failures {
			fmt.Fprintln(out, renderStatusLine(failure.EntryID, statusWarn, describeFailure(failure), colorize))
		}
	}

	renderIssueLines(out, res.Issues, colorize)
}

func renderCheckReport(out io.Writer, issues []unify.Issue, colorize bool) {
	for _, line := range renderSectionHeader("Consistency check", colorize) {
		fmt.Fprintln(out, line)
	}
	renderIssueLines(out, issues, colorize)
}

func renderIssueLines(out io.Writer, issues []unify.Issue, colorize bool) {
	if len(issues) == 0 {
		fmt.Fprintln(out, renderStatusLine("Validation", statusOK, "clean", colorize))
		return
	}
	fmt.Fprintln(out, renderStatusLine("Validation", statusError, fmt.Sprintf("%d unreconciled ids", len(issues)), colorize))
	for _, issue := range issues {
		fmt.Fprintln(out, renderStatusLine(issueLabel(issue), statusError, fmt.Sprintf("id %q", issue.Value), colorize))
	}
}

func describeFailure(failure unify.BlockFailure) string {
	switch failure.Kind {
	case unify.FailureAmbiguous:
		return fmt.Sprintf("id %q appears %d times in %s", failure.GroupRef, failure.Occurrences, failure.File)
	default:
		return fmt.Sprintf("id %q not found in any relevant file", failure.GroupRef)
	}
}

func issueLabel(issue unify.Issue) string {
	if issue.Kind == unify.IssueOrphanElement {
		return issue.File
	}
	return issue.EntryID
}
