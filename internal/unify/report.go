package unify

import (
	"sort"
	"strings"

	"tkkunify/internal/markup"
	"tkkunify/internal/textcritics"
)

// IssueKind tells which representation still carries an unreconciled id.
type IssueKind string

const (
	// IssueUnreconciledBlock is a document block whose groupRef does not
	// carry the prefix.
	IssueUnreconciledBlock IssueKind = "document"
	// IssueOrphanElement is a tkk markup element whose id does not carry
	// the prefix.
	IssueOrphanElement IssueKind = "markup"
)

// Issue is one residual inconsistency found by the validation pass.
type Issue struct {
	Kind    IssueKind
	EntryID string // set for document issues
	File    string // set for markup issues
	Value   string
}

// Validate certifies the final state: every non-empty, non-TODO groupRef in
// the document and every tkk element id across the touched files must start
// with prefix. The pass is read-only and reports everything it finds.
func Validate(doc *textcritics.Document, prefix string, files map[string]string) []Issue {
	var issues []Issue

	for _, entry := range doc.Entries() {
		entryID := entry.ID()
		if entryID == "" {
			entryID = "Unknown"
		}
		for _, block := range entry.Blocks() {
			value := block.GroupRef()
			if value == "" || value == "TODO" || strings.HasPrefix(value, prefix) {
				continue
			}
			issues = append(issues, Issue{
				Kind:    IssueUnreconciledBlock,
				EntryID: entryID,
				Value:   value,
			})
		}
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, id := range markup.GroupIDs(files[name]) {
			if strings.HasPrefix(id, prefix) {
				continue
			}
			issues = append(issues, Issue{
				Kind:  IssueOrphanElement,
				File:  name,
				Value: id,
			})
		}
	}
	return issues
}
