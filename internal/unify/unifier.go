package unify

import (
	"errors"
	"io"
	"log/slog"
	"sort"
	"strconv"

	"tkkunify/internal/catalog"
	"tkkunify/internal/markup"
	"tkkunify/internal/textcritics"
)

// DefaultPrefix is the canonical namespace for unified group ids.
const DefaultPrefix = "g-tkk-"

// ambiguityProbe is the throwaway target used to pre-detect duplicate ids
// before any real mutation.
const ambiguityProbe = "tkkunify-probe"

// FailureKind classifies a per-block reconciliation failure.
type FailureKind string

const (
	// FailureNotFound marks a group id that no relevant file contains.
	FailureNotFound FailureKind = "not-found"
	// FailureAmbiguous marks a group id carried by several tkk elements.
	FailureAmbiguous FailureKind = "ambiguous"
)

// BlockFailure is one block the run could not reconcile. The block and its
// markup are left exactly as they were.
type BlockFailure struct {
	Kind        FailureKind
	EntryID     string
	GroupRef    string
	File        string // set for ambiguous failures
	Occurrences int    // set for ambiguous failures
}

// Result captures the outcome of a completed run.
type Result struct {
	// Document is the mutated textcritics document.
	Document *textcritics.Document
	// Files holds the final text of every markup file the run loaded.
	Files map[string]string
	// Entries counts the processed textcritics entries.
	Entries int
	// Renames counts the performed id rewrites.
	Renames int
	// Failures lists the blocks the run could not reconcile.
	Failures []BlockFailure
	// Issues is the closing validation report over the final state.
	Issues []Issue
}

// markupFile is one cached markup artifact.
type markupFile struct {
	name string
	text string
}

// Unifier owns the transient and the accumulating markup cache for one run.
// It is not safe for concurrent use; a run is strictly sequential because the
// sequence numbers depend on encounter order.
type Unifier struct {
	store  FileStore
	prefix string
	logger *slog.Logger

	transient   map[string]*markupFile
	accumulated map[string]*markupFile
}

// New prepares a Unifier over the given store. An empty prefix falls back to
// DefaultPrefix; a nil logger discards all output.
func New(store FileStore, prefix string, logger *slog.Logger) *Unifier {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Unifier{
		store:       store,
		prefix:      prefix,
		logger:      logger,
		transient:   make(map[string]*markupFile),
		accumulated: make(map[string]*markupFile),
	}
}

// Run processes every entry of doc in document order, mutating doc and the
// store together. Per-block failures are recorded in the Result; only I/O
// errors abort the run.
func (u *Unifier) Run(doc *textcritics.Document) (*Result, error) {
	names := u.store.List()
	res := &Result{Document: doc}

	for _, entry := range doc.Entries() {
		entryID := entry.ID()
		var relevant []string
		if entryID != "" {
			// Flush before computing the new working set so sequence state
			// of the previous entry is fully persisted.
			if err := u.flush(); err != nil {
				return nil, err
			}
			relevant = catalog.RelevantFiles(entryID, names)
			u.logger.Info("processing entry",
				"entry", entryID,
				"number", catalog.Number(entryID),
				"relevant_files", len(relevant))
		}

		renames := make(map[string]string)
		for _, block := range entry.Blocks() {
			if err := u.processBlock(entryID, block, relevant, renames, res); err != nil {
				return nil, err
			}
		}
		res.Entries++
	}

	if err := u.flush(); err != nil {
		return nil, err
	}

	res.Files = make(map[string]string, len(u.accumulated))
	for name, mf := range u.accumulated {
		res.Files[name] = mf.text
	}
	res.Issues = Validate(doc, u.prefix, res.Files)
	return res, nil
}

func (u *Unifier) processBlock(entryID string, block *textcritics.Block, relevant []string, renames map[string]string, res *Result) error {
	old := block.GroupRef()
	if old == "" || old == "TODO" {
		return nil
	}

	var hit *markupFile
	for _, name := range relevant {
		mf, err := u.load(name)
		if err != nil {
			return err
		}
		if markup.ContainsID(mf.text, old) {
			hit = mf
			break
		}
	}
	if hit == nil {
		u.logger.Warn("group id not found in relevant files", "entry", entryID, "id", old)
		res.Failures = append(res.Failures, BlockFailure{
			Kind:     FailureNotFound,
			EntryID:  entryID,
			GroupRef: old,
		})
		return nil
	}

	// Probe with a throwaway target first: an ambiguous id must leave both
	// the document and the file untouched.
	if _, err := markup.Rewrite(hit.text, old, ambiguityProbe); err != nil {
		var amb *markup.AmbiguousIDError
		if !errors.As(err, &amb) {
			return err
		}
		u.logger.Warn("ambiguous group id, skipping block",
			"entry", entryID, "id", old, "file", hit.name, "occurrences", amb.Count)
		res.Failures = append(res.Failures, BlockFailure{
			Kind:        FailureAmbiguous,
			EntryID:     entryID,
			GroupRef:    old,
			File:        hit.name,
			Occurrences: amb.Count,
		})
		return nil
	}

	newVal, ok := renames[old]
	if !ok {
		newVal = u.prefix + strconv.Itoa(len(renames)+1)
		renames[old] = newVal
	}
	if newVal == old {
		// Already canonical, nothing to mutate.
		return nil
	}

	block.SetGroupRef(newVal)
	text, err := markup.Rewrite(hit.text, old, newVal)
	if err != nil {
		return err
	}
	hit.text = text
	res.Renames++
	u.logger.Info("renamed group id", "entry", entryID, "old", old, "new", newVal, "file", hit.name)
	return nil
}

// load fetches a file into both caches on first access.
func (u *Unifier) load(name string) (*markupFile, error) {
	if mf, ok := u.transient[name]; ok {
		return mf, nil
	}
	text, err := u.store.Read(name)
	if err != nil {
		return nil, err
	}
	mf := &markupFile{name: name, text: text}
	u.transient[name] = mf
	u.accumulated[name] = mf
	return mf, nil
}

// flush writes every transiently cached file back through the store and
// empties the transient cache. The accumulating cache is untouched.
func (u *Unifier) flush() error {
	if len(u.transient) == 0 {
		return nil
	}
	names := make([]string, 0, len(u.transient))
	for name := range u.transient {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := u.store.Write(name, u.transient[name].text); err != nil {
			return err
		}
	}
	u.transient = make(map[string]*markupFile)
	return nil
}
