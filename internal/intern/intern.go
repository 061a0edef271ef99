// Package intern implements the string interner external collaborator
// described in spec.md section 6: a table mapping lexemes to stable
// NameId handles, with case-insensitive lookup for MJ's case-folded
// identifiers and reserved words.
package intern

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// NameId is a non-negative integer handle uniquely identifying a
// lexeme. It never changes once issued.
type NameId int

// folder performs the Unicode-aware case folding used for every
// case-insensitive lookup. golang.org/x/text/cases is used instead of
// strings.ToLower because MJ case-insensitivity is a lexical-identity
// concern (two spellings name the same symbol), which is exactly what
// cases.Fold models, rather than a display-casing concern.
var folder = cases.Fold()

// widthFolder normalizes fullwidth ASCII forms (e.g. U+FF21 "Ａ") to
// their ordinary ASCII form before case folding, so a source file that
// mixes fullwidth and halfwidth spellings of the same identifier still
// interns to one NameId. The lexer takes no position on this; it is a
// defensive normalization this package adds on top.
var widthFolder = width.Fold

// Table is the string interner. A single Table is shared by the lexer
// (which interns identifiers and string constants as it scans) and the
// analyzer (which uses Find to look up predefined names).
type Table struct {
	mu       sync.Mutex
	byFolded map[string]NameId
	entries  []entry
}

type entry struct {
	original string
	folded   string
}

// New creates an empty interner.
func New() *Table {
	return &Table{
		byFolded: make(map[string]NameId),
	}
}

// Intern returns the stable NameId for text, assigning a new one the
// first time a given case-folded spelling is seen. Subsequent interns
// of a differently-cased spelling of an already-known name return the
// existing id; the original casing recorded is whichever spelling was
// interned first (used for diagnostics).
func (t *Table) Intern(text string) NameId {
	t.mu.Lock()
	defer t.mu.Unlock()

	folded := foldKey(text)
	if id, ok := t.byFolded[folded]; ok {
		return id
	}

	id := NameId(len(t.entries))
	t.entries = append(t.entries, entry{original: text, folded: folded})
	t.byFolded[folded] = id
	return id
}

// foldKey produces the lookup key shared by Intern and Find: fullwidth
// ASCII is narrowed first, then the result is case-folded.
func foldKey(text string) string {
	return folder.String(widthFolder.String(text))
}

// Find looks up an already-interned name without creating a new entry.
// It reports (id, true) on success, or (0, false) if text has never
// been interned under any casing.
func (t *Table) Find(text string) (NameId, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, ok := t.byFolded[foldKey(text)]
	return id, ok
}

// Lookup returns the originally-recorded spelling for id.
func (t *Table) Lookup(id NameId) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if int(id) < 0 || int(id) >= len(t.entries) {
		return "", false
	}
	return t.entries[id].original, true
}

// Equal reports whether two NameIds name the same case-folded lexeme.
// Since Intern/Find always resolve to the same id for any casing of a
// name, this is simply integer equality; the helper exists so callers
// read intent rather than comparing NameId values directly.
func Equal(a, b NameId) bool {
	return a == b
}
