package terms

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Strategy selects how a term is matched against question text.
type Strategy string

const (
	// Substring matches a term anywhere in the text, case-insensitively.
	// This is the canonical strategy.
	Substring Strategy = "substring"
	// WordBoundary only matches a term that is not part of a longer word.
	WordBoundary Strategy = "word"
)

// ParseStrategy maps a configuration value to a Strategy. Empty means Substring.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Substring:
		return Substring, nil
	case WordBoundary:
		return WordBoundary, nil
	default:
		return "", fmt.Errorf("unknown term match strategy %q", s)
	}
}

// Match is a term found in a piece of text.
type Match struct {
	Term        string  `json:"term"`
	Explanation string  `json:"explanation"`
	Translation *string `json:"translation"`
}

// Table maps lowercased terms to their entries. It is not safe for
// concurrent use; callers serialize access.
type Table struct {
	entries  map[string]Entry
	strategy Strategy
	ordered  []string // keys longest first, rebuilt lazily
}

func NewTable(strategy Strategy) *Table {
	if strategy == "" {
		strategy = Substring
	}
	return &Table{
		entries:  make(map[string]Entry),
		strategy: strategy,
	}
}

// Import merges entries into the table and returns how many keys changed.
//
// Conflict policy: an entry with a real definition replaces whatever is
// stored for its key, so the later import wins. A placeholder entry only
// fills a missing key and never overwrites a stored definition. Importing
// the same list twice leaves the table as it was after the first import.
func (t *Table) Import(entries []Entry) int {
	changed := 0
	for _, e := range entries {
		key := Key(e.Term)
		if key == "" {
			continue
		}
		e.Term = key

		existing, ok := t.entries[key]
		if e.Placeholder && ok {
			continue
		}
		if ok && sameEntry(existing, e) {
			continue
		}
		t.entries[key] = e
		changed++
	}
	if changed > 0 {
		t.ordered = nil
	}
	return changed
}

// Lookup returns every term contained in text, longest terms first. Each
// term appears at most once. language selects the translation; a term
// without one for that language gets a nil Translation.
func (t *Table) Lookup(text, language string) []Match {
	haystack := strings.ToLower(text)
	if strings.TrimSpace(haystack) == "" {
		return []Match{}
	}
	language = strings.ToLower(language)

	matches := []Match{}
	for _, key := range t.keys() {
		if !t.contains(haystack, key) {
			continue
		}
		e := t.entries[key]
		m := Match{Term: e.Term, Explanation: e.Definition}
		if tr, ok := e.Translations[language]; ok && tr != "" {
			m.Translation = &tr
		}
		matches = append(matches, m)
	}
	return matches
}

// Get returns the entry stored for term.
func (t *Table) Get(term string) (Entry, bool) {
	e, ok := t.entries[Key(term)]
	return e, ok
}

// Entries returns a copy of every entry, sorted by term.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out
}

func (t *Table) Len() int { return len(t.entries) }

func (t *Table) Clear() {
	t.entries = make(map[string]Entry)
	t.ordered = nil
}

func (t *Table) keys() []string {
	if t.ordered != nil {
		return t.ordered
	}
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})
	t.ordered = keys
	return keys
}

func (t *Table) contains(haystack, key string) bool {
	if t.strategy != WordBoundary {
		return strings.Contains(haystack, key)
	}

	offset := 0
	for {
		i := strings.Index(haystack[offset:], key)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(key)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(haystack[start:])
		offset = start + size
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func sameEntry(a, b Entry) bool {
	return a.Term == b.Term &&
		a.Definition == b.Definition &&
		a.Placeholder == b.Placeholder &&
		maps.Equal(a.Translations, b.Translations)
}
