package terms

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PlaceholderDefinition is stored for terms imported as a bare word.
const PlaceholderDefinition = "Definition not available"

var (
	// ErrEmptyTerm is returned for source entries without a usable word.
	ErrEmptyTerm = errors.New("term has no word")
	// ErrMalformedSource is returned when a term list is not a JSON array.
	ErrMalformedSource = errors.New("term list is not a JSON array")
)

// Entry is the normalized form of a term, whatever shape it was imported from.
type Entry struct {
	Term         string            `json:"term"`
	Definition   string            `json:"definition"`
	Translations map[string]string `json:"translations,omitempty"`
	// Placeholder marks entries that came from a bare word and carry no
	// real definition yet.
	Placeholder bool `json:"placeholder,omitempty"`
}

type sourceObject struct {
	Word         string            `json:"word"`
	Term         string            `json:"term"`
	Definition   string            `json:"definition"`
	Translations map[string]string `json:"translations"`
}

// Key is the lookup key for a term: trimmed and lowercased.
func Key(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Normalize converts one source element, either a JSON string or an object
// with word and definition, into an Entry.
func Normalize(raw json.RawMessage) (Entry, error) {
	var word string
	if err := json.Unmarshal(raw, &word); err == nil {
		if Key(word) == "" {
			return Entry{}, ErrEmptyTerm
		}
		return Entry{
			Term:        Key(word),
			Definition:  PlaceholderDefinition,
			Placeholder: true,
		}, nil
	}

	var obj sourceObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Entry{}, fmt.Errorf("decode term: %w", err)
	}
	name := obj.Word
	if name == "" {
		name = obj.Term
	}
	if Key(name) == "" {
		return Entry{}, ErrEmptyTerm
	}

	e := Entry{
		Term:       Key(name),
		Definition: strings.TrimSpace(obj.Definition),
	}
	if e.Definition == "" {
		e.Definition = PlaceholderDefinition
		e.Placeholder = true
	}
	if len(obj.Translations) > 0 {
		e.Translations = make(map[string]string, len(obj.Translations))
		for lang, text := range obj.Translations {
			e.Translations[strings.ToLower(lang)] = text
		}
	}
	return e, nil
}

// ParseSource decodes a JSON array of mixed string/object terms. Elements
// that cannot be normalized are skipped and reported in the returned error
// list; the rest are still returned.
func ParseSource(data []byte) ([]Entry, []error, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}

	entries := make([]Entry, 0, len(raws))
	var skipped []error
	for i, raw := range raws {
		e, err := Normalize(raw)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}
