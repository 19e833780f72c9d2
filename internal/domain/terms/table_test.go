package terms_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ozcitizen/backend/internal/domain/terms"
)

func mustParse(t *testing.T, src string) []terms.Entry {
	t.Helper()
	entries, skipped, err := terms.ParseSource([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped entries: %v", skipped)
	}
	return entries
}

func termNames(matches []terms.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Term
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNormalize_String(t *testing.T) {
	e, err := terms.Normalize(json.RawMessage(`"  Parliament "`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.Term != "parliament" || e.Definition != terms.PlaceholderDefinition || !e.Placeholder {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestNormalize_Object(t *testing.T) {
	e, err := terms.Normalize(json.RawMessage(`{"word":"Senate","definition":"Upper house.","translations":{"ZH":"参议院"}}`))
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.Term != "senate" || e.Definition != "Upper house." || e.Placeholder {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Translations["zh"] != "参议院" {
		t.Errorf("expected lowercased translation key, got %v", e.Translations)
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, raw := range []string{`""`, `{"definition":"x"}`} {
		if _, err := terms.Normalize(json.RawMessage(raw)); !errors.Is(err, terms.ErrEmptyTerm) {
			t.Errorf("%s: expected ErrEmptyTerm, got %v", raw, err)
		}
	}
}

func TestParseSource_SkipsBadElements(t *testing.T) {
	entries, skipped, err := terms.ParseSource([]byte(`["vote", 42, {"word":""}, {"word":"jury","definition":"Citizens deciding a trial."}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
	if len(skipped) != 2 {
		t.Errorf("expected 2 skipped, got %d", len(skipped))
	}
}

func TestParseSource_NotAnArray(t *testing.T) {
	if _, _, err := terms.ParseSource([]byte(`{"word":"x"}`)); !errors.Is(err, terms.ErrMalformedSource) {
		t.Error("expected error for non-array source")
	}
}

func TestLookup_LongestFirstCaseInsensitive(t *testing.T) {
	table := terms.NewTable(terms.Substring)
	table.Import(mustParse(t, `[
		{"word":"citizenship","definition":"Membership of a nation."},
		{"word":"Australian citizenship","definition":"Formal membership of the Australian community.","translations":{"zh":"澳大利亚公民身份"}}
	]`))

	got := table.Lookup("What does Australian Citizenship mean?", "zh")
	if !equal(termNames(got), []string{"australian citizenship", "citizenship"}) {
		t.Fatalf("unexpected order %v", termNames(got))
	}
	if got[0].Translation == nil || *got[0].Translation != "澳大利亚公民身份" {
		t.Errorf("expected translation for first match, got %v", got[0].Translation)
	}
	if got[1].Translation != nil {
		t.Errorf("expected nil translation, got %q", *got[1].Translation)
	}
	if got[1].Explanation != "Membership of a nation." {
		t.Errorf("unexpected explanation %q", got[1].Explanation)
	}
}

func TestLookup_TiesAreAlphabetical(t *testing.T) {
	table := terms.NewTable(terms.Substring)
	table.Import(mustParse(t, `["vote", "jury", "oath"]`))

	got := termNames(table.Lookup("An oath, a vote and a jury.", "en"))
	if !equal(got, []string{"jury", "oath", "vote"}) {
		t.Errorf("unexpected order %v", got)
	}
}

func TestLookup_EachTermOnce(t *testing.T) {
	table := terms.NewTable(terms.Substring)
	table.Import(mustParse(t, `["vote"]`))

	got := table.Lookup("vote vote VOTE", "en")
	if len(got) != 1 {
		t.Errorf("expected one match, got %d", len(got))
	}
}

func TestLookup_EmptyTextOrTable(t *testing.T) {
	table := terms.NewTable(terms.Substring)
	if got := table.Lookup("anything", "en"); len(got) != 0 {
		t.Errorf("expected no matches from empty table, got %v", got)
	}
	table.Import(mustParse(t, `["vote"]`))
	if got := table.Lookup("   ", "en"); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %v", got)
	}
}

func TestLookup_Strategies(t *testing.T) {
	src := `["law"]`
	text := "Australian laws are made by parliament."

	sub := terms.NewTable(terms.Substring)
	sub.Import(mustParse(t, src))
	if got := sub.Lookup(text, "en"); len(got) != 1 {
		t.Errorf("substring: expected law inside laws to match, got %v", got)
	}

	word := terms.NewTable(terms.WordBoundary)
	word.Import(mustParse(t, src))
	if got := word.Lookup(text, "en"); len(got) != 0 {
		t.Errorf("word boundary: expected no match, got %v", got)
	}
	if got := word.Lookup("The law applies; laws change.", "en"); len(got) != 1 {
		t.Errorf("word boundary: expected standalone law to match, got %v", got)
	}
}

func TestImport_ConflictPolicy(t *testing.T) {
	table := terms.NewTable(terms.Substring)
	table.Import(mustParse(t, `[{"word":"vote","definition":"First."}]`))

	if n := table.Import(mustParse(t, `["vote"]`)); n != 0 {
		t.Errorf("placeholder should not overwrite, changed %d", n)
	}
	if e, _ := table.Get("vote"); e.Definition != "First." {
		t.Errorf("expected definition kept, got %q", e.Definition)
	}

	if n := table.Import(mustParse(t, `[{"word":"Vote","definition":"Second."}]`)); n != 1 {
		t.Errorf("expected later object to replace, changed %d", n)
	}
	if e, _ := table.Get("VOTE"); e.Definition != "Second." {
		t.Errorf("expected later definition, got %q", e.Definition)
	}
}

func TestImport_Idempotent(t *testing.T) {
	src := `["vote", {"word":"jury","definition":"Trial panel.","translations":{"hi":"जूरी"}}]`
	table := terms.NewTable(terms.Substring)

	if n := table.Import(mustParse(t, src)); n != 2 {
		t.Fatalf("expected 2 changes on first import, got %d", n)
	}
	before := table.Entries()
	if n := table.Import(mustParse(t, src)); n != 0 {
		t.Errorf("expected no changes on second import, got %d", n)
	}
	after := table.Entries()
	if len(before) != len(after) {
		t.Fatalf("entry count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].Term != after[i].Term || before[i].Definition != after[i].Definition {
			t.Errorf("entry %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestClear(t *testing.T) {
	table := terms.NewTable(terms.Substring)
	table.Import(mustParse(t, `["vote", "jury"]`))
	table.Clear()

	if table.Len() != 0 {
		t.Errorf("expected empty table, got %d", table.Len())
	}
	if got := table.Lookup("vote", "en"); len(got) != 0 {
		t.Errorf("expected no matches after clear, got %v", got)
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    terms.Strategy
		wantErr bool
	}{
		{"", terms.Substring, false},
		{"substring", terms.Substring, false},
		{" WORD ", terms.WordBoundary, false},
		{"regex", "", true},
	}
	for _, tt := range tests {
		got, err := terms.ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.in, got, tt.want)
		}
	}
}
