// Package progress tracks which questions a device has answered or
// bookmarked and how far through each category it is.
package progress

import (
	"sort"
	"time"
)

// Bookmarks is a set of question ids.
type Bookmarks map[int]struct{}

// NewBookmarks builds a set from the persisted array form.
func NewBookmarks(ids []int) Bookmarks {
	b := make(Bookmarks, len(ids))
	for _, id := range ids {
		b[id] = struct{}{}
	}
	return b
}

// Toggle flips membership of id and reports whether it is now bookmarked.
func (b Bookmarks) Toggle(id int) bool {
	if _, ok := b[id]; ok {
		delete(b, id)
		return false
	}
	b[id] = struct{}{}
	return true
}

func (b Bookmarks) Has(id int) bool {
	_, ok := b[id]
	return ok
}

// IDs returns the persisted array form, sorted ascending.
func (b Bookmarks) IDs() []int {
	ids := make([]int, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Completed is the latest answer given to a question.
type Completed struct {
	Completed bool   `json:"completed"`
	Timestamp string `json:"timestamp"`
	Correct   bool   `json:"correct"`
	Section   string `json:"section"`
}

// Record stores the answer to id, replacing any earlier one.
func Record(completed map[int]Completed, id int, section string, correct bool, now time.Time) {
	completed[id] = Completed{
		Completed: true,
		Timestamp: now.UTC().Format(time.RFC3339),
		Correct:   correct,
		Section:   section,
	}
}

// Category is how many of a category's questions have been answered.
type Category struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Compute counts completed questions per section against the bank totals.
// Sections missing from totals are ignored.
func Compute(completed map[int]Completed, totals map[string]int) map[string]Category {
	out := make(map[string]Category, len(totals))
	for section, total := range totals {
		out[section] = Category{Total: total}
	}
	for _, c := range completed {
		if !c.Completed {
			continue
		}
		p, ok := out[c.Section]
		if !ok {
			continue
		}
		if p.Completed < p.Total {
			p.Completed++
		}
		out[c.Section] = p
	}
	return out
}
