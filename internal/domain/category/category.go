package category

// The four fixed partitions of the question bank.
const (
	People     = "Part 1: Australia and its people"
	Democracy  = "Part 2: Australia's democratic beliefs, rights and liberties"
	Government = "Part 3: Government and the law in Australia"
	Values     = "Part 4: Australian values"
)

// All lists the categories in display order.
var All = []string{People, Democracy, Government, Values}

// Result is the per-category tally for a single attempt.
type Result struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// Stat is the cumulative tally for a category across every recorded attempt.
type Stat struct {
	Total    int `json:"total"`
	Correct  int `json:"correct"`
	Accuracy int `json:"accuracy"`
}

// Valid reports whether name is one of the fixed categories.
func Valid(name string) bool {
	for _, c := range All {
		if c == name {
			return true
		}
	}
	return false
}
