package analysis

import "strings"

type fallbackTerm struct {
	explanation  string
	translations map[string]string
}

// fallbackDictionary answers when the model is unavailable.
var fallbackDictionary = map[string]fallbackTerm{
	"democracy": {
		explanation:  "A system of government where citizens choose their representatives by voting.",
		translations: map[string]string{"zh": "民主", "hi": "लोकतंत्र", "ar": "الديمقراطية", "vi": "dân chủ", "es": "democracia"},
	},
	"parliament": {
		explanation:  "The elected group of people who make the laws of the country.",
		translations: map[string]string{"zh": "议会", "hi": "संसद", "ar": "البرلمان", "vi": "quốc hội", "es": "parlamento"},
	},
	"constitution": {
		explanation:  "The set of basic rules for how the country is governed.",
		translations: map[string]string{"zh": "宪法", "hi": "संविधान", "ar": "الدستور", "vi": "hiến pháp", "es": "constitución"},
	},
	"citizenship": {
		explanation:  "Being a formal member of a country, with its rights and responsibilities.",
		translations: map[string]string{"zh": "公民身份", "hi": "नागरिकता", "ar": "المواطنة", "vi": "quyền công dân", "es": "ciudadanía"},
	},
	"referendum": {
		explanation:  "A vote where all citizens decide whether to change the Constitution.",
		translations: map[string]string{"zh": "全民公决", "hi": "जनमत संग्रह", "ar": "استفتاء", "vi": "trưng cầu dân ý", "es": "referéndum"},
	},
}

// Fallback returns the built-in explanations for terms that appear in text
// or options, in alphabetical order.
func Fallback(text string, options []string, language string) []Term {
	haystack := strings.ToLower(text + " " + strings.Join(options, " "))

	out := []Term{}
	for _, word := range fallbackOrder {
		if !strings.Contains(haystack, word) {
			continue
		}
		entry := fallbackDictionary[word]
		t := Term{Term: word, Explanation: entry.explanation}
		if language != "en" {
			t.Translation = entry.translations[strings.ToLower(language)]
		}
		out = append(out, t)
	}
	return out
}

var fallbackOrder = []string{"citizenship", "constitution", "democracy", "parliament", "referendum"}
