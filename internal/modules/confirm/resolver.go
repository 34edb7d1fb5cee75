// README: Interprets the user's answer to a cultural-route offer.
package confirm

import "strings"

type Verdict int

const (
	Unclear Verdict = iota
	Affirmative
	Negative
)

func (v Verdict) String() string {
	switch v {
	case Affirmative:
		return "affirmative"
	case Negative:
		return "negative"
	default:
		return "unclear"
	}
}

// IncludeCulturalWaypoints is true only for an affirmative answer.
func (v Verdict) IncludeCulturalWaypoints() bool {
	return v == Affirmative
}

// rule matches a lowercased message. Rules are evaluated in order and the
// first match wins.
type rule struct {
	verdict Verdict
	match   func(lower string, words []string) bool
}

// affirmativeKeywords are matched as substrings, so "tidak mau" counts as
// affirmative and "saya" contains "ya". Callers rely on this behaviour.
var affirmativeKeywords = []string{"ya", "mau", "boleh", "tertarik", "tentu"}

var negativeWords = map[string]bool{
	"tidak":  true,
	"gak":    true,
	"nggak":  true,
	"enggak": true,
	"ga":     true,
	"jangan": true,
	"no":     true,
	"nope":   true,
	"skip":   true,
}

var rules = []rule{
	{
		verdict: Affirmative,
		match: func(lower string, _ []string) bool {
			for _, kw := range affirmativeKeywords {
				if strings.Contains(lower, kw) {
					return true
				}
			}
			return false
		},
	},
	{
		verdict: Negative,
		match: func(_ string, words []string) bool {
			for _, w := range words {
				if negativeWords[w] {
					return true
				}
			}
			return false
		},
	},
}

// Resolve classifies a reply to the route offer.
func Resolve(message string) Verdict {
	lower := strings.ToLower(message)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})
	for _, r := range rules {
		if r.match(lower, words) {
			return r.verdict
		}
	}
	return Unclear
}
