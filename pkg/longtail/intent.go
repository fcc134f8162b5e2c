package longtail

import (
	"strings"
)

// Hint lists are matched as substrings of the lowercased phrase. The trailing
// spaces in "in " and "near " are part of the hint.
var (
	localServiceHints = []string{
		"near me", "nearby", "open now", "closest", "local", "mobile", "in ", "near ",
	}
	commercialHints = []string{
		"price", "cost", "pricing", "quote", "booking", "book", "appointment",
		"deal", "coupon", "cheap", "best", "top", "reviews",
	}
	informationalHints = []string{
		"how to", "what is", "why", "guide", "tips", "benefits", "pros and cons",
		"mistakes", "schedule", "frequency", "checklist",
	}
	questionWords = map[string]bool{
		"how": true, "what": true, "why": true, "when": true, "where": true,
	}
)

// ClassifyIntent returns the intent of phrase. Local service hints are checked
// first, then commercial, then informational; the first match wins.
func ClassifyIntent(phrase string) Intent {
	p := strings.ToLower(strings.TrimSpace(phrase))

	switch {
	case containsAny(p, localServiceHints):
		return IntentLocalService
	case containsAny(p, commercialHints):
		return IntentCommercial
	case containsAny(p, informationalHints), startsWithQuestion(p):
		return IntentInformational
	default:
		return IntentOther
	}
}

func containsAny(s string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(s, h) {
			return true
		}
	}
	return false
}

func startsWithQuestion(s string) bool {
	fields := strings.Fields(s)
	return len(fields) > 0 && questionWords[fields[0]]
}
