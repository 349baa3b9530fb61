package usecase

import (
	"strings"

	"dorkboard/internal/domain"
)

// operatorRule detects one search operator in a template.
type operatorRule struct {
	token   string
	meaning string
	match   func(template string) bool
}

func containsAny(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if strings.Contains(s, sub) {
				return true
			}
		}
		return false
	}
}

// hasExclusion reports whether any whitespace-separated term starts with "-".
func hasExclusion(s string) bool {
	for _, field := range strings.Fields(s) {
		if len(field) > 1 && field[0] == '-' {
			return true
		}
	}
	return false
}

var operatorRules = []operatorRule{
	{
		token:   "inurl:",
		meaning: "Requires the keyword to appear in the result's URL.",
		match:   containsAny("inurl:"),
	},
	{
		token:   "ext: / filetype:",
		meaning: "Limits results to files with the given extension.",
		match:   containsAny("ext:", "filetype:"),
	},
	{
		token:   "site:",
		meaning: "Restricts results to the given domain and its subdomains.",
		match:   containsAny("site:"),
	},
	{
		token:   "intitle:",
		meaning: "Requires the keyword to appear in the page title.",
		match:   containsAny("intitle:"),
	},
	{
		token:   `"..."`,
		meaning: "Exact-phrase match: the quoted text must appear verbatim.",
		match:   containsAny(`"`),
	},
	{
		token:   "|",
		meaning: "OR: a result may match any one of the alternatives.",
		match:   containsAny("|"),
	},
	{
		token:   "-term",
		meaning: "Exclusion: drops results containing the term, e.g. -www to surface other subdomains.",
		match:   hasExclusion,
	},
}

// Explain lists the search operators used by template, in a fixed order.
func Explain(template string) []domain.Operator {
	var ops []domain.Operator
	for _, rule := range operatorRules {
		if rule.match(template) {
			ops = append(ops, domain.Operator{Token: rule.token, Meaning: rule.meaning})
		}
	}
	return ops
}
