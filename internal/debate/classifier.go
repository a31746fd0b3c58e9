package debate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minSubstantiveLength = 20

// classifierRule is one entry in the ordered non-substantive pattern set.
// Rules are plain data so the set can be table-tested and extended.
type classifierRule struct {
	name    string
	matches func(normalized string) bool
}

var concessionTokens = map[string]struct{}{
	"ok":           {},
	"okay":         {},
	"sure":         {},
	"whatever":     {},
	"fine":         {},
	"lol":          {},
	"lmao":         {},
	"idk":          {},
	"nah":          {},
	"i don't care": {},
	"i give up":    {},
	"you win":      {},
	"nevermind":    {},
}

var (
	laughterPattern = regexp.MustCompile(`^(?:(?:ha)+h?|(?:he)+h?|rofl|xd+)$`)
	periodsPattern  = regexp.MustCompile(`^\.+$`)
)

var nonSubstantiveRules = []classifierRule{
	{
		name: "concession-token",
		matches: func(s string) bool {
			_, ok := concessionTokens[s]
			return ok
		},
	},
	{
		name:    "laughter-only",
		matches: laughterPattern.MatchString,
	},
	{
		name:    "periods-only",
		matches: periodsPattern.MatchString,
	},
	{
		name: "below-min-length",
		matches: func(s string) bool {
			return utf8.RuneCountInString(s) < minSubstantiveLength
		},
	},
}

// classifyNonSubstantive reports whether a message carries no debate substance
// and, when it does not, which rule matched first.
func classifyNonSubstantive(message string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(message))
	for _, rule := range nonSubstantiveRules {
		if rule.matches(normalized) {
			return rule.name, true
		}
	}
	return "", false
}
