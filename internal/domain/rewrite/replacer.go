package rewrite

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Replacer applies a fixed set of rules to text. It is immutable after
// construction and safe for concurrent use.
type Replacer struct {
	rules   []Rule
	pattern *regexp.Regexp
}

// NewReplacer compiles rules into a single case-insensitive alternation.
// Longer tokens are tried first so that overlapping tokens resolve to the
// longest match at each position.
func NewReplacer(rules ...Rule) (*Replacer, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}

	owned := make([]Rule, len(rules))
	copy(owned, rules)

	ordered := make([]Rule, len(owned))
	copy(ordered, owned)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Token) > len(ordered[j].Token)
	})

	alternatives := make([]string, len(ordered))
	for i, r := range ordered {
		alternatives[i] = regexp.QuoteMeta(r.Token)
	}

	pattern, err := regexp.Compile("(?i)(?:" + strings.Join(alternatives, "|") + ")")
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}

	return &Replacer{rules: owned, pattern: pattern}, nil
}

// NewDefaultReplacer returns a replacer holding only the Yale -> Fale rule
func NewDefaultReplacer() *Replacer {
	r, err := NewReplacer(DefaultRule())
	if err != nil {
		panic(fmt.Sprintf("default rule invalid: %v", err))
	}
	return r
}

// Rules returns a copy of the configured rules
func (r *Replacer) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Replace substitutes every match in s
func (r *Replacer) Replace(s string) string {
	out, _ := r.ReplaceCount(s)
	return out
}

// ReplaceCount substitutes every match in s and reports how many were made.
// Text between matches is copied through byte for byte.
func (r *Replacer) ReplaceCount(s string) (string, int) {
	if s == "" {
		return s, 0
	}

	count := 0
	out := r.pattern.ReplaceAllStringFunc(s, func(match string) string {
		rule, ok := r.ruleFor(match)
		if !ok {
			return match
		}
		count++
		return rule.For(Classify(match))
	})
	if count == 0 {
		return s, 0
	}
	return out, count
}

func (r *Replacer) ruleFor(match string) (Rule, bool) {
	for _, rule := range r.rules {
		if strings.EqualFold(rule.Token, match) {
			return rule, true
		}
	}
	return Rule{}, false
}
