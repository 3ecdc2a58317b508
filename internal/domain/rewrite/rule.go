package rewrite

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultToken is the token rewritten when no rules file is configured
	DefaultToken = "Yale"
	// DefaultReplacement is the replacement for DefaultToken
	DefaultReplacement = "Fale"
)

var (
	ErrEmptyToken     = errors.New("rule token must not be empty")
	ErrDuplicateToken = errors.New("duplicate rule token")
	ErrNoRules        = errors.New("at least one rule is required")
)

// CaseClass is the casing pattern of a matched token occurrence
type CaseClass int

const (
	AllLower CaseClass = iota
	Capitalized
	AllUpper
)

// String returns the string representation of the case class
func (c CaseClass) String() string {
	switch c {
	case AllUpper:
		return "ALL_UPPER"
	case Capitalized:
		return "CAPITALIZED"
	case AllLower:
		return "ALL_LOWER"
	default:
		return "unknown"
	}
}

// Classify returns the case class of a matched substring.
// A match equal to its own upper-case form is AllUpper; otherwise an
// upper-case first rune makes it Capitalized ("YaLe" included).
func Classify(match string) CaseClass {
	if match == strings.ToUpper(match) {
		return AllUpper
	}
	first, _ := utf8.DecodeRuneInString(match)
	if first != utf8.RuneError && unicode.ToUpper(first) == first {
		return Capitalized
	}
	return AllLower
}

// Rule maps a target token to its replacement for each case class
type Rule struct {
	Token       string
	Upper       string
	Capitalized string
	Lower       string
}

// NewRule derives the three casings of replacement for token
func NewRule(token, replacement string) Rule {
	return Rule{
		Token:       token,
		Upper:       strings.ToUpper(replacement),
		Capitalized: capitalize(replacement),
		Lower:       strings.ToLower(replacement),
	}
}

// DefaultRule returns the Yale -> Fale rule
func DefaultRule() Rule {
	return NewRule(DefaultToken, DefaultReplacement)
}

// For returns the replacement text for a case class
func (r Rule) For(class CaseClass) string {
	switch class {
	case AllUpper:
		return r.Upper
	case Capitalized:
		return r.Capitalized
	default:
		return r.Lower
	}
}

// Validate checks that the rule can be compiled
func (r Rule) Validate() error {
	if r.Token == "" {
		return ErrEmptyToken
	}
	return nil
}

// ValidateRules checks every rule and rejects tokens that collide
// case-insensitively.
func ValidateRules(rules []Rule) error {
	if len(rules) == 0 {
		return ErrNoRules
	}
	seen := make(map[string]bool, len(rules))
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
		key := strings.ToLower(r.Token)
		if seen[key] {
			return fmt.Errorf("rule %d: %w: %q", i, ErrDuplicateToken, r.Token)
		}
		seen[key] = true
	}
	return nil
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
