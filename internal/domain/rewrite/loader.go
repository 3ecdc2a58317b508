package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// ruleFile is the on-disk shape of a rules file.
//
//	rules:
//	  - token: Yale
//	    replacement: Fale
//	  - token: Harvard
//	    upper: HARVERD
//	    capitalized: Harverd
//	    lower: harverd
type ruleFile struct {
	Rules []ruleEntry `yaml:"rules" toml:"rules"`
}

type ruleEntry struct {
	Token       string `yaml:"token" toml:"token"`
	Replacement string `yaml:"replacement" toml:"replacement"`
	Upper       string `yaml:"upper" toml:"upper"`
	Capitalized string `yaml:"capitalized" toml:"capitalized"`
	Lower       string `yaml:"lower" toml:"lower"`
}

// LoadRules reads rules from a YAML (.yaml, .yml) or TOML (.toml) file
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var file ruleFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse yaml rules: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse toml rules: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported rules file extension: %q", ext)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for _, entry := range file.Rules {
		rules = append(rules, entry.toRule())
	}
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadReplacer builds a replacer from a rules file, or the default replacer
// when path is empty.
func LoadReplacer(path string) (*Replacer, error) {
	if path == "" {
		return NewDefaultReplacer(), nil
	}
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	return NewReplacer(rules...)
}

// explicit casings override the ones derived from replacement
func (e ruleEntry) toRule() Rule {
	r := NewRule(e.Token, e.Replacement)
	if e.Upper != "" {
		r.Upper = e.Upper
	}
	if e.Capitalized != "" {
		r.Capitalized = e.Capitalized
	}
	if e.Lower != "" {
		r.Lower = e.Lower
	}
	return r
}
