// Package rewrite implements case-aware token substitution for page text.
//
// A Rule names a target token and the replacement to emit for each case class
// of a match. Matching is case-insensitive and ignores word boundaries, so
// "Yale", "YALE", "yale" and "YaLe" inside any longer string all match.
//
// Case classes:
//   - AllUpper: the match equals its upper-case form ("YALE" -> "FALE")
//   - Capitalized: otherwise, the first rune is upper-case ("Yale", "YaLe" -> "Fale")
//   - AllLower: everything else ("yale" -> "fale")
//
// A Replacer compiles a RuleSet once and is safe for concurrent use. Rules can
// be built in code or loaded from a YAML or TOML file.
//
// Example Usage:
//
//	r := rewrite.NewDefaultReplacer()
//	out := r.Replace("Welcome to YALE") // "Welcome to FALE"
package rewrite
