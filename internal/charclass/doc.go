// Package charclass finds redundant shorthand escapes inside bracketed
// character classes of a regular expression.
//
// # Model
//
// A Pattern is the regex body with delimiters and flags already removed.
// Every top-level `[...]` class is tokenized into Members, a closed set of
// three variants:
//
//   - Shorthand – one of `\d \D \w \W \s \S`;
//   - Escaped – any other backslash pair (`\[`, `\]`, `\.`), never a shorthand;
//   - Literal – any other single character.
//
// A class is "greedy" when it contains a shorthand whose set is a strict
// subset of another shorthand present in the same class. The subset table is
// fixed:
//
//	\d ⊂ \w
//	\D ⊂ \W
//
// # Offsets
//
// Offsets in CharacterClass, Member and Finding are character (rune) offsets
// into the Pattern; End is exclusive. Hosts that work with bytes use
// Pattern.ByteOffset.
//
// # Concurrency
//
// The package holds no mutable state. All functions are pure and may be
// called from any number of goroutines.
package charclass
