// internal/words/words.go
//
// Word normalization, validation, and flag sets.
//
// Normalization (applied to user input before any lookup):
//   1. Upper-case with full Unicode case mapping ("ß" -> "SS").
//   2. Drop every rune outside the unaccented Latin alphabet A–Z.
//
// Validation (applied to the normalized word, in this order):
//   - letters only (A–Z)
//   - length within [MinLength, MaxLength]
//
// Normalization already strips non-letters, so the letters-only check can only
// fail for callers that skip Normalize. Both checks are kept so Validate stands
// on its own.

package words

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/silvncr/watchword-bot/internal/errs"
)

const (
	MinLength = 2
	MaxLength = 40

	ReasonLettersOnly = "Words must have letters only!"
	ReasonLength      = "Words must be between 2 and 40 characters long!"
)

// Normalize upper-cases raw and strips everything that is not A–Z.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if r < 'A' || r > 'Z' {
			return -1
		}
		return r
	}, upper(raw))
}

// Validate rejects a normalized word with an *errs.InvalidInputError.
func Validate(word string) error {
	if !isAlpha(word) {
		return &errs.InvalidInputError{Word: word, Reason: ReasonLettersOnly}
	}
	if n := len(word); n < MinLength || n > MaxLength {
		return &errs.InvalidInputError{Word: word, Reason: ReasonLength}
	}
	return nil
}

// upper applies full Unicode upper-casing.
// A Caser is stateful, so one is built per call.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Flags is the set of category tags attached to a word.
type Flags map[string]struct{}

// NewFlags builds a set from a list of tags.
func NewFlags(tags ...string) Flags {
	f := make(Flags, len(tags))
	for _, t := range tags {
		f[t] = struct{}{}
	}
	return f
}

// Union returns a new set holding the tags of f and other.
func (f Flags) Union(other Flags) Flags {
	out := make(Flags, len(f)+len(other))
	for t := range f {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Sorted returns the tags in ascending order.
func (f Flags) Sorted() []string {
	out := make([]string, 0, len(f))
	for t := range f {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// String joins the sorted tags with ", " or returns "(none)".
func (f Flags) String() string {
	if len(f) == 0 {
		return "(none)"
	}
	return strings.Join(f.Sorted(), ", ")
}

// Wordlist maps a normalized word to its flags.
type Wordlist map[string]Flags

// Has reports whether w is in the list.
func (wl Wordlist) Has(w string) bool {
	_, ok := wl[w]
	return ok
}

// Wordlists holds one Wordlist per canonical version that had any words.
type Wordlists map[string]Wordlist

// Full returns the union of words across all versions.
func (ws Wordlists) Full() map[string]struct{} {
	full := make(map[string]struct{})
	for _, wl := range ws {
		for w := range wl {
			full[w] = struct{}{}
		}
	}
	return full
}
