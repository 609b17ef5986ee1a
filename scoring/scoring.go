package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hireflow/assess/model"
)

// Normalize canonicalizes free-text input for comparison: trims surrounding
// whitespace, strips diacritics and uppercases. It never fails; garbage in,
// uppercase garbage out. Interior whitespace is preserved here and only
// collapsed by formula matching.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	return strings.ToUpper(s)
}

// foldFormula additionally removes all interior whitespace, so
// "SUM( A1 : A10 )" and "SUM(A1:A10)" compare equal.
func foldFormula(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, Normalize(s))
}

// Variants splits a pipe-delimited golden answer into its accepted variants,
// trimmed, with empty entries discarded.
func Variants(golden string) []string {
	var variants []string
	for _, v := range strings.Split(golden, "|") {
		if v = strings.TrimSpace(v); v != "" {
			variants = append(variants, v)
		}
	}
	return variants
}

// Score evaluates a single response against the question's golden answer.
// Points are binary: the full point value on a match, zero otherwise.
// Free-text questions are never auto-scored.
func Score(q model.Question, response string) (correct bool, awarded int) {
	switch q.Type {
	case model.MCQ:
		sel, want := firstLetter(response), firstLetter(q.Golden)
		if sel != 0 && sel == want {
			return true, q.Points
		}
	case model.Formula:
		folded := foldFormula(response)
		for _, v := range Variants(q.Golden) {
			if folded == foldFormula(v) {
				return true, q.Points
			}
		}
	}
	return false, 0
}

// firstLetter returns the uppercased first rune of the trimmed input, or 0.
// Only the first character of an MCQ response is significant: "B) Some text"
// selects option B.
func firstLetter(s string) rune {
	for _, r := range strings.TrimSpace(s) {
		return unicode.ToUpper(r)
	}
	return 0
}
