// Package arabic canonicalizes Arabic text for comparison and splits it into words.
//
// Normalization removes diacritics and tatweel, folds letter variants
// (أ إ آ → ا, ئ ى → ي, ة → ه), collapses whitespace and lowercases any Latin
// text mixed in. Two spellings that differ only in those respects normalize
// to the same string, and Normalize is idempotent.
package arabic

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	alef       = '\u0627'
	ya         = '\u064A'
	ha         = '\u0647'
	tatweel    = '\u0640'
	blockStart = '\u0600'
	blockEnd   = '\u06FF'
)

// isMark reports whether r is a vowel mark, Quranic annotation or tatweel.
func isMark(r rune) bool {
	switch {
	case r >= '\u064B' && r <= '\u065F':
		return true
	case r >= '\u0610' && r <= '\u061A':
		return true
	case r == '\u0670', r == tatweel:
		return true
	}
	return false
}

func foldLetter(r rune) rune {
	switch r {
	case '\u0623', '\u0625', '\u0622': // أ إ آ
		return alef
	case '\u0626', '\u0649': // ئ ى
		return ya
	case '\u0629': // ة
		return ha
	}
	return r
}

// newNormalizer returns a fresh transformer chain. Transformers keep state,
// so a chain must not be shared between goroutines.
func newNormalizer() transform.Transformer {
	return transform.Chain(
		runes.Remove(runes.Predicate(isMark)),
		runes.Map(foldLetter),
		cases.Lower(language.Und),
	)
}

// Normalize returns the canonical form of text. Empty input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	out, _, err := transform.String(newNormalizer(), text)
	if err != nil {
		// Only reachable with invalid UTF-8; fall back to the untransformed text.
		out = text
	}
	return strings.Join(strings.Fields(out), " ")
}

// IsLetter reports whether r is a letter of the Arabic block.
func IsLetter(r rune) bool {
	return r >= blockStart && r <= blockEnd && unicode.IsLetter(r)
}

// ExtractWords normalizes text and returns its Arabic words of at least two
// letters. Punctuation, digits and non-Arabic characters separate words.
func ExtractWords(text string) []string {
	words := []string{}
	normalized := Normalize(text)
	if normalized == "" {
		return words
	}

	var b strings.Builder
	n := 0
	flush := func() {
		if n >= 2 {
			words = append(words, b.String())
		}
		b.Reset()
		n = 0
	}

	for _, r := range normalized {
		if IsLetter(r) {
			b.WriteRune(r)
			n++
			continue
		}
		flush()
	}
	flush()

	return words
}

// articlePrefixes are tried longest first.
var articlePrefixes = []string{"وال", "بال", "كال", "فال", "لل", "ال"}

// StripArticle removes a leading definite article (optionally preceded by a
// conjunction or preposition) from a normalized word. The word is returned
// unchanged when fewer than two letters would remain.
func StripArticle(word string) string {
	if word == "الله" {
		return word
	}
	for _, prefix := range articlePrefixes {
		if !strings.HasPrefix(word, prefix) {
			continue
		}
		rest := strings.TrimPrefix(word, prefix)
		if len([]rune(rest)) >= 2 {
			return rest
		}
		return word
	}
	return word
}

// Variants returns the word and, when different, its article-free form.
func Variants(word string) []string {
	stripped := StripArticle(word)
	if stripped == word {
		return []string{word}
	}
	return []string{word, stripped}
}
