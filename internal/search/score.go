package search

import (
	"strings"
	"unicode/utf8"

	"github.com/mrlokans/hikam/internal/arabic"
	"github.com/mrlokans/hikam/internal/entities"
	"github.com/mrlokans/hikam/internal/lexicon"
)

// Default ranking weights and brevity thresholds.
const (
	DefaultExactWeight     = 10
	DefaultAffixWeight     = 5
	DefaultSynonymWeight   = 7
	DefaultShortBonus      = 2
	DefaultVeryShortBonus  = 3
	DefaultShortLength     = 100
	DefaultVeryShortLength = 50
)

// Weights are the ranking constants. They are empirical; changing them changes
// result order.
type Weights struct {
	Exact           int // query term is a substring of the text
	Affix           int // per quote word starting or ending with the term
	Synonym         int // per synonym of the term found in the text
	ShortBonus      int // text shorter than ShortLength runes
	VeryShortBonus  int // additionally, text shorter than VeryShortLength runes
	ShortLength     int
	VeryShortLength int
}

func DefaultWeights() Weights {
	return Weights{
		Exact:           DefaultExactWeight,
		Affix:           DefaultAffixWeight,
		Synonym:         DefaultSynonymWeight,
		ShortBonus:      DefaultShortBonus,
		VeryShortBonus:  DefaultVeryShortBonus,
		ShortLength:     DefaultShortLength,
		VeryShortLength: DefaultVeryShortLength,
	}
}

// Score ranks quote against already normalized query terms with the default weights.
func Score(quote entities.Quote, terms []string) int {
	return DefaultWeights().Score(quote, terms)
}

// Score ranks quote against already normalized query terms.
func (w Weights) Score(quote entities.Quote, terms []string) int {
	if quote.Text == "" || len(terms) == 0 {
		return 0
	}
	doc := newScoredText(quote.Text)
	return w.score(doc, prepareTerms(terms))
}

// scoredText caches the normalized forms of one quote.
type scoredText struct {
	normalized string
	words      []string
	runes      int
}

func newScoredText(text string) scoredText {
	return scoredText{
		normalized: arabic.Normalize(text),
		words:      arabic.ExtractWords(text),
		runes:      utf8.RuneCountInString(text),
	}
}

type preparedTerm struct {
	term     string
	synonyms []string
}

// prepareTerms resolves synonyms once per query rather than once per candidate.
// The term itself is excluded: it already earns the exact bonus.
func prepareTerms(terms []string) []preparedTerm {
	out := make([]preparedTerm, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		pt := preparedTerm{term: t}
		for _, s := range lexicon.FindSynonyms(t) {
			if s != t {
				pt.synonyms = append(pt.synonyms, s)
			}
		}
		out = append(out, pt)
	}
	return out
}

func (w Weights) score(doc scoredText, terms []preparedTerm) int {
	if doc.normalized == "" || len(terms) == 0 {
		return 0
	}

	score := 0
	for _, pt := range terms {
		if strings.Contains(doc.normalized, pt.term) {
			score += w.Exact
		}
		for _, word := range doc.words {
			if strings.HasPrefix(word, pt.term) || strings.HasSuffix(word, pt.term) {
				score += w.Affix
			}
		}
		for _, s := range pt.synonyms {
			if strings.Contains(doc.normalized, s) {
				score += w.Synonym
			}
		}
	}

	if doc.runes < w.ShortLength {
		score += w.ShortBonus
	}
	if doc.runes < w.VeryShortLength {
		score += w.VeryShortBonus
	}
	return score
}
