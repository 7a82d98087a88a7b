package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mrlokans/hikam/internal/arabic"
	"github.com/mrlokans/hikam/internal/entities"
	"github.com/mrlokans/hikam/internal/lexicon"
)

const (
	DefaultMaxResults = 50
	DefaultMinScore   = 1

	minSuggestionPrefix = 2
)

// Options tune a single query. Zero MaxResults and negative MinScore fall back
// to the defaults, while a MinScore of zero keeps every candidate. Use
// DefaultOptions to get exact and semantic matching enabled.
type Options struct {
	MaxResults      int
	MinScore        int
	IncludeExact    bool
	IncludeSemantic bool
}

func DefaultOptions() Options {
	return Options{
		MaxResults:      DefaultMaxResults,
		MinScore:        DefaultMinScore,
		IncludeExact:    true,
		IncludeSemantic: true,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxResults <= 0 {
		o.MaxResults = DefaultMaxResults
	}
	if o.MinScore < 0 {
		o.MinScore = DefaultMinScore
	}
	return o
}

// Result is a ranked match.
type Result struct {
	Quote    entities.Quote `json:"quote"`
	Position int            `json:"position"`
	Score    int            `json:"score"`
}

// Engine answers queries against an immutable snapshot of quotes.
type Engine struct {
	quotes  []entities.Quote
	docs    []scoredText
	index   *Index
	weights Weights
}

// NewEngine copies quotes and builds their index.
func NewEngine(quotes []entities.Quote, weights Weights) *Engine {
	return newEngineWithIndex(quotes, BuildIndex(quotes), weights)
}

func newEngineWithIndex(quotes []entities.Quote, idx *Index, weights Weights) *Engine {
	snapshot := make([]entities.Quote, len(quotes))
	copy(snapshot, quotes)

	docs := make([]scoredText, len(snapshot))
	for i := range snapshot {
		if snapshot[i].Text != "" {
			docs[i] = newScoredText(snapshot[i].Text)
		}
	}

	return &Engine{
		quotes:  snapshot,
		docs:    docs,
		index:   idx,
		weights: weights,
	}
}

func (e *Engine) Index() *Index {
	return e.index
}

// Len is the number of quotes the engine was built from.
func (e *Engine) Len() int {
	return len(e.quotes)
}

// Search returns the quotes matching query, best first.
func (e *Engine) Search(query string, opts Options) []entities.Quote {
	results := e.SearchScored(query, opts)
	out := make([]entities.Quote, len(results))
	for i, r := range results {
		out[i] = r.Quote
	}
	return out
}

// SearchScored is Search with positions and scores attached.
func (e *Engine) SearchScored(query string, opts Options) []Result {
	if strings.TrimSpace(query) == "" || len(e.quotes) == 0 {
		return []Result{}
	}
	opts = opts.withDefaults()

	terms := arabic.ExtractWords(query)
	if len(terms) == 0 {
		return []Result{}
	}

	candidates := e.candidates(terms, opts)
	prepared := prepareTerms(terms)

	results := make([]Result, 0, len(candidates))
	for _, pos := range candidates {
		score := e.weights.score(e.docs[pos], prepared)
		if score < opts.MinScore {
			continue
		}
		results = append(results, Result{
			Quote:    e.quotes[pos],
			Position: pos,
			Score:    score,
		})
	}

	// candidates are in ascending position, so a stable sort keeps ties in that order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}
	return results
}

// candidates unions the positions reachable from every term, in ascending order.
func (e *Engine) candidates(terms []string, opts Options) []int {
	set := make(map[int]struct{})
	collect := func(term string) {
		for pos := range e.index.postings[term] {
			set[pos] = struct{}{}
		}
	}

	for _, term := range terms {
		for _, variant := range arabic.Variants(term) {
			if opts.IncludeExact {
				collect(variant)
			}
			if opts.IncludeSemantic {
				for _, s := range lexicon.FindSynonyms(variant) {
					collect(s)
				}
				for _, f := range lexicon.RelatedByRoot(variant) {
					collect(f)
				}
			}
		}
	}

	out := make([]int, 0, len(set))
	for pos := range set {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}

// Suggestions returns indexed terms starting with prefix, in index order.
func (e *Engine) Suggestions(prefix string, limit int) []string {
	p := arabic.Normalize(prefix)
	if utf8.RuneCountInString(p) < minSuggestionPrefix || limit <= 0 || e.index.Len() == 0 {
		return []string{}
	}

	terms := e.index.terms
	// terms are sorted, so matches form a contiguous run.
	start := sort.SearchStrings(terms, p)
	out := make([]string, 0, limit)
	for i := start; i < len(terms) && len(out) < limit; i++ {
		if !strings.HasPrefix(terms[i], p) {
			break
		}
		out = append(out, terms[i])
	}
	return out
}
