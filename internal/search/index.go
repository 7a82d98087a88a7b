package search

import (
	"sort"

	"github.com/mrlokans/hikam/internal/arabic"
	"github.com/mrlokans/hikam/internal/entities"
	"github.com/mrlokans/hikam/internal/lexicon"
)

// Index maps normalized terms to the positions of the quotes containing them.
type Index struct {
	postings map[string]map[int]struct{}
	terms    []string
	size     int
}

// BuildIndex indexes the text of every quote. Each word is registered under
// itself, its article-free form, its synonyms and the forms sharing its root.
// Quotes without text are skipped but keep their position.
func BuildIndex(quotes []entities.Quote) *Index {
	idx := &Index{
		postings: make(map[string]map[int]struct{}),
		size:     len(quotes),
	}
	exp := newExpander()

	for i := range quotes {
		if quotes[i].Text == "" {
			continue
		}
		for _, word := range arabic.ExtractWords(quotes[i].Text) {
			for _, term := range exp.expand(word) {
				idx.add(term, i)
			}
		}
	}

	idx.terms = make([]string, 0, len(idx.postings))
	for term := range idx.postings {
		idx.terms = append(idx.terms, term)
	}
	sort.Strings(idx.terms)

	return idx
}

func (idx *Index) add(term string, pos int) {
	set, ok := idx.postings[term]
	if !ok {
		set = make(map[int]struct{})
		idx.postings[term] = set
	}
	set[pos] = struct{}{}
}

// Positions returns the positions indexed under term in ascending order.
func (idx *Index) Positions(term string) []int {
	if idx == nil {
		return nil
	}
	set := idx.postings[term]
	out := make([]int, 0, len(set))
	for pos := range set {
		out = append(out, pos)
	}
	sort.Ints(out)
	return out
}

// Has reports whether term is indexed.
func (idx *Index) Has(term string) bool {
	if idx == nil {
		return false
	}
	_, ok := idx.postings[term]
	return ok
}

// Terms returns every indexed term in iteration (ascending) order.
func (idx *Index) Terms() []string {
	if idx == nil {
		return nil
	}
	return append([]string(nil), idx.terms...)
}

// Len is the number of distinct indexed terms.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.terms)
}

// Size is the length of the quote slice the index was built from.
func (idx *Index) Size() int {
	if idx == nil {
		return 0
	}
	return idx.size
}

// expander memoizes lexicon expansions for the duration of one build.
type expander struct {
	cache map[string][]string
}

func newExpander() *expander {
	return &expander{cache: make(map[string][]string)}
}

func (e *expander) expand(word string) []string {
	if terms, ok := e.cache[word]; ok {
		return terms
	}
	seen := make(map[string]struct{})
	var terms []string
	add := func(values ...string) {
		for _, v := range values {
			if _, dup := seen[v]; dup || v == "" {
				continue
			}
			seen[v] = struct{}{}
			terms = append(terms, v)
		}
	}
	for _, variant := range arabic.Variants(word) {
		add(variant)
		add(lexicon.FindSynonyms(variant)...)
		add(lexicon.RelatedByRoot(variant)...)
	}
	e.cache[word] = terms
	return terms
}
