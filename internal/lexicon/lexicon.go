// Package lexicon holds the static synonym and root-derivation tables used to
// expand search terms, together with their lookups.
//
// Both tables are normalized once at package initialization and never change
// afterwards, so every lookup is safe for concurrent use.
package lexicon

import (
	"github.com/mrlokans/hikam/internal/arabic"
)

// minFallbackRoot is the number of consonants the fallback root heuristic needs.
const minFallbackRoot = 3

var (
	synonyms    map[string][]string // head -> members
	memberHeads map[string][]string // member -> heads listing it, in sorted head order
	headOrder   []string

	roots       []rootEntry
	rootIndex   map[string]int      // root -> position in roots
	formToRoots map[string][]string // form -> roots listing it, in table order
)

func init() {
	synonyms = make(map[string][]string, len(synonymTable))
	memberHeads = make(map[string][]string)

	for head, members := range synonymTable {
		h := arabic.Normalize(head)
		synonyms[h] = appendUnique(synonyms[h], normalizeAll(members)...)
	}
	headOrder = sortedKeys(synonyms)
	for _, head := range headOrder {
		for _, m := range synonyms[head] {
			memberHeads[m] = appendUnique(memberHeads[m], head)
		}
	}

	roots = make([]rootEntry, 0, len(rootTable))
	rootIndex = make(map[string]int, len(rootTable))
	formToRoots = make(map[string][]string)
	for _, entry := range rootTable {
		root := arabic.Normalize(entry.root)
		forms := normalizeAll(entry.forms)
		if i, ok := rootIndex[root]; ok {
			roots[i].forms = appendUnique(roots[i].forms, forms...)
		} else {
			rootIndex[root] = len(roots)
			roots = append(roots, rootEntry{root: root, forms: forms})
		}
		for _, form := range forms {
			formToRoots[form] = appendUnique(formToRoots[form], root)
		}
	}
}

// FindSynonyms returns the word together with every term related to it, looking
// the word up both as a head and as a member of other heads' lists. The result
// is deduplicated and empty when the word has no relation.
func FindSynonyms(word string) []string {
	word = arabic.Normalize(word)
	if word == "" {
		return []string{}
	}

	var result []string
	if members, ok := synonyms[word]; ok {
		result = appendUnique(result, word)
		result = appendUnique(result, members...)
	}
	for _, head := range memberHeads[word] {
		result = appendUnique(result, head)
		result = appendUnique(result, synonyms[head]...)
	}
	if len(result) > 0 {
		result = appendUnique(result, word)
	}
	if result == nil {
		return []string{}
	}
	return result
}

// FindRoots returns the roots whose derived forms include the word. When the
// table has no entry, the vowel letters are dropped and the first three
// remaining letters are offered as a candidate root.
func FindRoots(word string) []string {
	word = arabic.Normalize(word)
	if word == "" {
		return []string{}
	}
	if found := formToRoots[word]; len(found) > 0 {
		return append([]string(nil), found...)
	}

	consonants := make([]rune, 0, len(word))
	for _, r := range word {
		switch r {
		case 'ا', 'و', 'ي':
			continue
		}
		consonants = append(consonants, r)
	}
	if len(consonants) < minFallbackRoot {
		return []string{}
	}
	return []string{string(consonants[:minFallbackRoot])}
}

// RootForms returns the derived forms recorded for root, or nil for an unknown root.
func RootForms(root string) []string {
	i, ok := rootIndex[arabic.Normalize(root)]
	if !ok {
		return nil
	}
	return append([]string(nil), roots[i].forms...)
}

// RelatedByRoot returns every surface form sharing a root with word.
func RelatedByRoot(word string) []string {
	var forms []string
	for _, root := range FindRoots(word) {
		forms = appendUnique(forms, RootForms(root)...)
	}
	if forms == nil {
		return []string{}
	}
	return forms
}

// Heads returns the synonym table heads in sorted order.
func Heads() []string {
	return append([]string(nil), headOrder...)
}

// Roots returns the table roots in insertion order.
func Roots() []string {
	out := make([]string, len(roots))
	for i, entry := range roots {
		out[i] = entry.root
	}
	return out
}
