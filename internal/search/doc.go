// Package search implements the in-process Arabic quote search.
//
// # Pipeline
//
//	query ─► arabic.ExtractWords ─► synonym/root expansion ─► Index lookup
//	      ─► Weights.Score per candidate ─► minScore filter ─► sort ─► cap
//
// The Index maps normalized terms to positions in the quote slice it was built
// from. It is never patched: any change to the collection produces a new Index.
//
// # Lifecycle
//
// A Binding owns the index for one live collection and moves through
// Uninitialized → Indexing → Ready. Rebuild defers construction through a
// Debouncer so that bursts of changes cause a single build, and a newer
// collection always supersedes a pending one. While not Ready, Search and
// Suggestions return empty results.
//
// # Usage
//
//	b := search.NewBinding(search.BindingConfig{Delay: 50 * time.Millisecond})
//	b.Rebuild(quotes)
//	_ = b.Wait(ctx)
//	results := b.Search("صبر", search.DefaultOptions())
package search
