// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the narrow interface they need next to the code that uses
// it; this package pins each concrete type to those interfaces at compile time.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - QuoteStore: Quote persistence (internal/services/interfaces.go)
//   - FavouriteStore: Favourite flags (internal/services/interfaces.go)
//   - RecentSearchStore: Per-user recent queries (internal/services/interfaces.go)
//   - ReadingStore: Books, pages and progress (internal/http/books.go)
//   - SettingsDB: Key/value settings (internal/settingsstore/settingsstore.go)
//
// ## Analytics Interfaces
//
//   - EventTracker: Non-blocking event intake (internal/services/interfaces.go)
//   - EventStore, StatsStore: Event persistence and aggregation (internal/analytics)
//
// ## Background Work Interfaces
//
//   - TaskEnqueuer: Hands work to the task queue (internal/services/interfaces.go)
//   - IndexRebuilder: Synchronous index rebuild (internal/tasks/rebuild_index.go)
//   - QuoteAssigner: Quote of the day selection (internal/scheduler/daily_quote.go)
//
// # Adding a New Import Format
//
//  1. Create a converter in internal/importers/
//
//     type MarkdownConverter struct {
//         Lines []string
//         Name  string
//     }
//
//     func (c *MarkdownConverter) Convert() ([]importers.RawQuote, importers.Source) {
//         // Transform to common format
//     }
//
//  2. Return it from ConverterForFile for its extension.
//
//  3. Add the compile-time check to checks.go:
//
//     var _ importers.Converter = (*importers.MarkdownConverter)(nil)
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
