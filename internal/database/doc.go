// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, stats
//	├── quotes/          # Quote CRUD, categories, daily scheduling
//	├── favourites/      # Favourite quote tracking
//	├── reading/         # Books, pages and reading progress
//	├── analytics/       # Usage events and aggregations
//	├── settings/        # Key/value settings
//	└── users/           # User lookups
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./hikam.db")
//
//	quotesRepo := quotes.NewRepository(db.DB)
//	readingRepo := reading.NewRepository(db.DB)
//
//	list, err := quotesRepo.ListForUser(userID, quotes.Filter{Category: "حكمة"})
//	page, err := readingRepo.GetPage(bookID, 3)
//
// # Interface Implementations
//
//   - quotes.Repository: implements services.QuoteStore
//   - favourites.Repository: implements http.FavouritesStore
//   - reading.Repository: implements http.ReadingStore
//   - analytics.Repository: implements analytics.EventStore
//   - settings.Repository: implements settingsstore.SettingsDB
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
