// Command generate_demo creates a demo database with sample Arabic quotes
// and a short devotional book.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/hikam/internal/config"
	"github.com/mrlokans/hikam/internal/database/quotes"
	"github.com/mrlokans/hikam/internal/demo"
	"github.com/mrlokans/hikam/internal/entrypoint"
)

const defaultDemoDatabasePath = "./demo/demo.db"

// favouriteCategories marks the demo quotes of these categories as favourites.
var favouriteCategories = map[string]bool{"صبر": true, "أمل": true}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	cfg := config.NewConfig()
	cfg.Database.Path = *dbPath
	cfg.Analytics.Enabled = false

	app, err := entrypoint.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	result, err := demo.Seed(ctx, app.Importer, app.Reading, 0)
	if err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}
	log.Printf("Saved %d quotes", result.Imported)

	list, err := app.Quotes.List(0, quotes.Filter{})
	if err != nil {
		log.Fatalf("Failed to list quotes: %v", err)
	}
	for _, q := range list {
		if !favouriteCategories[q.Category] {
			continue
		}
		if _, err := app.Quotes.SetFavourite(ctx, 0, q.ID, true); err != nil {
			log.Printf("Failed to favourite %q: %v", q.Text, err)
		}
	}

	if quote, assigned, err := app.Quotes.EnsureToday(0); err != nil {
		log.Printf("Failed to schedule today's quote: %v", err)
	} else if assigned {
		log.Printf("Quote of the day: %s", quote.Text)
	}

	log.Println("Demo database generated successfully!")
}
