// Package importers loads quotes from files into a user's collection.
//
// # Architecture
//
//	File → Converter → RawQuote → Pipeline → services.ImportService → Storage
//
// Each format implements Converter, turning its records into RawQuotes. The
// Pipeline hands them to the import service, which skips blank texts and
// duplicates and rebuilds the search index once per batch.
//
// # Formats
//
//   - JSONConverter: an array of {"text", "source", "category"} objects
//   - CSVConverter: text,source,category rows with an optional header
//   - TextConverter: plain text, one quote per paragraph
//
// ConverterForFile picks the converter from the file extension. Watcher
// imports files dropped into a directory.
package importers
