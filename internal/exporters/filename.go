package exporters

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*#\[\]]`)
	multipleSpaces       = regexp.MustCompile(`\s+`)
)

const maxFilenameRunes = 120

// SanitizeFilename strips characters that filesystems or download headers
// reject. Arabic letters are kept.
func SanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = multipleSpaces.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if utf8.RuneCountInString(name) > maxFilenameRunes {
		name = strings.TrimSpace(string([]rune(name)[:maxFilenameRunes]))
	}
	if name == "" {
		name = "quotes"
	}
	return name
}

// FileName names an export made on day.
func FileName(base string, day time.Time, e QuoteExporter) string {
	return SanitizeFilename(base) + "-" + day.Format("2006-01-02") + e.Extension()
}
