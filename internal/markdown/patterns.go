package markdown

import "regexp"

// Patterns holds the compiled pattern table used for structural detection.
// A single instance is built once and passed by reference into the boundary
// detector and metadata generator so the two stay consistent by
// construction.
type Patterns struct {
	heading        *regexp.Regexp
	tableRow       *regexp.Regexp
	listItem       *regexp.Regexp
	sentenceEnd    *regexp.Regexp
	paragraphBreak *regexp.Regexp
	punctuationRun *regexp.Regexp
}

// DefaultPatterns returns the standard markdown pattern table.
func DefaultPatterns() *Patterns {
	return &Patterns{
		heading:        regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(.+?)[ \t]*$`),
		tableRow:       regexp.MustCompile(`^[ \t]*\|.*\|[ \t]*$`),
		listItem:       regexp.MustCompile(`(?m)^[ \t]*(?:[-*+]|\d+\.)[ \t]+\S`),
		sentenceEnd:    regexp.MustCompile(`[.!?][ \t\r\n]`),
		paragraphBreak: regexp.MustCompile(`\n[ \t]*\n`),
		punctuationRun: regexp.MustCompile(`[.!?]+`),
	}
}
