// Package markdown provides position-exact structural scanning of
// markdown-flavored text.
//
// Both the boundary detector and the metadata generator consume this
// package, so protected-region detection and structural flags stay
// consistent by construction: a region the detector refuses to split is
// the same region the metadata flags report.
//
// # Pattern Table
//
// All detection runs off a single immutable Patterns value:
//
//	pats := markdown.DefaultPatterns()
//	fences := pats.FenceRegions(text)
//	tables := pats.TableRegions(text)
//	heads := pats.Headings(text)
//
// # Offsets
//
// Every scanner reports byte offsets into the input text. Region spans are
// half-open [Start, End) and include the trailing newline of their final
// line, so a forced boundary at Region.End starts the next chunk on a
// fresh line.
package markdown
