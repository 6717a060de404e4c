// Package boundary locates chunk split points in markdown-flavored text.
//
// The detector balances two goals: never split a protected region (code
// fence or table), and otherwise cut at the most structurally meaningful
// point near the target offset.
//
// # Basic Usage
//
//	d := boundary.NewDetector(text, markdown.DefaultPatterns(), true)
//	b := d.FindBoundary(target, boundary.DefaultSearchWindow)
//	chunk := text[start:b.Position]
//
// # Selection
//
// Candidates inside the search window are scored as
//
//	confidence*1000 - |position - target|
//
// with section headings (1.0) outranking paragraph breaks (0.8) and
// sentence ends (0.6). The weight spread means a boundary class only loses
// to a lower class when it sits hundreds of characters further from the
// target. Ties break to the earliest candidate in scan order; there is no
// randomness anywhere, so repeated calls are byte-identical.
//
// A protected region containing the target overrides all of this: the
// boundary is forced to the region's end with confidence 1, regardless of
// any natural candidate nearby. When nothing usable is found the boundary
// falls back to the raw target with confidence 0, which callers surface
// as a structural ambiguity warning.
package boundary
