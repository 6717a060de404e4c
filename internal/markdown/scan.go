package markdown

import "strings"

// RegionKind identifies the type of a protected region.
type RegionKind string

const (
	RegionCodeFence RegionKind = "code_fence"
	RegionTable     RegionKind = "table"
)

// Region is a protected span [Start, End) of the document whose internal
// structure must never be split. End points just past the region's final
// line, including its trailing newline when present.
type Region struct {
	Start int
	End   int
	Kind  RegionKind
}

// Contains reports whether pos falls strictly inside the region. Positions
// at the region edges are legal split points.
func (r Region) Contains(pos int) bool {
	return pos > r.Start && pos < r.End
}

// HeadingMark is a markdown heading with its byte offset in the document.
type HeadingMark struct {
	Offset int
	Level  int
	Text   string
}

const fenceMarker = "```"

// FenceRegions finds paired triple-backtick code fence regions. An
// unclosed opening fence extends to the end of the text, which keeps a
// trailing half-open block from ever being split.
func (p *Patterns) FenceRegions(text string) []Region {
	var regions []Region
	inFence := false
	fenceStart := 0

	for offset := 0; offset < len(text); {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		next := len(text)
		if lineEnd >= 0 {
			next = offset + lineEnd + 1
		}
		line := text[offset:next]

		if strings.HasPrefix(strings.TrimLeft(line, " \t"), fenceMarker) {
			if inFence {
				regions = append(regions, Region{Start: fenceStart, End: next, Kind: RegionCodeFence})
				inFence = false
			} else {
				inFence = true
				fenceStart = offset
			}
		}
		offset = next
	}

	if inFence {
		regions = append(regions, Region{Start: fenceStart, End: len(text), Kind: RegionCodeFence})
	}
	return regions
}

// TableRegions finds maximal runs of at least two consecutive
// pipe-delimited rows.
func (p *Patterns) TableRegions(text string) []Region {
	var regions []Region
	runStart := -1
	runRows := 0
	runEnd := 0

	flush := func() {
		if runRows >= 2 {
			regions = append(regions, Region{Start: runStart, End: runEnd, Kind: RegionTable})
		}
		runStart = -1
		runRows = 0
	}

	for offset := 0; offset < len(text); {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		next := len(text)
		if lineEnd >= 0 {
			next = offset + lineEnd + 1
		}
		line := strings.TrimRight(text[offset:next], "\n")

		if p.tableRow.MatchString(line) {
			if runStart < 0 {
				runStart = offset
			}
			runRows++
			runEnd = next
		} else {
			flush()
		}
		offset = next
	}
	flush()
	return regions
}

// Headings extracts leading '#'-prefixed lines with their byte offsets.
func (p *Patterns) Headings(text string) []HeadingMark {
	matches := p.heading.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	marks := make([]HeadingMark, 0, len(matches))
	for _, m := range matches {
		marks = append(marks, HeadingMark{
			Offset: m[0],
			Level:  m[3] - m[2],
			Text:   text[m[4]:m[5]],
		})
	}
	return marks
}

// ParagraphBreaks returns the offset right after each blank-line
// separator, i.e. the start of the following paragraph.
func (p *Patterns) ParagraphBreaks(text string) []int {
	matches := p.paragraphBreak.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	breaks := make([]int, 0, len(matches))
	for _, m := range matches {
		breaks = append(breaks, m[1])
	}
	return breaks
}

// SentenceEnds returns the offset right after each sentence-ending
// punctuation mark that is followed by whitespace.
func (p *Patterns) SentenceEnds(text string) []int {
	matches := p.sentenceEnd.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	ends := make([]int, 0, len(matches))
	for _, m := range matches {
		ends = append(ends, m[0]+1)
	}
	return ends
}

// HasCodeBlock reports whether the text contains any fence region.
func (p *Patterns) HasCodeBlock(text string) bool {
	return strings.Contains(text, fenceMarker)
}

// HasTable reports whether the text contains a table-row run.
func (p *Patterns) HasTable(text string) bool {
	return len(p.TableRegions(text)) > 0
}

// HasList reports whether the text contains a bullet or ordered list item.
func (p *Patterns) HasList(text string) bool {
	return p.listItem.MatchString(text)
}
