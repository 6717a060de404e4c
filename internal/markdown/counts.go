package markdown

import "strings"

// WordCount counts whitespace-delimited non-empty tokens.
func (p *Patterns) WordCount(text string) int {
	return len(strings.Fields(text))
}

// SentenceCount counts sentence-ending punctuation runs, plus one for the
// trailing segment. Empty or whitespace-only text counts zero. Text ending
// in terminal punctuation still gets the trailing increment, so a single
// complete sentence like "One sentence." counts 2.
func (p *Patterns) SentenceCount(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return len(p.punctuationRun.FindAllStringIndex(text, -1)) + 1
}

// ParagraphCount counts blank-line-delimited non-empty segments.
func (p *Patterns) ParagraphCount(text string) int {
	count := 0
	for _, seg := range p.paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(seg) != "" {
			count++
		}
	}
	return count
}
