// Package parser extracts structured candidate fields from resume text with
// pattern-based heuristics. Parsing is a pure function of the text: no match
// means an absent field, never an error.
package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/campushire/parsume/internal/models"
)

var (
	// emailRe matches the first local@domain.tld address in the text.
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// phoneRe is a loose international-phone heuristic applied to text with
	// all whitespace removed: optional leading + or (, a leading nonzero
	// digit, 8+ digits/separators, a trailing digit. Digit count and region
	// are not validated.
	phoneRe = regexp.MustCompile(`[\+\(]?[1-9][0-9 .\-\(\)]{8,}[0-9]`)
)

// maxNameTokens is the most whitespace-separated tokens the first line of a
// resume may have and still be taken as the candidate's name.
const maxNameTokens = 4

// Parser extracts fields from resume text using an injected vocabulary.
type Parser struct {
	vocab Vocabulary

	// skillPatterns holds one compiled whole-word pattern per vocabulary
	// skill, aligned by index. A nil entry never matches (the vocabulary
	// entry could not be compiled into a pattern).
	skillPatterns []*regexp.Regexp
}

// NewParser returns a parser over the given vocabulary. Patterns are
// compiled once; a vocabulary entry that fails to compile is treated as
// unmatchable rather than an error.
func NewParser(vocab Vocabulary) *Parser {
	p := &Parser{vocab: vocab}
	for _, skill := range vocab.Skills {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(skill)) + `\b`)
		if err != nil {
			p.skillPatterns = append(p.skillPatterns, nil)
			continue
		}
		p.skillPatterns = append(p.skillPatterns, re)
	}
	return p
}

// Parse extracts candidate fields from text. Empty text yields an empty
// result. The call is deterministic and never fails.
func (p *Parser) Parse(text string) *models.Fields {
	f := &models.Fields{}
	if text == "" {
		return f
	}

	f.Email = emailRe.FindString(text)
	f.MobileNumber = phoneRe.FindString(stripWhitespace(text))
	f.Name = firstLineName(text)

	lower := strings.ToLower(text)
	for i, re := range p.skillPatterns {
		if re != nil && re.MatchString(lower) {
			f.Skills = append(f.Skills, p.vocab.Skills[i])
		}
	}
	for _, pk := range p.vocab.Projects {
		if strings.Contains(text, pk.Keyword) {
			f.Projects = append(f.Projects, pk.Title)
		}
	}
	for _, cert := range p.vocab.Certifications {
		if strings.Contains(text, cert) {
			f.Certifications = append(f.Certifications, cert)
		}
	}
	return f
}

// firstLineName returns the first non-blank line when it is short enough to
// be a person's name, else "".
func firstLineName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if tokens := strings.Fields(line); len(tokens) <= maxNameTokens {
			return line
		}
		return ""
	}
	return ""
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
