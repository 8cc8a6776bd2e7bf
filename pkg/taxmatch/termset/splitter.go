package termset

import (
	"strings"
	"unicode"

	"github.com/surgebase/porter2"
)

// defaultStopwords covers the conjunctions and filler words that appear
// in composite category labels ("Cheese & Cheese Alternatives",
// "Beer, Wine and Spirits").
var defaultStopwords = []string{
	"and", "or", "the", "of", "a", "an", "for", "to", "in", "on", "with",
}

// Splitter turns category labels into normalized term sets.
type Splitter struct {
	stopwords map[string]struct{}
	stem      bool
}

// NewSplitter creates a splitter with the given stopword list. When
// useStemming is set, terms are reduced with the Porter2 stemmer; the
// same splitter must then be used for every label being compared, since
// mismatched stemming silently breaks exact-match detection.
func NewSplitter(stopwords []string, useStemming bool) *Splitter {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Splitter{stopwords: stops, stem: useStemming}
}

// DefaultSplitter creates a splitter with the default stopword list and
// stemming disabled.
func DefaultSplitter() *Splitter {
	return NewSplitter(defaultStopwords, false)
}

// DefaultStopwords returns a copy of the default stopword list, for
// callers that build a custom splitter but keep the standard filtering.
func DefaultStopwords() []string {
	out := make([]string, len(defaultStopwords))
	copy(out, defaultStopwords)
	return out
}

// Split breaks a label into normalized terms: lower-cased, split on
// whitespace and separator punctuation (&, /, comma), with stopwords and
// purely numeric tokens dropped. A label of only stopwords or
// punctuation yields an empty slice.
func (s *Splitter) Split(label string) []string {
	var terms []string
	var current strings.Builder

	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			if current.Len() > 0 {
				if term := s.processTerm(current.String()); term != "" {
					terms = append(terms, term)
				}
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		if term := s.processTerm(current.String()); term != "" {
			terms = append(terms, term)
		}
	}

	return terms
}

// processTerm applies cleaning, stopword filtering and optional stemming.
func (s *Splitter) processTerm(term string) string {
	term = strings.Trim(term, "-'")
	if term == "" || len(term) <= 1 {
		return ""
	}

	// Purely numeric tokens carry no category meaning.
	if isNumericOnly(term) {
		return ""
	}

	if s.isStopword(term) {
		return ""
	}

	if s.stem {
		term = porter2.Stem(term)
	}

	return term
}

// isNumericOnly returns true if the term contains only digits and hyphens.
func isNumericOnly(t string) bool {
	for _, r := range t {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func (s *Splitter) isStopword(term string) bool {
	_, ok := s.stopwords[term]
	return ok
}

// AddStopword adds a word to the stopword list.
func (s *Splitter) AddStopword(word string) {
	s.stopwords[strings.ToLower(word)] = struct{}{}
}

// Stemming reports whether the splitter stems terms.
func (s *Splitter) Stemming() bool { return s.stem }
