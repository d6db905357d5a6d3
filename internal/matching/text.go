package matching

import (
	"strings"
	"unicode"

	"jobmatch-workers/internal/models"
)

// term is a normalised preference value together with the label the persona used.
type term struct {
	key   string
	label string
}

// normalizeTerm lower-cases s and collapses internal whitespace.
func normalizeTerm(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// newTerms normalises a preference list, dropping blanks and case-insensitive duplicates.
func newTerms(values []string) []term {
	out := make([]term, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := normalizeTerm(v)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, term{key: key, label: strings.TrimSpace(v)})
	}
	return out
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.'
}

// tokenize splits text into lower-case tokens. '+', '#' and inner '.' are kept so
// that C++, C# and Node.js survive as single tokens.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return !isTokenRune(r) })
	out := fields[:0]
	for _, f := range fields {
		f = strings.TrimRight(f, ".")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// textIndex answers "does this text mention term X" for single tokens and phrases.
type textIndex struct {
	tokens  map[string]struct{}
	phrases string
	empty   bool
}

func newTextIndex(segments ...string) textIndex {
	idx := textIndex{tokens: make(map[string]struct{})}
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		toks := tokenize(seg)
		if len(toks) == 0 {
			continue
		}
		for _, t := range toks {
			idx.tokens[t] = struct{}{}
		}
		if whole := normalizeTerm(seg); whole != "" {
			idx.tokens[whole] = struct{}{}
		}
		parts = append(parts, strings.Join(toks, " "))
	}
	idx.empty = len(parts) == 0
	// "|" keeps phrases from matching across segment boundaries.
	idx.phrases = " " + strings.Join(parts, " | ") + " "
	return idx
}

func (idx textIndex) contains(key string) bool {
	if _, ok := idx.tokens[key]; ok {
		return true
	}
	toks := tokenize(key)
	switch len(toks) {
	case 0:
		return false
	case 1:
		_, ok := idx.tokens[toks[0]]
		return ok
	default:
		return strings.Contains(idx.phrases, " "+strings.Join(toks, " ")+" ")
	}
}

// skillIndex covers job keywords plus the description.
func skillIndex(job *models.NormalizedJobRecord) textIndex {
	segments := make([]string, 0, len(job.Keywords)+1)
	segments = append(segments, job.Keywords...)
	if job.Description != nil {
		segments = append(segments, *job.Description)
	}
	return newTextIndex(segments...)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func labels(terms []term) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.label
	}
	return out
}
