// Package match provides text normalization, fuzzy duplicate detection, and
// tag normalization for secret texts.
package match

import (
	"strings"
	"unicode"

	"github.com/rcliao/secrets-tracker/internal/model"
)

// DuplicateThreshold is the similarity score at or above which two secret
// texts are considered the same secret.
const DuplicateThreshold = 0.45

const (
	tokenMinLen         = 4
	tokenMinLenFallback = 3
)

// Normalize lowercases text, strips everything but letters, digits and
// spaces, and collapses whitespace runs.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokens splits normalized text into words of at least minLen runes.
func tokens(normalized string, minLen int) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		if len([]rune(w)) >= minLen {
			set[w] = true
		}
	}
	return set
}

// Similarity scores two texts in [0,1]. A substring relation between the
// normalized forms is an exact match; otherwise the score is the token
// overlap divided by the larger token set.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na != "" && nb != "" && (strings.Contains(na, nb) || strings.Contains(nb, na)) {
		return 1
	}

	ta, tb := tokens(na, tokenMinLen), tokens(nb, tokenMinLen)
	// Short phrases rarely yield two 4-rune words; retry with a looser cut.
	if len(ta) < 2 || len(tb) < 2 {
		ta, tb = tokens(na, tokenMinLenFallback), tokens(nb, tokenMinLenFallback)
	}

	if len(ta) == 0 && len(tb) == 0 {
		if na == nb {
			return 1
		}
		return 0
	}

	shared := 0
	for w := range ta {
		if tb[w] {
			shared++
		}
	}
	max := len(ta)
	if len(tb) > max {
		max = len(tb)
	}
	if max == 0 {
		return 0
	}
	return float64(shared) / float64(max)
}

// IsDuplicate reports whether candidate matches any existing text at or
// above the duplicate threshold.
func IsDuplicate(candidate string, existing []string) bool {
	for _, e := range existing {
		if Similarity(e, candidate) >= DuplicateThreshold {
			return true
		}
	}
	return false
}

// tagKeywords maps each non-default tag to substring cues, in both languages
// the tracker ships prompts for.
var tagKeywords = map[model.Tag][]string{
	model.TagDangerous: {"danger", "threat", "risk", "crime", "опас", "угроз", "преступ"},
	model.TagPersonal:  {"person", "emotion", "intimate", "vulnerab", "личн", "чувств", "интим"},
	model.TagKompromat: {"kompromat", "blackmail", "leverage", "dirt", "компромат", "шантаж"},
}

// NormalizeTag coerces an arbitrary tag label into the closed tag set.
// Exact matches win; otherwise the label is substring-matched against the
// keyword families; anything else becomes TagNone.
func NormalizeTag(raw string) model.Tag {
	t := model.Tag(strings.ToLower(strings.TrimSpace(raw)))
	if model.ValidTags[t] {
		return t
	}
	lower := string(t)
	for _, tag := range []model.Tag{model.TagDangerous, model.TagPersonal, model.TagKompromat} {
		for _, kw := range tagKeywords[tag] {
			if strings.Contains(lower, kw) {
				return tag
			}
		}
	}
	return model.TagNone
}
