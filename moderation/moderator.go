// Package moderation cleans message text before it is persisted.
package moderation

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator masks censored words, including spaced out or leet spelled variants.
type Moderator struct {
	matcher      *goahocorasick.Machine
	censoredChar rune
	log          *slog.Logger
}

// normalized keeps, for every searchable rune, its position in the original text.
type normalized struct {
	runes   []rune
	origIdx []int
}

func NewModerator(censoredWords []string, censoredChar rune, log *slog.Logger) (*Moderator, error) {
	patterns := make([][]rune, 0, len(censoredWords))
	for _, word := range censoredWords {
		if p := normalizeRunes([]rune(word)); len(p) > 0 {
			patterns = append(patterns, p)
		}
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, censoredChar: censoredChar, log: log}, nil
}

// Censor returns the masked text and the dictionary words that matched, in order of appearance.
// Spacing and punctuation around a match are preserved.
func (m *Moderator) Censor(original string) (string, []string) {
	text := normalize(original)
	if len(text.runes) == 0 {
		return original, nil
	}
	hits := m.matcher.MultiPatternSearch(text.runes, false)
	if len(hits) == 0 {
		return original, nil
	}

	out := []rune(original)
	var words []string
	for _, hit := range hits {
		start, end := hit.Pos, hit.Pos+len(hit.Word)
		if start < 0 || end > len(text.origIdx) {
			continue
		}
		for i := text.origIdx[start]; i <= text.origIdx[end-1]; i++ {
			out[i] = m.censoredChar
		}
		words = append(words, string(hit.Word))
	}
	if len(words) > 0 {
		m.log.Debug("censored words found", "count", len(words))
	}
	return string(out), words
}

func normalize(input string) normalized {
	orig := []rune(input)
	n := normalized{runes: make([]rune, 0, len(orig)), origIdx: make([]int, 0, len(orig))}
	for i, r := range orig {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		n.runes = append(n.runes, unicode.ToLower(clean))
		n.origIdx = append(n.origIdx, i)
	}
	return n
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune folds common leet substitutions back to letters.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
