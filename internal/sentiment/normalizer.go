package sentiment

import (
	"strings"
	"unicode"

	"github.com/spacesedan/reelverdict/internal/models"
)

// Clean lowercases text, removes everything that is not an ASCII letter or
// whitespace and collapses whitespace runs into single spaces.
func Clean(text string) string {
	text = strings.ToLower(text)

	stripped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return r
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, text)

	return strings.Join(strings.Fields(stripped), " ")
}

// LabelForRating derives the ground-truth training label from a 1-10 rating.
func LabelForRating(rating int) models.SentimentLabel {
	switch {
	case rating <= NegativeMaxRating:
		return models.Negative
	case rating <= NeutralMaxRating:
		return models.Neutral
	default:
		return models.Positive
	}
}
