package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/reelverdict/internal/models"
)

// Compound VADER scores at or beyond these bounds count as polar.
const (
	VaderPositiveThreshold = 0.20
	VaderNegativeThreshold = -0.20
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and strips the resulting markup so the
// lexicon scorer only sees prose.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(output), " ")

	return strings.Join(strings.Fields(plain), " ")
}

// LexiconBaseline labels raw review text with the VADER lexicon. It is used as a
// reference point when evaluating a trained model and needs no training data.
type LexiconBaseline struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewLexiconBaseline() *LexiconBaseline {
	return &LexiconBaseline{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound VADER score and the label it maps to.
func (b *LexiconBaseline) Score(text string) (float64, models.SentimentLabel) {
	score := b.analyzer.PolarityScores(ConvertMarkdownToText(text)).Compound

	switch {
	case score >= VaderPositiveThreshold:
		return score, models.Positive
	case score <= VaderNegativeThreshold:
		return score, models.Negative
	default:
		return score, models.Neutral
	}
}
