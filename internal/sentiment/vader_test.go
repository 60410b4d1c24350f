package sentiment

import (
	"testing"

	"github.com/spacesedan/reelverdict/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "see the trailer", RemoveLinks("see the [trailer](https://example.com/t)"))
	assert.Equal(t, "more at ", RemoveLinks("more at https://example.com/review?id=1"))
	assert.Equal(t, "visit  today", RemoveLinks("visit www.example.com today"))
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("**Great** [film](https://example.com) see https://a.b\n\n_really_")
	assert.Equal(t, "Great film see really", got)
}

func TestLexiconBaselineScore(t *testing.T) {
	baseline := NewLexiconBaseline()

	tests := []struct {
		name     string
		text     string
		expected models.SentimentLabel
	}{
		{name: "positive", text: "This movie is wonderful, I love it. Great acting!", expected: models.Positive},
		{name: "negative", text: "This movie is terrible and awful. I hate it.", expected: models.Negative},
		{name: "neutral", text: "The movie", expected: models.Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, label := baseline.Score(tt.text)
			assert.Equal(t, tt.expected, label, "compound score %.3f", score)
		})
	}
}
