// Package sentiment labels chat messages Positive, Neutral or Negative from a
// compound polarity score.
package sentiment

import (
	"sort"

	"github.com/jonreiter/govader"

	"github.com/otherjamesbrown/chatlens/pkg/records"
)

// Thresholds applied to the compound score. Both bounds are inclusive.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// DefaultTopMessages is the default n for MostCommonMessages.
const DefaultTopMessages = 10

// Scorer returns a compound polarity score in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

// VaderScorer scores text with the VADER lexicon.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderScorer loads the VADER lexicon.
func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score implements Scorer.
func (v *VaderScorer) Score(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}

// Classify maps a compound score to a label.
func Classify(score float64) records.Sentiment {
	switch {
	case score >= PositiveThreshold:
		return records.SentimentPositive
	case score <= NegativeThreshold:
		return records.SentimentNegative
	default:
		return records.SentimentNeutral
	}
}

// Classifier labels record sets with a Scorer.
type Classifier struct {
	scorer Scorer
}

// NewClassifier creates a classifier. A nil scorer uses VADER.
func NewClassifier(scorer Scorer) *Classifier {
	if scorer == nil {
		scorer = NewVaderScorer()
	}
	return &Classifier{scorer: scorer}
}

// ClassifyText scores and labels a single text.
func (c *Classifier) ClassifyText(text string) records.Sentiment {
	return Classify(c.scorer.Score(text))
}

// Label attaches a label to every record of set. Only the first call on a
// given set scores anything; it reports whether this call did.
func (c *Classifier) Label(set *records.Set) bool {
	return set.LabelSentiment(c.ClassifyText)
}

// MessageCount is a distinct message text with its frequency.
type MessageCount struct {
	Message string `json:"message" yaml:"message"`
	Count   int    `json:"count" yaml:"count"`
}

// MostCommonMessages returns the n most frequent distinct texts in view with
// the given label, ignoring omitted-media placeholders. Ties keep first-seen
// order. It is empty when the set has not been labeled.
func MostCommonMessages(view *records.View, label records.Sentiment, n int) []MessageCount {
	out := make([]MessageCount, 0)
	if !view.HasSentiment() {
		return out
	}
	if n <= 0 {
		n = DefaultTopMessages
	}

	index := make(map[string]int)
	view.Each(func(m records.Message) {
		if m.Sentiment != label || m.IsMediaPlaceholder() {
			return
		}
		if i, ok := index[m.Content]; ok {
			out[i].Count++
			return
		}
		index[m.Content] = len(out)
		out = append(out, MessageCount{Message: m.Content, Count: 1})
	})

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
