package analytics

import (
	"math"
	"sort"
	"strings"

	"mvdan.cc/xurls/v2"

	"github.com/otherjamesbrown/chatlens/pkg/records"
	"github.com/otherjamesbrown/chatlens/pkg/tally"
)

// URLExtractor finds links in message text.
type URLExtractor interface {
	FindURLs(text string) []string
}

// RelaxedURLExtractor matches URLs with or without a scheme, so bare
// domains like "example.com/x" count as links.
type RelaxedURLExtractor struct{}

// FindURLs implements URLExtractor.
func (RelaxedURLExtractor) FindURLs(text string) []string {
	return relaxedURL.FindAllString(text, -1)
}

var relaxedURL = xurls.Relaxed()

// Stats are the headline counts for a view.
type Stats struct {
	Messages int `json:"messages" yaml:"messages"`
	Words    int `json:"words" yaml:"words"`
	Media    int `json:"media" yaml:"media"`
	Links    int `json:"links" yaml:"links"`
}

// FetchStats counts messages, whitespace-separated words, omitted-media
// placeholders and links. A nil extractor uses RelaxedURLExtractor.
func FetchStats(view *records.View, urls URLExtractor) Stats {
	if urls == nil {
		urls = RelaxedURLExtractor{}
	}

	var stats Stats
	view.Each(func(m records.Message) {
		stats.Messages++
		stats.Words += len(strings.Fields(m.Content))
		if m.IsMediaPlaceholder() {
			stats.Media++
		}
		stats.Links += len(urls.FindURLs(m.Content))
	})
	return stats
}

// SenderPercent is a sender's share of all messages.
type SenderPercent struct {
	Name    string  `json:"name" yaml:"name"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// BusyUsers ranks senders by message count.
type BusyUsers struct {
	Top     []LabelCount    `json:"top" yaml:"top"`
	Percent []SenderPercent `json:"percent" yaml:"percent"`
}

// MostBusyUsersLimit caps BusyUsers.Top.
const MostBusyUsersLimit = 5

// MostBusyUsers ranks every sender of the set, group notifications included.
// Percentages are rounded to two decimals.
func MostBusyUsers(set *records.Set) BusyUsers {
	c := tally.New[string]()
	for _, m := range set.Messages() {
		c.Add(m.Sender)
	}

	result := BusyUsers{
		Top:     rankLabels(c, MostBusyUsersLimit),
		Percent: make([]SenderPercent, 0, c.Len()),
	}
	total := c.Total()
	for _, name := range c.Ranked(0) {
		result.Percent = append(result.Percent, SenderPercent{
			Name:    name,
			Percent: Round2(float64(c.Count(name)) * 100 / float64(total)),
		})
	}
	return result
}

// MostMediaSharedLimit caps MostMediaSharedUsers.
const MostMediaSharedLimit = 10

// MostMediaSharedUsers ranks senders by the number of non-text messages.
func MostMediaSharedUsers(set *records.Set) []LabelCount {
	c := tally.New[string]()
	for _, m := range set.Messages() {
		if m.MediaType != records.MediaTypeText {
			c.Add(m.Sender)
		}
	}
	return rankLabels(c, MostMediaSharedLimit)
}

// Users lists the selectable scopes: "Overall" followed by every human
// sender in sorted order.
func Users(set *records.Set) []string {
	senders := make([]string, 0)
	for _, s := range set.Senders() {
		if s != records.GroupNotification {
			senders = append(senders, s)
		}
	}
	sort.Strings(senders)
	return append([]string{records.Overall}, senders...)
}

// MediaStats counts messages per media type, most frequent first.
func MediaStats(view *records.View) []LabelCount {
	c := tally.New[string]()
	view.Each(func(m records.Message) {
		c.Add(string(m.MediaType))
	})
	return rankLabels(c, 0)
}

// SentimentStats counts messages per sentiment label. It is empty until the
// set has been labeled.
func SentimentStats(view *records.View) []LabelCount {
	if !view.HasSentiment() {
		return []LabelCount{}
	}
	c := tally.New[string]()
	view.Each(func(m records.Message) {
		c.Add(string(m.Sentiment))
	})
	return rankLabels(c, 0)
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
