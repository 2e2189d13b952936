// Package summary condenses a record set into a handful of headline facts and
// formats them as prose or bullets.
package summary

import (
	"fmt"

	"github.com/otherjamesbrown/chatlens/pkg/records"
	"github.com/otherjamesbrown/chatlens/pkg/tally"
)

const (
	// NotEnoughData replaces every string field of an empty summary.
	NotEnoughData = "Not enough data"
	// NotComputed is the dominant sentiment of an unlabeled set.
	NotComputed = "Not computed"
)

// Summary holds the aggregate facts of a chat.
type Summary struct {
	DateRange         string `json:"date_range" yaml:"date_range"`
	TotalMessages     int    `json:"total_messages" yaml:"total_messages"`
	TotalUsers        int    `json:"total_users" yaml:"total_users"`
	MostActiveUser    string `json:"most_active_user" yaml:"most_active_user"`
	DominantSentiment string `json:"dominant_sentiment" yaml:"dominant_sentiment"`
	PeakHour          string `json:"peak_hour" yaml:"peak_hour"`
}

// Field is one summary entry keyed by its snake_case name.
type Field struct {
	Key   string
	Value any
}

// Fields returns the summary entries in display order.
func (s Summary) Fields() []Field {
	return []Field{
		{"date_range", s.DateRange},
		{"total_messages", s.TotalMessages},
		{"total_users", s.TotalUsers},
		{"most_active_user", s.MostActiveUser},
		{"dominant_sentiment", s.DominantSentiment},
		{"peak_hour", s.PeakHour},
	}
}

// Generate computes the summary. Senders are counted without exclusions, so
// group notifications count as a participant. Ties in any mode go to the
// value seen first.
func Generate(set *records.Set) Summary {
	msgs := set.Messages()
	if len(msgs) == 0 {
		return Summary{
			DateRange:         NotEnoughData,
			MostActiveUser:    NotEnoughData,
			DominantSentiment: NotEnoughData,
			PeakHour:          NotEnoughData,
		}
	}

	minDate, maxDate := msgs[0].DateOnly, msgs[0].DateOnly
	senders := tally.New[string]()
	hours := tally.New[int]()
	sentiments := tally.New[records.Sentiment]()

	for _, m := range msgs {
		if m.DateOnly < minDate {
			minDate = m.DateOnly
		}
		if m.DateOnly > maxDate {
			maxDate = m.DateOnly
		}
		senders.Add(m.Sender)
		hours.Add(m.Hour)
		if m.Sentiment != "" {
			sentiments.Add(m.Sentiment)
		}
	}

	s := Summary{
		DateRange:         fmt.Sprintf("%s to %s", minDate, maxDate),
		TotalMessages:     len(msgs),
		TotalUsers:        senders.Len(),
		MostActiveUser:    senders.Top(),
		DominantSentiment: NotComputed,
	}
	if set.HasSentiment() {
		s.DominantSentiment = string(sentiments.Top())
	}
	peak := hours.Top()
	s.PeakHour = fmt.Sprintf("%d:00 - %d:00", peak, peak+1)

	return s
}

// Narrative renders the summary as a few sentences.
func Narrative(s Summary) string {
	return fmt.Sprintf(
		"This WhatsApp chat spans from %s. %d messages were exchanged among %d participants. "+
			"The most active user was %s. The dominant sentiment was %s. Peak activity occurred between %s.",
		s.DateRange, s.TotalMessages, s.TotalUsers, s.MostActiveUser, s.DominantSentiment, s.PeakHour,
	)
}

// Bullets renders the summary as short facts.
func Bullets(s Summary) []string {
	return []string{
		fmt.Sprintf("📅 Chat duration: %s", s.DateRange),
		fmt.Sprintf("💬 Total messages: %d", s.TotalMessages),
		fmt.Sprintf("👥 Participants: %d", s.TotalUsers),
		fmt.Sprintf("🏆 Most active user: %s", s.MostActiveUser),
		fmt.Sprintf("🙂 Dominant sentiment: %s", s.DominantSentiment),
		fmt.Sprintf("⏰ Peak hour: %s", s.PeakHour),
	}
}
