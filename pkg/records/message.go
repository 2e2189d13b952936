// Package records holds the immutable record set built from a parsed
// transcript, its derived calendar and media fields, and the scoped
// per-sender views used by every analytics operation.
package records

import (
	"time"

	"github.com/otherjamesbrown/chatlens/pkg/ingest/transcript"
)

// Overall selects every record when used as a sender filter.
const Overall = "Overall"

// GroupNotification re-exports the system sender sentinel.
const GroupNotification = transcript.GroupNotification

// MediaPlaceholder is the text an export writes in place of omitted media.
const MediaPlaceholder = "<Media omitted>"

// DateLayout formats Message.DateOnly.
const DateLayout = "2006-01-02"

// Sentiment is a polarity label. The zero value means "not computed".
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Message is one parsed message with its derived fields.
type Message struct {
	RawDate string `json:"raw_date" yaml:"raw_date"`
	RawTime string `json:"raw_time" yaml:"raw_time"`
	Sender  string `json:"sender" yaml:"sender"`
	Content string `json:"content" yaml:"content"`

	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	DateOnly     string    `json:"date_only" yaml:"date_only"`
	Year         int       `json:"year" yaml:"year"`
	MonthNumber  int       `json:"month_number" yaml:"month_number"`
	MonthName    string    `json:"month_name" yaml:"month_name"`
	Day          int       `json:"day" yaml:"day"`
	WeekdayName  string    `json:"weekday_name" yaml:"weekday_name"`
	Hour         int       `json:"hour" yaml:"hour"`
	Minute       int       `json:"minute" yaml:"minute"`
	PeriodBucket string    `json:"period_bucket" yaml:"period_bucket"`
	MediaType    MediaType `json:"media_type" yaml:"media_type"`

	Sentiment Sentiment `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
}

// IsNotification reports whether the message is a system line.
func (m Message) IsNotification() bool {
	return m.Sender == GroupNotification
}

// IsMediaPlaceholder reports whether the content is exactly the omitted-media text.
func (m Message) IsMediaPlaceholder() bool {
	return m.Content == MediaPlaceholder
}
