package records

import (
	"fmt"
	"time"

	"github.com/otherjamesbrown/chatlens/pkg/ingest/transcript"
)

// PeriodBucket labels the hour-wide slot starting at hour, wrapping at midnight.
func PeriodBucket(hour int) string {
	return fmt.Sprintf("%02d-%02d", hour, (hour+1)%24)
}

// Derive normalizes the raw timestamp and attaches all derived fields.
func Derive(raw transcript.RawMessage, order transcript.DateOrder) (Message, error) {
	ts, err := transcript.ParseTimestamp(raw.RawDate, raw.RawTime, order)
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		RawDate: raw.RawDate,
		RawTime: raw.RawTime,
		Sender:  raw.Sender,
		Content: raw.Content,
	}
	applyTimestamp(&msg, ts)
	msg.MediaType = ClassifyMedia(raw.Content)

	return msg, nil
}

func applyTimestamp(msg *Message, ts time.Time) {
	msg.Timestamp = ts
	msg.DateOnly = ts.Format(DateLayout)
	msg.Year = ts.Year()
	msg.MonthNumber = int(ts.Month())
	msg.MonthName = ts.Month().String()
	msg.Day = ts.Day()
	msg.WeekdayName = ts.Weekday().String()
	msg.Hour = ts.Hour()
	msg.Minute = ts.Minute()
	msg.PeriodBucket = PeriodBucket(ts.Hour())
}

// Build derives every raw message of a parse result. Messages whose
// timestamp does not parse are left out and returned as skipped lines.
func Build(result *transcript.Result, order transcript.DateOrder) (*Set, []transcript.SkippedLine) {
	messages := make([]Message, 0, len(result.Messages))
	skipped := make([]transcript.SkippedLine, 0)

	for _, raw := range result.Messages {
		msg, err := Derive(raw, order)
		if err != nil {
			skipped = append(skipped, transcript.SkippedLine{
				LineNumber: raw.LineNumber,
				Text:       raw.RawDate + ", " + raw.RawTime,
				Reason:     transcript.ReasonInvalidTimestamp,
			})
			continue
		}
		messages = append(messages, msg)
	}

	return newSet(messages), skipped
}
