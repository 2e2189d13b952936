// Package transcript parses exported chat transcripts into raw message tuples.
//
// A transcript is free-form text with one logical message per line:
//
//	11/1/25, 1:49 PM - Alice: see you there
//
// Lines that do not start a message are continuations of the previous one.
package transcript

// GroupNotification is the sender recorded for system lines (joins, leaves,
// encryption notices) that carry no "sender: content" split.
const GroupNotification = "group_notification"

// Skip reasons recorded on SkippedLine.
const (
	ReasonBeforeFirstMessage = "before_first_message"
	ReasonInvalidTimestamp   = "invalid_timestamp"
)

// RawMessage is one merged message as captured by the line pattern,
// before timestamp normalization.
type RawMessage struct {
	LineNumber int    `json:"line_number"`
	RawDate    string `json:"raw_date"`
	RawTime    string `json:"raw_time"`
	Sender     string `json:"sender"`
	Content    string `json:"content"`
}

// SkippedLine is a diagnostic for input that did not become a message.
type SkippedLine struct {
	LineNumber int    `json:"line_number"`
	Text       string `json:"text"`
	Reason     string `json:"reason"`
}

// Result is the result of parsing a transcript.
type Result struct {
	Messages  []RawMessage  `json:"messages"`
	Skipped   []SkippedLine `json:"skipped"`
	LinesRead int           `json:"lines_read"`
}

// DateOrder selects how the numeric date of a message line is read.
type DateOrder string

const (
	// DayFirst reads dates as DD/MM/YY[YY].
	DayFirst DateOrder = "dmy"
	// MonthFirst reads dates as MM/DD/YY[YY].
	MonthFirst DateOrder = "mdy"
)

// IsValid reports whether o is a supported date order.
func (o DateOrder) IsValid() bool {
	return o == DayFirst || o == MonthFirst
}
