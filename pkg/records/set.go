package records

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Set is the immutable record set of one transcript. The only field written
// after construction is Message.Sentiment, populated once by LabelSentiment.
type Set struct {
	messages []Message

	sentimentOnce sync.Once
	labeled       atomic.Bool
}

// NewSet copies messages into a new Set.
func NewSet(messages []Message) *Set {
	return newSet(append([]Message(nil), messages...))
}

func newSet(messages []Message) *Set {
	return &Set{messages: messages}
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.messages)
}

// Messages returns a copy of all records in input order.
func (s *Set) Messages() []Message {
	return append([]Message(nil), s.messages...)
}

// Senders returns distinct senders in order of first appearance,
// including the group notification sentinel.
func (s *Set) Senders() []string {
	seen := make(map[string]bool)
	senders := make([]string, 0)
	for _, m := range s.messages {
		if !seen[m.Sender] {
			seen[m.Sender] = true
			senders = append(senders, m.Sender)
		}
	}
	return senders
}

// Chronological returns a copy of the records stably sorted by timestamp.
func (s *Set) Chronological() []Message {
	sorted := s.Messages()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// LabelSentiment attaches a sentiment label to every record the first time it
// is called. Labels are computed into a separate slice and then published, so
// later calls, including concurrent ones, are no-ops. It reports whether this
// call did the labeling.
func (s *Set) LabelSentiment(label func(content string) Sentiment) bool {
	computed := false
	s.sentimentOnce.Do(func() {
		labels := make([]Sentiment, len(s.messages))
		for i, m := range s.messages {
			labels[i] = label(m.Content)
		}
		for i := range s.messages {
			s.messages[i].Sentiment = labels[i]
		}
		s.labeled.Store(true)
		computed = true
	})
	return computed
}

// HasSentiment reports whether LabelSentiment has run.
func (s *Set) HasSentiment() bool {
	return s.labeled.Load()
}

// Scope returns a read-only view limited to sender, or every record for Overall.
func (s *Set) Scope(sender string) *View {
	v := &View{set: s, sender: sender, messages: make([]*Message, 0)}
	for i := range s.messages {
		if sender == Overall || s.messages[i].Sender == sender {
			v.messages = append(v.messages, &s.messages[i])
		}
	}
	return v
}

// View is a filtered, read-only projection of a Set.
type View struct {
	set      *Set
	sender   string
	messages []*Message
}

// Sender returns the filter the view was scoped with.
func (v *View) Sender() string {
	return v.sender
}

// IsOverall reports whether the view covers every sender.
func (v *View) IsOverall() bool {
	return v.sender == Overall
}

// Len returns the number of records in the view.
func (v *View) Len() int {
	return len(v.messages)
}

// Empty reports whether the view has no records.
func (v *View) Empty() bool {
	return len(v.messages) == 0
}

// HasSentiment reports whether the underlying set has been labeled.
func (v *View) HasSentiment() bool {
	return v.set.HasSentiment()
}

// Each calls fn with a copy of every record in input order.
func (v *View) Each(fn func(m Message)) {
	for _, m := range v.messages {
		fn(*m)
	}
}

// Messages returns a copy of the records in the view.
func (v *View) Messages() []Message {
	out := make([]Message, len(v.messages))
	for i, m := range v.messages {
		out[i] = *m
	}
	return out
}
