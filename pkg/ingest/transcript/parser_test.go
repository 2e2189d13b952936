package transcript

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BasicFormat(t *testing.T) {
	chat := `1/1/24, 09:00 - Alice: Hello
1/1/24, 09:02 - Bob: Hi there!
1/1/24, 09:05 - Alice: how are you
doing today?
`

	result, err := Parse(strings.NewReader(chat))
	require.NoError(t, err)

	require.Len(t, result.Messages, 3)
	assert.Equal(t, 4, result.LinesRead)
	assert.Empty(t, result.Skipped)

	assert.Equal(t, RawMessage{LineNumber: 1, RawDate: "1/1/24", RawTime: "09:00", Sender: "Alice", Content: "Hello"}, result.Messages[0])
	assert.Equal(t, "Bob", result.Messages[1].Sender)
	assert.Equal(t, "Hi there!", result.Messages[1].Content)
	assert.Equal(t, "how are you doing today?", result.Messages[2].Content)
	assert.Equal(t, 3, result.Messages[2].LineNumber)
}

func TestParse_TwelveHourTimes(t *testing.T) {
	chat := "11/1/25, 1:49 PM - Alice: afternoon\n" +
		"11/1/25, 1:50\u202fpm - Bob: narrow space\n" +
		"11/1/2025, 9:05am - Carol: no space\n"

	result, err := Parse(strings.NewReader(chat))
	require.NoError(t, err)
	require.Len(t, result.Messages, 3)

	assert.Equal(t, "1:49 PM", result.Messages[0].RawTime)
	assert.Equal(t, "1:50 PM", result.Messages[1].RawTime)
	assert.Equal(t, "9:05AM", result.Messages[2].RawTime)
	assert.Equal(t, "11/1/2025", result.Messages[2].RawDate)
}

func TestParse_UnicodeSeparators(t *testing.T) {
	chat := "1/1/24, 9:05 PM - Alice: first\n" +
		"1/1/24,\u202f9:06\u202fPM\u202f-\u202fCarol: narrow\n" +
		"1/1/24,\u00a09:07\u00a0PM - Dave: no-break\n"

	result, err := Parse(strings.NewReader(chat))
	require.NoError(t, err)
	require.Len(t, result.Messages, 3)

	assert.Equal(t, "first", result.Messages[0].Content)
	assert.Equal(t, RawMessage{LineNumber: 2, RawDate: "1/1/24", RawTime: "9:06 PM", Sender: "Carol", Content: "narrow"}, result.Messages[1])
	assert.Equal(t, "9:07 PM", result.Messages[2].RawTime)
	assert.Equal(t, "Dave", result.Messages[2].Sender)
}

func TestParse_GroupNotification(t *testing.T) {
	chat := `5/10/25, 13:09 - Messages and calls are end-to-end encrypted. Tap to learn more.
5/10/25, 13:10 - Alice joined using this group's invite link
5/10/25, 13:11 - Alice: hi
`

	result, err := Parse(strings.NewReader(chat))
	require.NoError(t, err)
	require.Len(t, result.Messages, 3)

	assert.Equal(t, GroupNotification, result.Messages[0].Sender)
	assert.Equal(t, "Messages and calls are end-to-end encrypted. Tap to learn more.", result.Messages[0].Content)
	assert.Equal(t, GroupNotification, result.Messages[1].Sender)
	assert.Equal(t, "Alice", result.Messages[2].Sender)
}

func TestParse_SplitsOnFirstColon(t *testing.T) {
	chat := "2/3/24, 10:00 - Alice: meeting at 10:30: don't be late\n"

	result, err := Parse(strings.NewReader(chat))
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	assert.Equal(t, "Alice", result.Messages[0].Sender)
	assert.Equal(t, "meeting at 10:30: don't be late", result.Messages[0].Content)
}

func TestParse_ColonInContinuationCountsForSplit(t *testing.T) {
	// The continuation is appended before the sender split, so a colon on the
	// next line turns a notification into a sender line.
	chat := "2/3/24, 10:00 - Alice changed the group description\nnew rules: be kind\n"

	result, err := Parse(strings.NewReader(chat))
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	assert.Equal(t, "Alice changed the group description new rules", result.Messages[0].Sender)
	assert.Equal(t, "be kind", result.Messages[0].Content)
}

func TestParse_LinesBeforeFirstMessageAreSkipped(t *testing.T) {
	chat := `WhatsApp Chat with Team

1/1/24, 09:00 - Alice: Hello
`

	result, err := Parse(strings.NewReader(chat))
	require.NoError(t, err)

	require.Len(t, result.Messages, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, SkippedLine{LineNumber: 1, Text: "WhatsApp Chat with Team", Reason: ReasonBeforeFirstMessage}, result.Skipped[0])
}

func TestParse_ContinuationMergeIsAssociative(t *testing.T) {
	oneByOne := "1/1/24, 09:00 - Alice: first\n  second  \nthird\n"
	result, err := Parse(strings.NewReader(oneByOne))
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)

	// Merging "second" and "third" first, then onto the message, gives the same text.
	premerged := "1/1/24, 09:00 - Alice: first\n" + strings.TrimSpace("  second  ") + " third\n"
	other, err := Parse(strings.NewReader(premerged))
	require.NoError(t, err)
	require.Len(t, other.Messages, 1)

	assert.Equal(t, "first second third", result.Messages[0].Content)
	assert.Equal(t, result.Messages[0].Content, other.Messages[0].Content)
}

func TestParse_StripsBOMAndCRLF(t *testing.T) {
	chat := "\ufeff1/1/24, 09:00 - Alice: Hello\r\n1/1/24, 09:01 - Bob: Hi\r\n"

	result, err := Parse(strings.NewReader(chat))
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)

	assert.Equal(t, "1/1/24", result.Messages[0].RawDate)
	assert.Equal(t, "Hi", result.Messages[1].Content)
}

func TestParse_InvalidUTF8IsLossy(t *testing.T) {
	chat := []byte("1/1/24, 09:00 - Alice: caf\xff\n")

	result, err := Parse(bytes.NewReader(chat))
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.True(t, strings.HasPrefix(result.Messages[0].Content, "caf"))
}

func TestParse_LongLine(t *testing.T) {
	long := strings.Repeat("a", 200*1024)
	chat := "1/1/24, 09:00 - Alice: " + long + "\n"

	result, err := Parse(strings.NewReader(chat))
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Len(t, result.Messages[0].Content, len(long))
}

func TestParse_EmptyInput(t *testing.T) {
	result, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Len(t, result.Messages, 0)
	assert.Len(t, result.Skipped, 0)
	assert.Equal(t, 0, result.LinesRead)
}

func TestParse_MalformedLinesOnly(t *testing.T) {
	chat := `This line has no timestamp
2024-01-01 09:00 : Alice : wrong format
`

	result, err := Parse(strings.NewReader(chat))
	require.NoError(t, err)
	assert.Len(t, result.Messages, 0)
	assert.Len(t, result.Skipped, 2)
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"09:00", "09:00"},
		{"1:49 pm", "1:49 PM"},
		{"1:49\u202fam", "1:49 AM"},
		{"9:06\u00a0pm", "9:06 PM"},
		{" 1:49PM ", "1:49PM"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTime(tt.in))
		})
	}
}
