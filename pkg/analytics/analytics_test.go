package analytics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chaterrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/ingest/transcript"
	"github.com/otherjamesbrown/chatlens/pkg/records"
)

func buildSet(t *testing.T, chat string) *records.Set {
	t.Helper()
	result, err := transcript.Parse(strings.NewReader(chat))
	require.NoError(t, err)
	set, skipped := records.Build(result, transcript.DayFirst)
	require.Empty(t, skipped)
	return set
}

const basicChat = `1/1/24, 09:00 - Alice: Hello
1/1/24, 09:02 - Bob: Hi there!
1/1/24, 09:05 - Alice: how are you
doing today?
`

const groupChat = `30/12/23, 22:15 - Alice created group "Trip"
30/12/23, 22:16 - Alice: who is coming 😀
30/12/23, 23:40 - Bob: me 😀😀 check example.com/plan
2/1/24, 08:05 - Carol: <Media omitted>
2/1/24, 08:06 - Carol: IMG-001.jpg (file attached)
2/1/24, 08:30 - Bob: <Media omitted>
15/2/24, 19:00 - Alice: https://maps.example.org/route and the plan
15/2/24, 19:00 - Bob: the plan works
`

func TestFetchStats_Basic(t *testing.T) {
	set := buildSet(t, basicChat)

	stats := FetchStats(set.Scope(records.Overall), nil)
	assert.Equal(t, Stats{Messages: 3, Words: 8, Media: 0, Links: 0}, stats)

	alice := FetchStats(set.Scope("Alice"), nil)
	assert.Equal(t, 2, alice.Messages)
	assert.Equal(t, 6, alice.Words)
}

func TestFetchStats_MediaAndLinks(t *testing.T) {
	set := buildSet(t, groupChat)

	stats := FetchStats(set.Scope(records.Overall), nil)
	assert.Equal(t, 8, stats.Messages)
	assert.Equal(t, 2, stats.Media)
	assert.Equal(t, 2, stats.Links)

	assert.Equal(t, Stats{}, FetchStats(set.Scope("Nobody"), nil))
}

type fixedURLs []string

func (f fixedURLs) FindURLs(string) []string { return f }

func TestFetchStats_InjectedExtractor(t *testing.T) {
	set := buildSet(t, basicChat)
	stats := FetchStats(set.Scope(records.Overall), fixedURLs{"a", "b"})
	assert.Equal(t, 6, stats.Links)
}

func TestRelaxedURLExtractor(t *testing.T) {
	urls := RelaxedURLExtractor{}.FindURLs("see https://go.dev/doc and example.com, not this")
	assert.Equal(t, []string{"https://go.dev/doc", "example.com"}, urls)
	assert.Empty(t, RelaxedURLExtractor{}.FindURLs("no links here"))
}

func TestMostBusyUsers(t *testing.T) {
	set := buildSet(t, groupChat)

	busy := MostBusyUsers(set)
	assert.Equal(t, []LabelCount{
		{Label: "Bob", Count: 3},
		{Label: "Alice", Count: 2},
		{Label: "Carol", Count: 2},
		{Label: records.GroupNotification, Count: 1},
	}, busy.Top)

	require.Len(t, busy.Percent, 4)
	assert.Equal(t, SenderPercent{Name: "Bob", Percent: 37.5}, busy.Percent[0])
	assert.Equal(t, SenderPercent{Name: "Alice", Percent: 25}, busy.Percent[1])
	assert.Equal(t, SenderPercent{Name: records.GroupNotification, Percent: 12.5}, busy.Percent[3])
}

func TestMostBusyUsers_TopFive(t *testing.T) {
	var b strings.Builder
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "F"} {
		b.WriteString("1/1/24, 10:00 - " + name + ": x\n")
	}
	busy := MostBusyUsers(buildSet(t, b.String()))

	require.Len(t, busy.Top, MostBusyUsersLimit)
	assert.Equal(t, "F", busy.Top[0].Label)
	assert.Equal(t, "A", busy.Top[1].Label)
	assert.Len(t, busy.Percent, 6)
	assert.Equal(t, 14.29, busy.Percent[1].Percent)
}

func TestMostBusyUsers_Empty(t *testing.T) {
	busy := MostBusyUsers(records.NewSet(nil))
	assert.Empty(t, busy.Top)
	assert.Empty(t, busy.Percent)
}

func TestMostMediaSharedUsers(t *testing.T) {
	set := buildSet(t, groupChat)
	assert.Equal(t, []LabelCount{
		{Label: "Carol", Count: 2},
		{Label: "Bob", Count: 1},
	}, MostMediaSharedUsers(set))

	assert.Empty(t, MostMediaSharedUsers(buildSet(t, basicChat)))
}

func TestUsers(t *testing.T) {
	set := buildSet(t, groupChat)
	assert.Equal(t, []string{records.Overall, "Alice", "Bob", "Carol"}, Users(set))
	assert.Equal(t, []string{records.Overall}, Users(records.NewSet(nil)))
}

func TestTimelines(t *testing.T) {
	set := buildSet(t, groupChat)
	view := set.Scope(records.Overall)

	assert.Equal(t, []MonthPoint{
		{Year: 2023, MonthNumber: 12, Label: "December-2023", Count: 3},
		{Year: 2024, MonthNumber: 1, Label: "January-2024", Count: 3},
		{Year: 2024, MonthNumber: 2, Label: "February-2024", Count: 2},
	}, MonthlyTimeline(view))

	assert.Equal(t, []DayPoint{
		{Date: "2023-12-30", Count: 3},
		{Date: "2024-01-02", Count: 3},
		{Date: "2024-02-15", Count: 2},
	}, DailyTimeline(view))

	assert.Empty(t, MonthlyTimeline(set.Scope("Nobody")))
	assert.Empty(t, DailyTimeline(set.Scope("Nobody")))
}

func TestActivityMaps(t *testing.T) {
	set := buildSet(t, basicChat)
	assert.Equal(t, []LabelCount{{Label: "Monday", Count: 3}}, WeekActivityMap(set.Scope(records.Overall)))

	group := buildSet(t, groupChat)
	// 30/12/23 is a Saturday, 2/1/24 a Tuesday, 15/2/24 a Thursday.
	assert.Equal(t, []LabelCount{
		{Label: "Saturday", Count: 3},
		{Label: "Tuesday", Count: 3},
		{Label: "Thursday", Count: 2},
	}, WeekActivityMap(group.Scope(records.Overall)))

	assert.Equal(t, []LabelCount{
		{Label: "December", Count: 3},
		{Label: "January", Count: 3},
		{Label: "February", Count: 2},
	}, MonthActivityMap(group.Scope(records.Overall)))
}

func TestActivityHeatmap(t *testing.T) {
	set := buildSet(t, groupChat)

	hm := ActivityHeatmap(set.Scope(records.Overall))
	assert.Equal(t, []string{"Tuesday", "Thursday", "Saturday"}, hm.Days)
	assert.Equal(t, []string{"08-09", "19-20", "22-23", "23-00"}, hm.Periods)
	assert.Equal(t, [][]int{
		{3, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 2, 1},
	}, hm.Counts)

	empty := ActivityHeatmap(set.Scope("Nobody"))
	assert.Empty(t, empty.Days)
	assert.Empty(t, empty.Periods)
	assert.Empty(t, empty.Counts)
}

func TestMostCommonWords(t *testing.T) {
	set := buildSet(t, groupChat)
	stop := NewStopwords("the", "and", "is")

	words := MostCommonWords(set.Scope(records.Overall), stop, 3)
	assert.Equal(t, []WordCount{
		{Word: "plan", Count: 2},
		{Word: "who", Count: 1},
		{Word: "coming", Count: 1},
	}, words)

	for _, w := range MostCommonWords(set.Scope(records.Overall), stop, 0) {
		assert.NotEqual(t, "created", w.Word, "group notifications are excluded")
		assert.NotEqual(t, "<media", w.Word, "media placeholders are excluded")
		assert.False(t, stop.Contains(w.Word))
	}
}

func TestMostCommonWords_DefaultLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("1/1/24, 10:00 - A:")
	for i := 0; i < 30; i++ {
		b.WriteString(" w" + strings.Repeat("x", i))
	}
	b.WriteString("\n")

	words := MostCommonWords(buildSet(t, b.String()).Scope(records.Overall), NewStopwords(), 0)
	assert.Len(t, words, MostCommonWordsLimit)
}

func TestWordcloudInput(t *testing.T) {
	set := buildSet(t, groupChat)
	text := WordcloudInput(set.Scope("Bob"), NewStopwords("the", "me"))
	assert.Equal(t, "😀😀 check example.com/plan plan works", text)

	assert.Equal(t, "", WordcloudInput(set.Scope("Nobody"), NewStopwords()))
}

func TestLoadStopwords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("hai\nthe  and\n\tka\n"), 0o644))

	stop, err := LoadStopwords(path)
	require.NoError(t, err)
	assert.Len(t, stop, 4)
	assert.True(t, stop.Contains("ka"))
	assert.False(t, stop.Contains("plan"))
}

func TestLoadStopwords_ConfigurationErrors(t *testing.T) {
	_, err := LoadStopwords("")
	assert.True(t, chaterrors.IsConfiguration(err))

	_, err = LoadStopwords(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, chaterrors.IsConfiguration(err))
}

type runeSet map[rune]bool

func (s runeSet) IsEmoji(r rune) bool { return s[r] }

func TestEmojiFrequency(t *testing.T) {
	set := buildSet(t, groupChat)

	counts := EmojiFrequency(set.Scope(records.Overall), runeSet{'😀': true, '📅': true})
	assert.Equal(t, []EmojiCount{{Emoji: "😀", Count: 3}}, counts)

	assert.Empty(t, EmojiFrequency(set.Scope("Carol"), runeSet{'😀': true}))
}

func TestEmojiFrequency_Gomoji(t *testing.T) {
	set := buildSet(t, "1/1/24, 10:00 - A: ok 😂 fine 😂 🎉\n")

	counts := EmojiFrequency(set.Scope(records.Overall), nil)
	require.Len(t, counts, 2)
	assert.Equal(t, EmojiCount{Emoji: "😂", Count: 2}, counts[0])
	assert.Equal(t, EmojiCount{Emoji: "🎉", Count: 1}, counts[1])
}

func TestEmojiFrequency_SkinToneModifiers(t *testing.T) {
	set := buildSet(t, "1/1/24, 10:00 - A: 👍🏽 👍\U0001F3FB\n")

	counts := EmojiFrequency(set.Scope(records.Overall), nil)
	assert.Equal(t, []EmojiCount{
		{Emoji: "👍", Count: 2},
		{Emoji: "🏽", Count: 1},
		{Emoji: "\U0001F3FB", Count: 1},
	}, counts)
}

func TestGomojiRegistry_IsEmoji(t *testing.T) {
	r := GomojiRegistry{}
	for _, e := range []rune{'😂', '👍', 0x1F3FB, 0x1F3FD, 0x1F3FF} {
		assert.True(t, r.IsEmoji(e), "%U", e)
	}
	for _, e := range []rune{'a', ' ', 'é'} {
		assert.False(t, r.IsEmoji(e), "%U", e)
	}
}

func TestMediaStats(t *testing.T) {
	set := buildSet(t, groupChat)
	assert.Equal(t, []LabelCount{
		{Label: "Text", Count: 5},
		{Label: "Media", Count: 2},
		{Label: "Image", Count: 1},
	}, MediaStats(set.Scope(records.Overall)))
}

func TestSentimentStats(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	set := records.NewSet([]records.Message{
		{Sender: "A", Content: "good", Timestamp: at},
		{Sender: "A", Content: "bad", Timestamp: at},
		{Sender: "B", Content: "good", Timestamp: at},
	})
	assert.Empty(t, SentimentStats(set.Scope(records.Overall)))

	set.LabelSentiment(func(content string) records.Sentiment {
		if content == "good" {
			return records.SentimentPositive
		}
		return records.SentimentNegative
	})
	assert.Equal(t, []LabelCount{
		{Label: "Positive", Count: 2},
		{Label: "Negative", Count: 1},
	}, SentimentStats(set.Scope(records.Overall)))
	assert.Equal(t, []LabelCount{{Label: "Positive", Count: 1}}, SentimentStats(set.Scope("B")))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3))
	assert.Equal(t, 66.67, Round2(200.0/3))
	assert.Equal(t, 0.0, Round2(0))
}
