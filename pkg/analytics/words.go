package analytics

import (
	"fmt"
	"os"
	"strings"

	chaterrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/records"
	"github.com/otherjamesbrown/chatlens/pkg/tally"
)

// MostCommonWordsLimit is the default number of words returned.
const MostCommonWordsLimit = 20

// Stopwords is a set of lowercase tokens excluded from word statistics.
type Stopwords map[string]struct{}

// NewStopwords builds a set from the given words.
func NewStopwords(words ...string) Stopwords {
	s := make(Stopwords, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Contains reports whether word is a stopword.
func (s Stopwords) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// LoadStopwords reads a whitespace-separated stopword list. A missing path
// or unreadable file is a configuration error.
func LoadStopwords(path string) (Stopwords, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: stopwords path is not set", chaterrors.ErrConfiguration)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading stopwords: %v", chaterrors.ErrConfiguration, err)
	}
	return NewStopwords(strings.Fields(string(data))...), nil
}

// wordSource reports whether a message contributes to word statistics.
func wordSource(m records.Message) bool {
	return !m.IsNotification() && !m.IsMediaPlaceholder()
}

func cleanWords(content string, stopwords Stopwords) []string {
	fields := strings.Fields(strings.ToLower(content))
	out := fields[:0]
	for _, w := range fields {
		if !stopwords.Contains(w) {
			out = append(out, w)
		}
	}
	return out
}

// WordCount is a word with its frequency.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// MostCommonWords ranks lowercase words that are not stopwords. Group
// notifications and omitted-media placeholders are ignored. limit <= 0
// uses MostCommonWordsLimit.
func MostCommonWords(view *records.View, stopwords Stopwords, limit int) []WordCount {
	if limit <= 0 {
		limit = MostCommonWordsLimit
	}

	c := tally.New[string]()
	view.Each(func(m records.Message) {
		if !wordSource(m) {
			return
		}
		for _, w := range cleanWords(m.Content, stopwords) {
			c.Add(w)
		}
	})

	keys := c.Ranked(limit)
	out := make([]WordCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, WordCount{Word: k, Count: c.Count(k)})
	}
	return out
}

// WordcloudInput joins the cleaned text of every word source message with
// single spaces, ready for an external word-cloud renderer.
func WordcloudInput(view *records.View, stopwords Stopwords) string {
	parts := make([]string, 0)
	view.Each(func(m records.Message) {
		if !wordSource(m) {
			return
		}
		parts = append(parts, strings.Join(cleanWords(m.Content, stopwords), " "))
	})
	return strings.Join(parts, " ")
}
