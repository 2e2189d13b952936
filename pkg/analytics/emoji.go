package analytics

import (
	"github.com/forPelevin/gomoji"

	"github.com/otherjamesbrown/chatlens/pkg/records"
	"github.com/otherjamesbrown/chatlens/pkg/tally"
)

// EmojiRegistry decides whether a single code point is an emoji.
type EmojiRegistry interface {
	IsEmoji(r rune) bool
}

// GomojiRegistry is backed by the Unicode emoji list bundled with gomoji.
type GomojiRegistry struct{}

// Fitzpatrick skin-tone modifiers. gomoji only lists them inside sequences.
const (
	skinToneFirst = '\U0001F3FB'
	skinToneLast  = '\U0001F3FF'
)

// IsEmoji implements EmojiRegistry. Skin-tone modifiers count as emoji.
func (GomojiRegistry) IsEmoji(r rune) bool {
	if r >= skinToneFirst && r <= skinToneLast {
		return true
	}
	_, err := gomoji.GetInfo(string(r))
	return err == nil
}

// EmojiCount is an emoji with its frequency.
type EmojiCount struct {
	Emoji string `json:"emoji" yaml:"emoji"`
	Count int    `json:"count" yaml:"count"`
}

// EmojiFrequency counts every code point the registry accepts, most frequent
// first. Multi-code-point sequences are counted per code point. A nil
// registry uses GomojiRegistry.
func EmojiFrequency(view *records.View, registry EmojiRegistry) []EmojiCount {
	if registry == nil {
		registry = GomojiRegistry{}
	}

	c := tally.New[rune]()
	view.Each(func(m records.Message) {
		for _, r := range m.Content {
			if registry.IsEmoji(r) {
				c.Add(r)
			}
		}
	})

	keys := c.Ranked(0)
	out := make([]EmojiCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, EmojiCount{Emoji: string(k), Count: c.Count(k)})
	}
	return out
}
