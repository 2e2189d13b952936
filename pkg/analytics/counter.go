// Package analytics computes descriptive statistics over a scoped view of a
// chat record set: counts, timelines, activity maps, word and emoji
// frequencies and media breakdowns. Every function is pure and returns empty
// results for an empty view.
package analytics

import "github.com/otherjamesbrown/chatlens/pkg/tally"

// LabelCount is a label with its number of occurrences.
type LabelCount struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

func rankLabels(c *tally.Counter[string], limit int) []LabelCount {
	keys := c.Ranked(limit)
	out := make([]LabelCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, LabelCount{Label: k, Count: c.Count(k)})
	}
	return out
}
