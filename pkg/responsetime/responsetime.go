// Package responsetime measures how quickly each sender replies to someone else.
package responsetime

import (
	"math"

	"github.com/otherjamesbrown/chatlens/pkg/records"
)

const (
	// MaxGapMinutes is the largest gap still counted as a reply.
	MaxGapMinutes = 1440.0
	// MinSamples is the number of replies a sender needs to be reported.
	MinSamples = 3
)

// Average is a sender's mean reply latency.
type Average struct {
	Sender  string  `json:"sender" yaml:"sender"`
	Minutes float64 `json:"minutes" yaml:"minutes"`
	Samples int     `json:"samples" yaml:"samples"`
}

// Samples returns every qualifying reply gap in minutes keyed by the replying
// sender, along with the senders in order of their first reply. A gap
// qualifies when two chronologically adjacent messages come from different
// human senders and are more than zero and at most MaxGapMinutes apart.
func Samples(set *records.Set) (map[string][]float64, []string) {
	sorted := set.Chronological()
	samples := make(map[string][]float64)
	order := make([]string, 0)

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if prev.Sender == curr.Sender || prev.IsNotification() || curr.IsNotification() {
			continue
		}

		gap := curr.Timestamp.Sub(prev.Timestamp).Minutes()
		if gap <= 0 || gap > MaxGapMinutes {
			continue
		}

		if _, ok := samples[curr.Sender]; !ok {
			order = append(order, curr.Sender)
		}
		samples[curr.Sender] = append(samples[curr.Sender], gap)
	}

	return samples, order
}

// Analyze returns the mean reply latency, rounded to two decimals, of every
// sender with at least MinSamples replies.
func Analyze(set *records.Set) []Average {
	samples, order := Samples(set)

	out := make([]Average, 0, len(order))
	for _, sender := range order {
		gaps := samples[sender]
		if len(gaps) < MinSamples {
			continue
		}
		sum := 0.0
		for _, g := range gaps {
			sum += g
		}
		out = append(out, Average{
			Sender:  sender,
			Minutes: math.Round(sum/float64(len(gaps))*100) / 100,
			Samples: len(gaps),
		})
	}
	return out
}

// AsMap keys averages by sender.
func AsMap(averages []Average) map[string]float64 {
	m := make(map[string]float64, len(averages))
	for _, a := range averages {
		m[a.Sender] = a.Minutes
	}
	return m
}
