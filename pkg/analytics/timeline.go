package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/otherjamesbrown/chatlens/pkg/records"
	"github.com/otherjamesbrown/chatlens/pkg/tally"
)

// MonthPoint is one month of the monthly timeline.
type MonthPoint struct {
	Year        int    `json:"year" yaml:"year"`
	MonthNumber int    `json:"month_number" yaml:"month_number"`
	Label       string `json:"label" yaml:"label"`
	Count       int    `json:"count" yaml:"count"`
}

// MonthlyTimeline counts messages per calendar month in chronological order.
// Labels look like "January-2024".
func MonthlyTimeline(view *records.View) []MonthPoint {
	type key struct{ year, month int }
	counts := make(map[key]*MonthPoint)
	view.Each(func(m records.Message) {
		k := key{m.Year, m.MonthNumber}
		p, ok := counts[k]
		if !ok {
			p = &MonthPoint{
				Year:        m.Year,
				MonthNumber: m.MonthNumber,
				Label:       fmt.Sprintf("%s-%d", m.MonthName, m.Year),
			}
			counts[k] = p
		}
		p.Count++
	})

	points := make([]MonthPoint, 0, len(counts))
	for _, p := range counts {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].MonthNumber < points[j].MonthNumber
	})
	return points
}

// DayPoint is one date of the daily timeline.
type DayPoint struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// DailyTimeline counts messages per date in chronological order.
func DailyTimeline(view *records.View) []DayPoint {
	counts := make(map[string]int)
	view.Each(func(m records.Message) {
		counts[m.DateOnly]++
	})

	points := make([]DayPoint, 0, len(counts))
	for date, n := range counts {
		points = append(points, DayPoint{Date: date, Count: n})
	}
	// DateOnly is YYYY-MM-DD, so lexical order is chronological.
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// WeekActivityMap counts messages per weekday name, busiest first.
func WeekActivityMap(view *records.View) []LabelCount {
	c := tally.New[string]()
	view.Each(func(m records.Message) {
		c.Add(m.WeekdayName)
	})
	return rankLabels(c, 0)
}

// MonthActivityMap counts messages per month name across years, busiest first.
func MonthActivityMap(view *records.View) []LabelCount {
	c := tally.New[string]()
	view.Each(func(m records.Message) {
		c.Add(m.MonthName)
	})
	return rankLabels(c, 0)
}

// Heatmap is a weekday by hour-bucket message count matrix.
// Counts[i][j] is the count for Days[i] in Periods[j].
type Heatmap struct {
	Days    []string `json:"days" yaml:"days"`
	Periods []string `json:"periods" yaml:"periods"`
	Counts  [][]int  `json:"counts" yaml:"counts"`
}

// weekdayOrder lists weekdays Monday first.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ActivityHeatmap builds the heatmap from the weekdays and periods present in
// the view. Missing cells are 0.
func ActivityHeatmap(view *records.View) Heatmap {
	type cell struct{ day, period string }
	cells := make(map[cell]int)
	days := make(map[string]bool)
	periods := make(map[string]bool)
	view.Each(func(m records.Message) {
		cells[cell{m.WeekdayName, m.PeriodBucket}]++
		days[m.WeekdayName] = true
		periods[m.PeriodBucket] = true
	})

	hm := Heatmap{Days: []string{}, Periods: []string{}, Counts: [][]int{}}
	for _, wd := range weekdayOrder {
		if days[wd.String()] {
			hm.Days = append(hm.Days, wd.String())
		}
	}
	for p := range periods {
		hm.Periods = append(hm.Periods, p)
	}
	sort.Strings(hm.Periods)

	for _, d := range hm.Days {
		row := make([]int, len(hm.Periods))
		for j, p := range hm.Periods {
			row[j] = cells[cell{d, p}]
		}
		hm.Counts = append(hm.Counts, row)
	}
	return hm
}
