package domain

import (
	"sort"
	"time"
)

const (
	MinChartDays     = 7
	MaxChartDays     = 90
	DefaultChartDays = 30
)

// DateLayout is the ISO date used by the rate API.
const DateLayout = "2006-01-02"

type RatePoint struct {
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

// RateSeries holds one sample per date, ascending.
type RateSeries struct {
	Pair   Pair        `json:"pair"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Points []RatePoint `json:"points"`
}

// NewRateSeries sorts points ascending by date.
func NewRateSeries(p Pair, start, end time.Time, points []RatePoint) RateSeries {
	sorted := make([]RatePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return RateSeries{Pair: p, Start: start, End: end, Points: sorted}
}

func ValidChartDays(days int) bool {
	return days >= MinChartDays && days <= MaxChartDays
}

// ChartWindow returns the inclusive date range ending today.
func ChartWindow(today time.Time, days int) (time.Time, time.Time) {
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return end.AddDate(0, 0, -days), end
}
