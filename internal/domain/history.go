package domain

import (
	"fmt"
	"strconv"
	"time"
)

// HistoryTimeLayout formats HistoryEntry.Time.
const HistoryTimeLayout = "2006-01-02 15:04:05"

// HistoryEntry records one successful conversion. Entries are never edited.
type HistoryEntry struct {
	Direction string  `json:"direction"`
	Input     string  `json:"input"`
	Output    string  `json:"output"`
	Rate      float64 `json:"rate"`
	Time      string  `json:"time"`
}

// HistoryColumns is the export header, in column order.
var HistoryColumns = []string{"direction", "input", "output", "rate", "time"}

func NewHistoryEntry(from, to Currency, amount, result, rate float64, at time.Time) HistoryEntry {
	return HistoryEntry{
		Direction: fmt.Sprintf("%s to %s", from, to),
		Input:     FormatAmount(amount, from),
		Output:    FormatAmount(result, to),
		Rate:      rate,
		Time:      at.Format(HistoryTimeLayout),
	}
}

// Record returns the entry as export columns.
func (e HistoryEntry) Record() []string {
	return []string{e.Direction, e.Input, e.Output, FormatRate(e.Rate), e.Time}
}

// FormatAmount renders a money amount with two decimals and its code.
func FormatAmount(v float64, c Currency) string {
	return fmt.Sprintf("%.2f %s", v, c)
}

// FormatRate renders a rate in its shortest exact form.
func FormatRate(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Convert is the whole conversion arithmetic.
func Convert(amount, rate float64) float64 {
	return amount * rate
}
