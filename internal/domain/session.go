package domain

import "time"

type RateSource string

const (
	RateSourceAPI    RateSource = "api"
	RateSourceManual RateSource = "manual"
)

// MinManualRate is the smallest rate accepted from manual entry.
const MinManualRate = 0.0001

func (s RateSource) Valid() bool {
	return s == RateSourceAPI || s == RateSourceManual
}

// Session is the per-user state that survives between actions.
//
// LiveRate is nil whenever the last fetch failed, and LiveRateErr then
// holds the failure. LiveRateLoaded marks that the once-per-session fetch
// already happened, successful or not.
type Session struct {
	ID             string         `json:"id"`
	From           Currency       `json:"from"`
	To             Currency       `json:"to"`
	RateSource     RateSource     `json:"rate_source"`
	ManualRate     *float64       `json:"manual_rate,omitempty"`
	LiveRate       *float64       `json:"live_rate,omitempty"`
	LiveRateLoaded bool           `json:"live_rate_loaded"`
	LiveRateErr    string         `json:"live_rate_err,omitempty"`
	History        []HistoryEntry `json:"history"`
	ChartDays      int            `json:"chart_days"`
	Prompt         string         `json:"prompt"`
	Prediction     *string        `json:"prediction,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func NewSession(id string, now time.Time) Session {
	to, _ := ResolveTarget(DefaultFrom, "")
	return Session{
		ID:         id,
		From:       DefaultFrom,
		To:         to,
		RateSource: RateSourceAPI,
		History:    []HistoryEntry{},
		ChartDays:  DefaultChartDays,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s Session) Pair() Pair { return NewPair(s.From, s.To) }
