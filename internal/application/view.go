package application

import (
	"context"
	"fmt"

	"kawase-service/internal/domain"
)

// View is everything the single screen renders for one session.
type View struct {
	SessionID     string                  `json:"session_id"`
	Currencies    []domain.Currency       `json:"currencies"`
	From          domain.Currency         `json:"from"`
	To            domain.Currency         `json:"to"`
	TargetOptions []domain.Currency       `json:"target_options"`
	RateSource    domain.RateSource       `json:"rate_source"`
	LiveRate      *float64                `json:"live_rate"`
	RateLine      string                  `json:"rate_line,omitempty"`
	ManualRate    *float64                `json:"manual_rate"`
	EffectiveRate *float64                `json:"effective_rate"`
	History       []domain.HistoryEntry   `json:"history"`
	ChartDays     int                     `json:"chart_days"`
	Templates     []domain.PromptTemplate `json:"templates"`
	Guide         domain.Guide            `json:"guide"`
	Prompt        string                  `json:"prompt"`
	Prediction    *string                 `json:"prediction"`
	Notices       []domain.Notice         `json:"notices"`
}

// View renders the session. It never fetches; the live rate is loaded once
// when the session is opened and afterwards only on explicit refresh.
func (s *KawaseService) View(ctx context.Context, id string) (View, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return BuildView(sess), nil
}

func BuildView(sess domain.Session) View {
	rate, notice := EffectiveRate(sess)
	v := View{
		SessionID:     sess.ID,
		Currencies:    domain.Currencies,
		From:          sess.From,
		To:            sess.To,
		TargetOptions: domain.TargetOptions(sess.From),
		RateSource:    sess.RateSource,
		LiveRate:      sess.LiveRate,
		ManualRate:    sess.ManualRate,
		EffectiveRate: rate,
		History:       sess.History,
		ChartDays:     sess.ChartDays,
		Templates:     domain.TemplatesFor(sess.Pair()),
		Guide:         domain.GuideFor(sess.Pair()),
		Prompt:        sess.Prompt,
		Prediction:    sess.Prediction,
		Notices:       []domain.Notice{},
	}
	if v.History == nil {
		v.History = []domain.HistoryEntry{}
	}
	if sess.RateSource == domain.RateSourceAPI && sess.LiveRate != nil {
		v.RateLine = fmt.Sprintf("1 %s = %.6f %s", sess.From, *sess.LiveRate, sess.To)
	}
	if fail := FetchFailureNotice(sess); fail != nil {
		v.Notices = append(v.Notices, *fail)
	}
	if notice != nil {
		v.Notices = append(v.Notices, *notice)
	}
	return v
}
