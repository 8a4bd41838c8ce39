package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kawase-service/internal/application"
	"kawase-service/internal/domain"
	"kawase-service/internal/infrastructure/httpx"
)

const (
	frankfurterLatestPath = "/latest"
)

// FrankfurterProvider reads rates from a Frankfurter compatible API.
type FrankfurterProvider struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.RateProvider = (*FrankfurterProvider)(nil)

type latestResp struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

type seriesResp struct {
	Amount    float64                       `json:"amount"`
	Base      string                        `json:"base"`
	StartDate string                        `json:"start_date"`
	EndDate   string                        `json:"end_date"`
	Rates     map[string]map[string]float64 `json:"rates"`
}

func (p *FrankfurterProvider) Latest(ctx context.Context, pair domain.Pair) (domain.Quote, error) {
	if !domain.ValidatePair(string(pair)) {
		return domain.Quote{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedPair, pair)
	}
	var body latestResp
	if err := p.get(ctx, frankfurterLatestPath, pair, &body); err != nil {
		return domain.Quote{}, err
	}
	price, ok := body.Rates[string(pair.Quote())]
	if !ok {
		return domain.Quote{}, fmt.Errorf("frankfurter: missing rate for %s", pair.Quote())
	}
	if price <= 0 {
		return domain.Quote{}, fmt.Errorf("frankfurter: non-positive rate for %s", pair.Quote())
	}

	updatedAt := time.Now().UTC()
	if d, err := time.Parse(domain.DateLayout, body.Date); err == nil {
		updatedAt = d
	}
	return domain.Quote{Pair: pair, Price: price, UpdatedAt: updatedAt}, nil
}

func (p *FrankfurterProvider) Series(ctx context.Context, pair domain.Pair, start, end time.Time) (domain.RateSeries, error) {
	if !domain.ValidatePair(string(pair)) {
		return domain.RateSeries{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedPair, pair)
	}
	if end.Before(start) {
		return domain.RateSeries{}, errors.New("frankfurter: end date before start date")
	}
	path := "/" + start.Format(domain.DateLayout) + ".." + end.Format(domain.DateLayout)
	var body seriesResp
	if err := p.get(ctx, path, pair, &body); err != nil {
		return domain.RateSeries{}, err
	}

	quote := string(pair.Quote())
	points := make([]domain.RatePoint, 0, len(body.Rates))
	for day, rates := range body.Rates {
		d, err := time.Parse(domain.DateLayout, day)
		if err != nil {
			return domain.RateSeries{}, fmt.Errorf("frankfurter: bad date %q: %w", day, err)
		}
		r, ok := rates[quote]
		if !ok {
			return domain.RateSeries{}, fmt.Errorf("frankfurter: missing rate for %s on %s", quote, day)
		}
		points = append(points, domain.RatePoint{Date: d, Rate: r})
	}
	return domain.NewRateSeries(pair, start, end, points), nil
}

func (p *FrankfurterProvider) get(ctx context.Context, path string, pair domain.Pair, out any) error {
	if p.BaseURL == "" {
		return errors.New("frankfurter: missing base url")
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("frankfurter: invalid base url: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	q := u.Query()
	q.Set("from", string(pair.Base()))
	q.Set("to", string(pair.Quote()))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("frankfurter: create request: %w", err)
	}
	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	if err := client.DoJSON(ctx, req, out); err != nil {
		return fmt.Errorf("frankfurter: %w", err)
	}
	return nil
}
