package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"kawase-service/internal/application"
	"kawase-service/internal/domain"
	"kawase-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

type Server struct {
	svc  *application.KawaseService
	ping func(ctx context.Context) error
}

func NewServer(svc *application.KawaseService) *Server { return &Server{svc: svc} }

// SetReadyCheck installs the dependency probe behind /readyz.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

type pairRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type rateSourceRequest struct {
	Source     string   `json:"source"`
	ManualRate *float64 `json:"manual_rate"`
}

type convertRequest struct {
	Amount *float64 `json:"amount"`
}

type templateRequest struct {
	Title string `json:"title"`
}

type predictionRequest struct {
	Prompt string `json:"prompt"`
}

type templatesResponse struct {
	Pair      string                  `json:"pair"`
	Templates []domain.PromptTemplate `json:"templates"`
	Guide     domain.Guide            `json:"guide"`
}

type quoteResponse struct {
	Pair      string  `json:"pair"`
	Price     float64 `json:"price"`
	UpdatedAt string  `json:"updated_at"`
}

func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.renderView(w, r, http.StatusOK)
}

func (s *Server) SelectPair(w http.ResponseWriter, r *http.Request) {
	var body pairRequest
	if !decode(w, r, &body) {
		return
	}
	if _, err := s.svc.SelectPair(r.Context(), sessionID(r), body.From, body.To); err != nil && !errors.Is(err, application.ErrRateFetch) {
		writeAppError(w, r, err)
		return
	}
	s.renderView(w, r, http.StatusOK)
}

func (s *Server) RefreshRate(w http.ResponseWriter, r *http.Request) {
	// A failed fetch is recorded on the session; the view carries it as an
	// error notice.
	if _, err := s.svc.RefreshRate(r.Context(), sessionID(r)); err != nil && !errors.Is(err, application.ErrRateFetch) {
		writeAppError(w, r, err)
		return
	}
	s.renderView(w, r, http.StatusOK)
}

func (s *Server) SetRateSource(w http.ResponseWriter, r *http.Request) {
	var body rateSourceRequest
	if !decode(w, r, &body) {
		return
	}
	if _, err := s.svc.SetRateSource(r.Context(), sessionID(r), domain.RateSource(body.Source), body.ManualRate); err != nil {
		writeAppError(w, r, err)
		return
	}
	s.renderView(w, r, http.StatusOK)
}

func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	var body convertRequest
	if !decode(w, r, &body) {
		return
	}
	// An empty amount field converts nothing, like an explicit zero.
	amount := 0.0
	if body.Amount != nil {
		amount = *body.Amount
	}
	conv, err := s.svc.Convert(r.Context(), sessionID(r), amount)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	hist, err := s.svc.History(r.Context(), sessionID(r))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if hist == nil {
		hist = []domain.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, hist)
}

func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if _, err := s.svc.ClearHistory(r.Context(), sessionID(r)); err != nil {
		writeAppError(w, r, err)
		return
	}
	s.renderView(w, r, http.StatusOK)
}

func (s *Server) ExportHistory(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.svc.ExportHistoryCSV(r.Context(), sessionID(r), &buf); err != nil {
		writeAppError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", application.HistoryMIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+application.HistoryFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) GetSeries(w http.ResponseWriter, r *http.Request) {
	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(w, "days must be an integer")
			return
		}
		days = n
	}
	series, err := s.svc.RateSeries(r.Context(), sessionID(r), days)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) GetTemplates(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.View(r.Context(), sessionID(r))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	tpls, err := s.svc.PromptTemplates(r.Context(), sessionID(r))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, templatesResponse{
		Pair:      domain.NewPair(view.From, view.To).Label(),
		Templates: tpls,
		Guide:     view.Guide,
	})
}

func (s *Server) SelectTemplate(w http.ResponseWriter, r *http.Request) {
	var body templateRequest
	if !decode(w, r, &body) {
		return
	}
	if _, err := s.svc.SelectTemplate(r.Context(), sessionID(r), body.Title); err != nil {
		writeAppError(w, r, err)
		return
	}
	s.renderView(w, r, http.StatusOK)
}

func (s *Server) RequestPrediction(w http.ResponseWriter, r *http.Request) {
	var body predictionRequest
	if !decode(w, r, &body) {
		return
	}
	if _, err := s.svc.RequestPrediction(r.Context(), sessionID(r), body.Prompt); err != nil {
		writeAppError(w, r, err)
		return
	}
	s.renderView(w, r, http.StatusOK)
}

// CloseSession drops the caller's session and expires the cookie.
func (s *Server) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.CloseSession(r.Context(), sessionID(r)); err != nil {
		writeAppError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.Header().Del(SessionHeader)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) GetLastQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.svc.LastQuote(r.Context(), r.URL.Query().Get("pair"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{
		Pair:      string(q.Pair),
		Price:     q.Price,
		UpdatedAt: q.UpdatedAt.Format(domain.DateLayout),
	})
}

func (s *Server) GetQuoteHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(w, "limit must be an integer")
			return
		}
		limit = n
	}
	hist, err := s.svc.QuoteHistory(r.Context(), r.URL.Query().Get("pair"), limit)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hist)
}

func (s *Server) renderView(w http.ResponseWriter, r *http.Request, status int) {
	view, err := s.svc.View(r.Context(), sessionID(r))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, status, view)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

type errorBody struct {
	Code    int                `json:"code"`
	Level   domain.NoticeLevel `json:"level"`
	Message string             `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Code: status, Level: domain.NoticeError, Message: msg})
}

func writeNotice(w http.ResponseWriter, status int, level domain.NoticeLevel, msg string) {
	writeJSON(w, status, errorBody{Code: status, Level: level, Message: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}

// writeAppError maps application errors to the notice envelope.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case application.IsWarning(err):
		writeNotice(w, http.StatusUnprocessableEntity, domain.NoticeWarning, err.Error())
	case errors.Is(err, application.ErrRateUnavailable):
		writeNotice(w, http.StatusUnprocessableEntity, domain.NoticeError, err.Error())
	case errors.Is(err, application.ErrBadRequest),
		errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrUnsupportedPair):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, application.ErrSeriesFetch):
		writeError(w, http.StatusBadGateway, "Could not fetch rate history from the rate API.")
	case errors.Is(err, application.ErrPrediction):
		writeError(w, http.StatusBadGateway, "The prediction service returned an error.")
	default:
		logx.FromContext(r.Context()).Error("request_failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
