package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kawase-service/internal/domain"

	"go.uber.org/zap"
)

// PromptTemplates returns the template set for the session's pair.
func (s *KawaseService) PromptTemplates(ctx context.Context, id string) ([]domain.PromptTemplate, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.TemplatesFor(sess.Pair()), nil
}

// SelectTemplate copies the template's text into the editable prompt.
func (s *KawaseService) SelectTemplate(ctx context.Context, id, title string) (domain.Session, error) {
	return s.update(ctx, id, func(sess *domain.Session) error {
		tpl, ok := domain.FindTemplate(sess.Pair(), title)
		if !ok {
			return fmt.Errorf("%w: template %q", ErrNotFound, title)
		}
		sess.Prompt = tpl.Prompt
		return nil
	})
}

// RequestPrediction sends prompt to the prediction client. A blank prompt
// never reaches the client. On failure the previous prediction stays in
// place.
func (s *KawaseService) RequestPrediction(ctx context.Context, id, prompt string) (domain.Session, error) {
	if strings.TrimSpace(prompt) == "" {
		return domain.Session{}, ErrBlankPrompt
	}
	if _, err := s.sessions.Get(ctx, id); err != nil {
		return domain.Session{}, err
	}
	if s.predictor == nil {
		return domain.Session{}, fmt.Errorf("%w: no client configured", ErrPrediction)
	}
	text, err := s.predictor.Predict(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty response")
	}
	if err != nil {
		s.log.Warn("prediction_failed", zap.String("session_id", id), zap.Error(err))
		return domain.Session{}, fmt.Errorf("%w: %w", ErrPrediction, err)
	}
	return s.update(ctx, id, func(sess *domain.Session) error {
		sess.Prompt = prompt
		sess.Prediction = &text
		return nil
	})
}
