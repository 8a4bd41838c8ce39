package llm

import (
	"context"
	"fmt"
	"unicode/utf8"

	"kawase-service/internal/application"
)

var _ application.PredictionClient = (*Fake)(nil)

// Fake answers locally without any network call.
type Fake struct{}

func NewFake() *Fake { return &Fake{} }

func (Fake) Predict(_ context.Context, prompt string) (string, error) {
	return fmt.Sprintf("（オフライン応答）%d文字の質問を受け付けました。為替の将来値は断定できません。", utf8.RuneCountInString(prompt)), nil
}
