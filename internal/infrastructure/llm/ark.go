package llm

import (
	"context"
	"errors"
	"fmt"

	"kawase-service/internal/application"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var _ application.PredictionClient = (*ArkClient)(nil)

// ArkClient sends the prompt as a single user message to an Ark chat model.
type ArkClient struct {
	chatModel model.BaseChatModel
}

func NewArkClient(ctx context.Context, apiKey, modelName, baseURL string, maxTokens int) (*ArkClient, error) {
	if apiKey == "" || modelName == "" {
		return nil, errors.New("ark: api key and model are required")
	}
	cfg := &ark.ChatModelConfig{
		APIKey: apiKey,
		Model:  modelName,
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if maxTokens > 0 {
		mt := maxTokens
		cfg.MaxTokens = &mt
	}
	cm, err := ark.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return &ArkClient{chatModel: cm}, nil
}

func (a *ArkClient) Predict(ctx context.Context, prompt string) (string, error) {
	msg, err := a.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", fmt.Errorf("ark generate: %w", err)
	}
	if msg == nil || msg.Content == "" {
		return "", errors.New("ark returned empty content")
	}
	return msg.Content, nil
}
