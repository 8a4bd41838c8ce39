package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"kawase-service/internal/application"
	"kawase-service/internal/infrastructure/httpx"
)

var _ application.PredictionClient = (*CompletionClient)(nil)

// CompletionClient posts the prompt to a text-completion endpoint with a
// bearer credential and reads the first choice.
type CompletionClient struct {
	Endpoint  string
	Model     string
	MaxTokens int
	Client    *httpx.Client
}

type completionReq struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"maxTokens"`
}

type completionResp struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

func (c *CompletionClient) Predict(ctx context.Context, prompt string) (string, error) {
	if c.Endpoint == "" || c.Client == nil || c.Client.Token == "" {
		return "", errors.New("completion: missing configuration")
	}
	payload, err := json.Marshal(completionReq{Model: c.Model, Prompt: prompt, MaxTokens: c.MaxTokens})
	if err != nil {
		return "", fmt.Errorf("completion: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("completion: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var body completionResp
	if err := c.Client.DoJSON(ctx, req, &body); err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	if len(body.Choices) == 0 {
		return "", errors.New("completion: response has no choices")
	}
	return body.Choices[0].Text, nil
}
