package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hireflow/interview-agent/internal/observability"
)

const defaultGreenAPIBaseURL = "https://api.greenapi.com"

// GreenAPIClient sends outbound chat messages through the GreenAPI
// sendMessage endpoint.
type GreenAPIClient struct {
	baseURL    string
	instanceID string
	token      string
	http       *http.Client
}

func NewGreenAPIClient(baseURL, instanceID, token string, timeout time.Duration) (*GreenAPIClient, error) {
	if instanceID == "" || token == "" {
		return nil, fmt.Errorf("greenapi instance id and token are required")
	}
	if baseURL == "" {
		baseURL = defaultGreenAPIBaseURL
	}
	return &GreenAPIClient{
		baseURL:    baseURL,
		instanceID: instanceID,
		token:      token,
		http:       &http.Client{Timeout: timeout},
	}, nil
}

type sendMessageRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

// SendMessage delivers text to a chat conversation.
func (c *GreenAPIClient) SendMessage(ctx context.Context, chatID, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Message: text})
	if err != nil {
		return fmt.Errorf("encoding send message request: %w", err)
	}

	url := fmt.Sprintf("%s/waInstance%s/sendMessage/%s", c.baseURL, c.instanceID, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building send message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send message request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("greenapi returned status %d: %s", res.StatusCode, snippet)
	}

	observability.LoggerFromContext(ctx).Info("chat message sent", "chat_id", chatID)
	return nil
}
