package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Client posts messages to a single Telegram channel via the Bot API.
type Client struct {
	Token     string
	ChannelID string

	// BaseURL overrides the Bot API host, mainly for tests.
	BaseURL string
	HTTP    *http.Client
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage delivers Markdown-formatted text to the configured channel.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if c == nil {
		return errors.New("telegram client is nil")
	}
	token := strings.TrimSpace(c.Token)
	if token == "" {
		return errors.New("telegram bot token is empty")
	}
	chatID := strings.TrimSpace(c.ChannelID)
	if chatID == "" {
		return errors.New("telegram channel id is empty")
	}
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultAPIBase
	}

	body, _ := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/bot"+token+"/sendMessage", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram sendMessage http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var sr sendMessageResponse
	if err := json.Unmarshal(b, &sr); err != nil {
		return err
	}
	if !sr.OK {
		return fmt.Errorf("telegram sendMessage rejected: %s", sr.Description)
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 10 * time.Second}
}
