package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const defaultAPIRoot = "https://api.telegram.org"

var defaultTimeouts = Timeouts{
	Connect: 10 * time.Second,
	Request: 20 * time.Second,
	Poll:    50 * time.Second,
}

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
	timeouts   Timeouts
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	b := &Bot{
		token:  token,
		apiURL: fmt.Sprintf("%s/bot%s", defaultAPIRoot, token),
	}
	b.SetTimeouts(defaultTimeouts)
	return b
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// SetTimeouts replaces the call deadlines. Zero fields keep their defaults.
func (b *Bot) SetTimeouts(t Timeouts) {
	if t.Connect <= 0 {
		t.Connect = defaultTimeouts.Connect
	}
	if t.Request <= 0 {
		t.Request = defaultTimeouts.Request
	}
	if t.Poll <= 0 {
		t.Poll = defaultTimeouts.Poll
	}
	b.timeouts = t

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: t.Connect, KeepAlive: 30 * time.Second}).DialContext
	transport.TLSHandshakeTimeout = t.Connect
	b.httpClient = &http.Client{Transport: transport}
}

// SetWebhook registers the webhook URL with Telegram.
// secretToken is echoed back by Telegram in X-Telegram-Bot-Api-Secret-Token.
func (b *Bot) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	payload := map[string]any{
		"url":             webhookURL,
		"allowed_updates": []string{"message"},
	}
	if secretToken != "" {
		payload["secret_token"] = secretToken
	}
	return b.call(ctx, "setWebhook", payload, nil, b.timeouts.Request)
}

// DeleteWebhook removes the webhook so getUpdates can be used.
func (b *Bot) DeleteWebhook(ctx context.Context) error {
	return b.call(ctx, "deleteWebhook", map[string]any{"drop_pending_updates": false}, nil, b.timeouts.Request)
}

// Send calls sendMessage with the full request. A missed deadline wraps ErrTimeout.
func (b *Bot) Send(ctx context.Context, req SendMessageRequest) error {
	return b.call(ctx, "sendMessage", req, nil, b.timeouts.Request)
}

// GetMe returns the bot's own user; used as a reachability probe.
func (b *Bot) GetMe(ctx context.Context) (User, error) {
	var resp getMeResponse
	if err := b.call(ctx, "getMe", map[string]any{}, &resp, b.timeouts.Request); err != nil {
		return User{}, err
	}
	return resp.Result, nil
}

// GetUpdates long-polls for message updates starting at offset.
func (b *Bot) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	payload := map[string]any{
		"timeout":         int(b.timeouts.Poll / time.Second),
		"allowed_updates": []string{"message"},
	}
	if offset > 0 {
		payload["offset"] = offset
	}

	var resp getUpdatesResponse
	if err := b.call(ctx, "getUpdates", payload, &resp, b.timeouts.Poll+b.timeouts.Request); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func (b *Bot) call(ctx context.Context, method string, payload any, out any, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s", b.apiURL, method), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		err = stripURL(err)
		if isDeadline(err) {
			return fmt.Errorf("%w: %s: %v", ErrTimeout, method, err)
		}
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		err = stripURL(err)
		if isDeadline(err) {
			return fmt.Errorf("%w: %s: %v", ErrTimeout, method, err)
		}
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	var apiResp APIResponse
	decodeErr := json.Unmarshal(raw, &apiResp)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && apiResp.Description != "" {
			return fmt.Errorf("%w: %s %d: %s", ErrAPI, method, resp.StatusCode, apiResp.Description)
		}
		return fmt.Errorf("%w: %s %d: %s", ErrAPI, method, resp.StatusCode, string(raw))
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, decodeErr)
	}
	if !apiResp.OK {
		return fmt.Errorf("%w: %s failed: %s", ErrAPI, method, apiResp.Description)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}
	return nil
}

// stripURL drops the request URL from a transport error; the URL path holds
// the bot token.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
