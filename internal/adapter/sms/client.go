// Package sms dispatches county alerts over bulk SMS via the Africa's
// Talking messaging API.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client sends bulk SMS through the Africa's Talking REST API.
type Client struct {
	apiKey     string
	username   string
	senderID   string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an SMS client. username is "sandbox" outside production.
func NewClient(apiKey, username, senderID string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey:   apiKey,
		username: username,
		senderID: senderID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.africastalking.com/version1/messaging",
		logger:  logger,
	}
}

// SendBulk delivers one message to all recipients in a single API call and
// returns the number of recipients the gateway accepted.
func (c *Client) SendBulk(ctx context.Context, recipients []string, message string) (int, error) {
	if len(recipients) == 0 {
		return 0, nil
	}

	form := url.Values{
		"username": {c.username},
		"to":       {strings.Join(recipients, ",")},
		"message":  {message},
	}
	if c.senderID != "" {
		form.Set("from", c.senderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sms request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("sms gateway error: status %d: %s", resp.StatusCode, body)
	}

	var gatewayResp response
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	accepted := 0
	for _, r := range gatewayResp.SMSMessageData.Recipients {
		// Status codes 100-102 mean processed/sent/queued.
		if r.StatusCode >= 100 && r.StatusCode <= 102 {
			accepted++
		} else {
			c.logger.Warn("sms recipient rejected", "number", r.Number, "status", r.Status)
		}
	}
	return accepted, nil
}

// Africa's Talking API response types.

type response struct {
	SMSMessageData struct {
		Message    string      `json:"Message"`
		Recipients []recipient `json:"Recipients"`
	} `json:"SMSMessageData"`
}

type recipient struct {
	Number     string `json:"number"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Cost       string `json:"cost"`
}
