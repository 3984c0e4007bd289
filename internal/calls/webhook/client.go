// Package webhook sends call requests to the voice automation webhook.
package webhook

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

	"custodios_crm/platform/config"
	"custodios_crm/platform/logger"
	"custodios_crm/platform/phone"
)

// ActionStartCall is the action the automation scenario routes on.
const ActionStartCall = "iniciar_llamada"

// ErrNotConfigured is returned when no webhook URL is set.
var ErrNotConfigured = errors.New("call webhook not configured")

type Client struct {
	url    string
	region string
	http   *http.Client
	log    *logger.Logger
	now    func() time.Time
}

// CallRequest is the body posted to the webhook.
type CallRequest struct {
	PhoneNumber string `json:"phone_number"`
	LeadName    string `json:"lead_name"`
	LeadID      int64  `json:"lead_id"`
	Timestamp   string `json:"timestamp"`
	Action      string `json:"action"`
}

type webhookConfig interface {
	config.CallWebhookConfig
	config.PhoneConfig
}

// NewClient returns nil when the webhook is disabled.
func NewClient(cfg webhookConfig, log *logger.Logger) *Client {
	if !cfg.IsCallWebhookEnabled() {
		return nil
	}

	timeout := cfg.GetCallWebhookTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		url:    strings.TrimSpace(cfg.GetCallWebhookURL()),
		region: cfg.GetPhoneDefaultRegion(),
		http:   &http.Client{Timeout: timeout},
		log:    log,
		now:    time.Now,
	}
}

// StartCall posts one call request. There are no retries: the agent sees the
// failure and decides whether to press the button again.
func (c *Client) StartCall(ctx context.Context, leadID int64, leadName, phoneNumber string) error {
	if c == nil {
		return ErrNotConfigured
	}

	payload := CallRequest{
		PhoneNumber: phone.NormalizeE164(phoneNumber, c.region),
		LeadName:    leadName,
		LeadID:      leadID,
		Timestamp:   c.now().UTC().Format(time.RFC3339),
		Action:      ActionStartCall,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal call payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call webhook request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("call webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	c.log.Info("call requested", "leadId", leadID, "phone", payload.PhoneNumber)
	return nil
}
