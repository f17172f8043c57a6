package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lynck-services/lead-api/internal/config"
	"github.com/lynck-services/lead-api/internal/domain"
	"go.uber.org/zap"
)

// WebhookClient delivers outbound notifications to the configured endpoint.
// Delivery is best-effort: callers log failures and move on, a lead is never
// lost because the webhook endpoint is down.
type WebhookClient struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewWebhookClient(cfg *config.WebhookConfig, logger *zap.Logger) *WebhookClient {
	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookClient{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Enabled reports whether a webhook URL is configured
func (c *WebhookClient) Enabled() bool {
	return c.url != ""
}

// leadCreatedPayload carries the lead's public fields. Field names are
// snake_case because the receiving automation expects them that way.
type leadCreatedPayload struct {
	Event     string  `json:"event"`
	LeadID    string  `json:"lead_id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	City      string  `json:"city"`
	PLZ       string  `json:"plz"`
	ServiceID string  `json:"service_id,omitempty"`
	Details   string  `json:"details"`
	Timeline  string  `json:"timeline"`
	Timestamp string  `json:"timestamp"`
}

// LeadCreated notifies the endpoint about a new lead
func (c *WebhookClient) LeadCreated(ctx context.Context, lead *domain.Lead) error {
	if !c.Enabled() {
		return nil
	}

	payload := leadCreatedPayload{
		Event:     "lead.created",
		LeadID:    lead.ID.String(),
		Name:      lead.Name,
		Phone:     lead.Phone,
		Email:     lead.Email,
		City:      lead.City,
		PLZ:       lead.PLZ,
		Details:   lead.ServiceDetails,
		Timeline:  string(lead.Timeline),
		Timestamp: lead.CreatedAt.UTC().Format(time.RFC3339),
	}
	if lead.ServiceID != nil {
		payload.ServiceID = lead.ServiceID.String()
	}

	return c.post(ctx, payload)
}

type digestPayload struct {
	Event string                   `json:"event"`
	Date  string                   `json:"date"`
	Stats domain.DashboardStatsDTO `json:"stats"`
}

// SendDigest delivers the daily stats digest
func (c *WebhookClient) SendDigest(ctx context.Context, stats domain.DashboardStatsDTO) error {
	if !c.Enabled() {
		return nil
	}

	return c.post(ctx, digestPayload{
		Event: "stats.daily_digest",
		Date:  time.Now().UTC().Format("2006-01-02"),
		Stats: stats,
	})
}

func (c *WebhookClient) post(ctx context.Context, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	c.logger.Debug("webhook delivered", zap.Int("status", resp.StatusCode))
	return nil
}
