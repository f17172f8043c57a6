package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/config"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLead() *domain.Lead {
	serviceID := uuid.New()
	email := "max@example.com"
	return &domain.Lead{
		ID:             uuid.New(),
		CreatedAt:      time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
		Name:           "Max Mustermann",
		Phone:          "+4915112345678",
		Email:          &email,
		City:           "Berlin",
		PLZ:            "10115",
		ServiceID:      &serviceID,
		ServiceDetails: "Die Heizung im Altbau muss komplett erneuert werden.",
		Timeline:       domain.TimelineImmediate,
	}
}

func TestWebhookClient_Disabled(t *testing.T) {
	client := notify.NewWebhookClient(&config.WebhookConfig{}, zap.NewNop())

	assert.False(t, client.Enabled())

	// Deliveries are silent no-ops without a URL
	err := client.LeadCreated(context.Background(), newTestLead())
	assert.NoError(t, err)

	err = client.SendDigest(context.Background(), domain.DashboardStatsDTO{})
	assert.NoError(t, err)
}

func TestWebhookClient_LeadCreated(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := notify.NewWebhookClient(&config.WebhookConfig{URL: server.URL}, zap.NewNop())
	require.True(t, client.Enabled())

	lead := newTestLead()
	err := client.LeadCreated(context.Background(), lead)
	require.NoError(t, err)

	// The receiving automation expects snake_case field names
	assert.Equal(t, "lead.created", received["event"])
	assert.Equal(t, lead.ID.String(), received["lead_id"])
	assert.Equal(t, "Max Mustermann", received["name"])
	assert.Equal(t, "+4915112345678", received["phone"])
	assert.Equal(t, "Berlin", received["city"])
	assert.Equal(t, "10115", received["plz"])
	assert.Equal(t, lead.ServiceID.String(), received["service_id"])
	assert.Equal(t, "sofort", received["timeline"])
	assert.Equal(t, "2025-09-01T10:30:00Z", received["timestamp"])
}

func TestWebhookClient_LeadCreated_OmitsEmptyOptionals(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := notify.NewWebhookClient(&config.WebhookConfig{URL: server.URL}, zap.NewNop())

	lead := newTestLead()
	lead.Email = nil
	lead.ServiceID = nil

	err := client.LeadCreated(context.Background(), lead)
	require.NoError(t, err)

	_, hasEmail := received["email"]
	assert.False(t, hasEmail)
	_, hasService := received["service_id"]
	assert.False(t, hasService)
}

func TestWebhookClient_SendDigest(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := notify.NewWebhookClient(&config.WebhookConfig{URL: server.URL}, zap.NewNop())

	err := client.SendDigest(context.Background(), domain.DashboardStatsDTO{
		LeadsToday:      3,
		LeadsThisWeek:   12,
		ActiveCompanies: 5,
		RevenueThisWeek: 450.00,
	})
	require.NoError(t, err)

	assert.Equal(t, "stats.daily_digest", received["event"])
	assert.NotEmpty(t, received["date"])
	stats, ok := received["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), stats["leadsToday"])
}

func TestWebhookClient_EndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := notify.NewWebhookClient(&config.WebhookConfig{URL: server.URL}, zap.NewNop())

	err := client.LeadCreated(context.Background(), newTestLead())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
