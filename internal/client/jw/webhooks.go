package jw

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type WebhookMetadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	WebhookURL  string   `json:"webhook_url"`
	Events      []string `json:"events"`
	SiteIDs     []string `json:"site_ids"`
}

type Webhook struct {
	ID       string          `json:"id"`
	Metadata WebhookMetadata `json:"metadata"`
	Created  time.Time       `json:"created"`

	// Secret is only returned by Create; it cannot be fetched again.
	Secret string `json:"secret,omitempty"`
}

type WebhookService interface {
	Create(ctx context.Context, metadata WebhookMetadata) (*Webhook, error)
	Get(ctx context.Context, id string) (*Webhook, error)

	// List returns every webhook registered for the account, paging through
	// the API as needed.
	List(ctx context.Context) ([]Webhook, error)

	Delete(ctx context.Context, id string) error
}

type webhookService struct {
	client *Client
}

const webhooksRoute = "/v2/webhooks/"

const listPageLength = 100

func (s *webhookService) Create(ctx context.Context, metadata WebhookMetadata) (*Webhook, error) {
	payload := struct {
		Metadata WebhookMetadata `json:"metadata"`
	}{Metadata: metadata}

	var webhook Webhook
	if err := s.client.do(ctx, http.MethodPost, webhooksRoute, nil, payload, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

func (s *webhookService) Get(ctx context.Context, id string) (*Webhook, error) {
	var webhook Webhook
	if err := s.client.do(ctx, http.MethodGet, webhooksRoute+id+"/", nil, nil, &webhook); err != nil {
		return nil, err
	}
	return &webhook, nil
}

func (s *webhookService) List(ctx context.Context) ([]Webhook, error) {
	var webhooks []Webhook

	for page := 1; ; page++ {
		query := make(url.Values)
		query.Set("page", strconv.Itoa(page))
		query.Set("page_length", strconv.Itoa(listPageLength))

		var resp struct {
			Webhooks   []Webhook `json:"webhooks"`
			Total      int       `json:"total"`
			Page       int       `json:"page"`
			PageLength int       `json:"page_length"`
		}
		if err := s.client.do(ctx, http.MethodGet, webhooksRoute, query, nil, &resp); err != nil {
			return nil, err
		}

		webhooks = append(webhooks, resp.Webhooks...)

		if len(webhooks) >= resp.Total || len(resp.Webhooks) == 0 {
			return webhooks, nil
		}
	}
}

func (s *webhookService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, webhooksRoute+id+"/", nil, nil, nil)
}
