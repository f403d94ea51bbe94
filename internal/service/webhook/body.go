package webhook

import (
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
)

// Event tags the platform can deliver.
const (
	EventMediaAvailable      = "media_available"
	EventConversionsComplete = "conversions_complete"
	EventMediaUpdated        = "media_updated"
	EventMediaReuploaded     = "media_reuploaded"
	EventMediaDeleted        = "media_deleted"
)

var ErrMalformedBody = errors.New("malformed publish request body")

// EventBody is a decoded publish request payload. It is only constructed
// after the request's signature has been verified.
type EventBody struct {
	WebhookID string `json:"webhook_id"`
	Event     string `json:"event"`
	MediaID   string `json:"media_id"`
	SiteID    string `json:"site_id"`
	EventTime int64  `json:"event_time"`
}

func (b *EventBody) Time() time.Time {
	return time.Unix(b.EventTime, 0).UTC()
}

// ExtractWebhookID pulls the webhook id out of an unauthenticated body.
// It is a minimal, non-trusting parse: the id is needed to look up the
// webhook's secret before anything else about the body can be believed.
func ExtractWebhookID(raw []byte) (string, error) {
	var claim struct {
		WebhookID string `json:"webhook_id"`
	}
	if err := go_json.Unmarshal(raw, &claim); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if claim.WebhookID == "" {
		return "", fmt.Errorf("%w: missing webhook_id", ErrMalformedBody)
	}
	return claim.WebhookID, nil
}

// DecodeEventBody fully decodes a publish request body. Call only after the
// signature has been verified. Unknown fields are ignored.
func DecodeEventBody(raw []byte) (*EventBody, error) {
	var body EventBody
	if err := go_json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	for field, value := range map[string]string{
		"webhook_id": body.WebhookID,
		"event":      body.Event,
		"media_id":   body.MediaID,
		"site_id":    body.SiteID,
	} {
		if value == "" {
			return nil, fmt.Errorf("%w: missing %s", ErrMalformedBody, field)
		}
	}

	return &body, nil
}
