package webhook

import (
	"context"
	"errors"
)

var (
	ErrUnparseableBody      = errors.New("unparseable publish request body")
	ErrUnknownWebhookID     = errors.New("unknown webhook id")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrMalformedPayload     = errors.New("malformed authenticated payload")
)

// PublishRequest carries one inbound publish request from the platform.
// Body must be the exact bytes received on the wire; the signature is
// computed over them and any re-serialization breaks verification.
type PublishRequest struct {
	Body          []byte
	Authorization string
}

type Service interface {
	// ProcessPublishRequest authenticates and parses one publish request,
	// then hands the decoded event to the notifier.
	// Returns ErrUnparseableBody if no webhook id could be extracted.
	// Returns ErrUnknownWebhookID if there is no local record for the claimed
	// id (normal under registration churn, not an attack signal).
	// Returns ErrAuthenticationFailed on any signature failure; the sub-reason
	// goes to internal diagnostics only.
	// Returns ErrMalformedPayload if the authenticated body does not decode.
	ProcessPublishRequest(ctx context.Context, req PublishRequest) (*EventBody, error)
}
