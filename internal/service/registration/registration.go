package registration

import (
	"context"
	"fmt"

	"github.com/donut/jw-webhooks/internal/storage"
)

type Service interface {
	// Register creates a webhook at the platform for the given event tags and
	// durably records its id and secret before returning.
	Register(ctx context.Context, events []string) (storage.HookRecord, error)

	// Unregister deletes the webhook at the platform and locally.
	// Unregistering an id that is already gone succeeds.
	Unregister(ctx context.Context, id string) error

	// Sync reconciles local records and remote webhooks against the desired
	// event tags, registering a fresh webhook if none matches. Returns nil
	// when events is empty and everything has been unregistered.
	Sync(ctx context.Context, events []string) (*storage.HookRecord, error)
}

// OrphanedRemoteError reports a webhook that was created at the platform but
// whose secret could not be persisted locally. The remote subscription is
// live and every delivery for it will be unauthenticatable until an operator
// deletes it or re-syncs, so callers must treat this as fatal.
type OrphanedRemoteError struct {
	WebhookID string
	Err       error
}

func (e *OrphanedRemoteError) Error() string {
	return fmt.Sprintf("webhook %s created at platform but not recorded locally: %v", e.WebhookID, e.Err)
}

func (e *OrphanedRemoteError) Unwrap() error { return e.Err }
