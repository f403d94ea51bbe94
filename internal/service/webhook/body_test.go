package webhook

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractWebhookID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     []byte
		want    string
		wantErr bool
	}{
		{
			name: "full payload",
			raw:  []byte(`{"webhook_id":"abc","event":"media_updated","media_id":"42"}`),
			want: "abc",
		},
		{
			name: "id only",
			raw:  []byte(`{"webhook_id":"abc"}`),
			want: "abc",
		},
		{
			name:    "missing id",
			raw:     []byte(`{"event":"media_updated"}`),
			wantErr: true,
		},
		{
			name:    "empty input",
			raw:     nil,
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     []byte("<?xml version=\"1.0\"?>"),
			wantErr: true,
		},
		{
			name:    "non-textual bytes",
			raw:     []byte{0x00, 0xff, 0xfe, 0x01},
			wantErr: true,
		},
		{
			name:    "wrong type for id",
			raw:     []byte(`{"webhook_id":42}`),
			wantErr: true,
		},
		{
			name:    "truncated json",
			raw:     []byte(`{"webhook_id":"abc"`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractWebhookID(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedBody) {
					t.Errorf("ExtractWebhookID() error = %v, want ErrMalformedBody", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractWebhookID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractWebhookID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeEventBody(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"webhook_id": "abc",
		"event": "media_deleted",
		"media_id": "42",
		"site_id": "xyz",
		"event_time": 1700000000,
		"extra_field": "ignored"
	}`)

	got, err := DecodeEventBody(raw)
	if err != nil {
		t.Fatalf("DecodeEventBody() error = %v", err)
	}

	want := &EventBody{
		WebhookID: "abc",
		Event:     EventMediaDeleted,
		MediaID:   "42",
		SiteID:    "xyz",
		EventTime: 1700000000,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeEventBody() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEventBody_MissingRequiredFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
	}{
		{
			name: "missing event",
			raw:  []byte(`{"webhook_id":"abc","media_id":"42","site_id":"xyz"}`),
		},
		{
			name: "missing media id",
			raw:  []byte(`{"webhook_id":"abc","event":"media_updated","site_id":"xyz"}`),
		},
		{
			name: "missing site id",
			raw:  []byte(`{"webhook_id":"abc","event":"media_updated","media_id":"42"}`),
		},
		{
			name: "missing webhook id",
			raw:  []byte(`{"event":"media_updated","media_id":"42","site_id":"xyz"}`),
		},
		{
			name: "not an object",
			raw:  []byte(`[1,2,3]`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := DecodeEventBody(tt.raw); !errors.Is(err, ErrMalformedBody) {
				t.Errorf("DecodeEventBody() error = %v, want ErrMalformedBody", err)
			}
		})
	}
}

func TestEventBodyTime(t *testing.T) {
	t.Parallel()

	body := EventBody{EventTime: 1700000000}
	if got := body.Time().Unix(); got != 1700000000 {
		t.Errorf("Time().Unix() = %d, want 1700000000", got)
	}
}
