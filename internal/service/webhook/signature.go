package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// SignatureScheme prefixes the digest in the Authorization header.
// header format: "HMAC-SHA256 " + base64(HMAC-SHA256(body, secret))
const SignatureScheme = "HMAC-SHA256"

var (
	ErrMissingAuthorization   = errors.New("missing authorization header")
	ErrMalformedAuthorization = errors.New("malformed authorization header")
	ErrEmptySecret            = errors.New("empty webhook secret")
	ErrSignatureMismatch      = errors.New("signature mismatch")
)

// VerifySignature checks the Authorization header of a publish request
// against the digest of the raw body keyed by the webhook's secret.
// The caller must reject identically for every returned error; the distinct
// sentinels exist for internal diagnostics only.
func VerifySignature(authorization, secret string, body []byte) error {
	if authorization == "" {
		return ErrMissingAuthorization
	}
	if secret == "" {
		return ErrEmptySecret
	}

	scheme, digest, ok := strings.Cut(authorization, " ")
	if !ok || !strings.EqualFold(scheme, SignatureScheme) {
		return ErrMalformedAuthorization
	}
	digest = strings.TrimSpace(digest)
	if digest == "" {
		return ErrMalformedAuthorization
	}

	if !hmac.Equal([]byte(computeDigest(secret, body)), []byte(digest)) {
		return ErrSignatureMismatch
	}
	return nil
}

// Sign produces the Authorization header value the platform would send for
// body. Used by tests and local delivery tooling.
func Sign(secret string, body []byte) string {
	return SignatureScheme + " " + computeDigest(secret, body)
}

func computeDigest(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
