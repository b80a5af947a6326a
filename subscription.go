package webpush

import (
	"fmt"

	"github.com/AlexanderSlaa/webpush/internal/crypto"
)

// Keys holds the subscriber's key material as URL-safe base64 strings, as
// delivered by the browser's PushSubscription.getKey().
type Keys struct {
	// P256dh is the subscriber's P-256 public key (65-byte uncompressed
	// point, base64url).
	P256dh string `json:"p256dh"`
	// Auth is the subscriber's auth secret (at least 16 bytes, base64url).
	Auth string `json:"auth"`
}

// Subscription identifies a push endpoint and the keys needed to encrypt
// messages for it. The endpoint is carried for the caller's convenience;
// this package only consumes the keys.
type Subscription struct {
	Endpoint string `json:"endpoint"`
	Keys     Keys   `json:"keys"`
}

// Validate checks that the subscription's key material decodes to a valid
// public point and a sufficiently long auth secret.
func (s *Subscription) Validate() error {
	_, _, err := s.Keys.decode()
	return err
}

// decode decodes and validates the subscriber key material.
func (k Keys) decode() (publicKey, authSecret []byte, err error) {
	if !crypto.IsBase64URL(k.P256dh) {
		return nil, nil, &FormatError{Field: "p256dh", Value: k.P256dh}
	}
	publicKey, err = crypto.FromBase64URL(k.P256dh)
	if err != nil {
		return nil, nil, &FormatError{Field: "p256dh", Value: k.P256dh, Err: err}
	}
	if err = crypto.ValidatePublicKey(publicKey); err != nil {
		return nil, nil, &InvalidKeyError{Field: "p256dh", Length: len(publicKey), Err: err}
	}

	if !crypto.IsBase64URL(k.Auth) {
		return nil, nil, &FormatError{Field: "auth", Value: k.Auth}
	}
	authSecret, err = crypto.FromBase64URL(k.Auth)
	if err != nil {
		return nil, nil, &FormatError{Field: "auth", Value: k.Auth, Err: err}
	}
	if len(authSecret) < crypto.AuthSecretSize {
		return nil, nil, &InvalidKeyError{
			Field:  "auth",
			Length: len(authSecret),
			Err:    fmt.Errorf("auth secret must be at least %d bytes", crypto.AuthSecretSize),
		}
	}

	return publicKey, authSecret, nil
}
