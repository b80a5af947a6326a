package webpush

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKey is returned when key material is malformed or mis-sized.
	ErrInvalidKey = errors.New("invalid key material")

	// ErrInvalidSubject is returned when the VAPID subject does not use an
	// accepted URI scheme.
	ErrInvalidSubject = errors.New("invalid subject")

	// ErrPayloadTooLarge is returned when the payload does not fit the
	// available record space.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrInvalidFormat is returned when an encoded-string input is not
	// valid URL-safe base64.
	ErrInvalidFormat = errors.New("invalid base64url value")

	// ErrInvalidRecordSize is returned when the requested record size is
	// below the minimum of 18 bytes.
	ErrInvalidRecordSize = errors.New("record size too small")

	// ErrUnsupportedEncoding is returned for a content encoding other than
	// aes128gcm or aesgcm.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")

	// ErrMissingSubscription is returned when no subscription is supplied.
	ErrMissingSubscription = errors.New("subscription is required")

	// ErrMissingAudience is returned when the VAPID audience is empty.
	ErrMissingAudience = errors.New("audience is required")

	// ErrExpiryTooLong is returned when the requested token expiry exceeds
	// the maximum.
	ErrExpiryTooLong = errors.New("token expiry exceeds maximum")

	// ErrNoAuthMethod is returned when no usable VAPID key material is
	// available to authenticate the request.
	ErrNoAuthMethod = errors.New("no usable auth method")

	// ErrCryptoFailure is returned when an underlying cryptographic
	// primitive fails.
	ErrCryptoFailure = errors.New("crypto primitive failure")

	// ErrSigning is returned when token signing fails.
	ErrSigning = errors.New("token signing failed")
)

// WebPushError is implemented by all typed errors of this package.
type WebPushError interface {
	error
	WebPushError() // marker method
}

// InvalidKeyError reports malformed or mis-sized key material.
type InvalidKeyError struct {
	// Field names the offending input ("p256dh", "auth", "vapid public key", ...).
	Field string
	// Length is the decoded length in bytes, or -1 if not applicable.
	Length int
	Err    error
}

func (e *InvalidKeyError) Error() string {
	if e.Length >= 0 {
		return fmt.Sprintf("invalid key: %s (%d bytes): %v", e.Field, e.Length, e.Err)
	}
	return fmt.Sprintf("invalid key: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *InvalidKeyError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *InvalidKeyError) Is(target error) bool { return target == ErrInvalidKey }

// WebPushError implements the WebPushError interface.
func (e *InvalidKeyError) WebPushError() {}

// InvalidSubjectError reports a VAPID subject with an unsupported scheme.
type InvalidSubjectError struct {
	Subject string
}

func (e *InvalidSubjectError) Error() string {
	return fmt.Sprintf("invalid subject %q: must be an https: or mailto: URI", e.Subject)
}

// Is implements errors.Is for sentinel error matching.
func (e *InvalidSubjectError) Is(target error) bool { return target == ErrInvalidSubject }

// WebPushError implements the WebPushError interface.
func (e *InvalidSubjectError) WebPushError() {}

// PayloadTooLargeError reports a payload that exceeds the record space of
// the selected encoding.
type PayloadTooLargeError struct {
	// RecordSize is the record size in effect (0 for the aesgcm encoding).
	RecordSize uint32
	// Limit is the maximum number of payload-plus-padding bytes allowed.
	Limit int
	// Actual is the number of bytes that were requested.
	Actual int
}

func (e *PayloadTooLargeError) Error() string {
	if e.RecordSize > 0 {
		return fmt.Sprintf("payload too large: %d bytes, limit %d for record size %d", e.Actual, e.Limit, e.RecordSize)
	}
	return fmt.Sprintf("payload too large: %d bytes, limit %d", e.Actual, e.Limit)
}

// Is implements errors.Is for sentinel error matching.
func (e *PayloadTooLargeError) Is(target error) bool { return target == ErrPayloadTooLarge }

// WebPushError implements the WebPushError interface.
func (e *PayloadTooLargeError) WebPushError() {}

// FormatError reports an input string that is not valid URL-safe base64.
type FormatError struct {
	// Field names the offending input.
	Field string
	// Value is the rejected string.
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid base64url: %s %q", e.Field, e.Value)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *FormatError) Is(target error) bool { return target == ErrInvalidFormat }

// WebPushError implements the WebPushError interface.
func (e *FormatError) WebPushError() {}

// RecordSizeError reports a record size below the framing minimum.
type RecordSizeError struct {
	RecordSize uint32
	Min        uint32
}

func (e *RecordSizeError) Error() string {
	return fmt.Sprintf("record size %d below minimum %d", e.RecordSize, e.Min)
}

// Is implements errors.Is for sentinel error matching.
func (e *RecordSizeError) Is(target error) bool { return target == ErrInvalidRecordSize }

// WebPushError implements the WebPushError interface.
func (e *RecordSizeError) WebPushError() {}

// ExpiryError reports a token expiry beyond the configured maximum.
type ExpiryError struct {
	Expiry    time.Duration
	MaxExpiry time.Duration
}

func (e *ExpiryError) Error() string {
	return fmt.Sprintf("token expiry %v exceeds maximum %v", e.Expiry, e.MaxExpiry)
}

// Is implements errors.Is for sentinel error matching.
func (e *ExpiryError) Is(target error) bool { return target == ErrExpiryTooLong }

// WebPushError implements the WebPushError interface.
func (e *ExpiryError) WebPushError() {}

// CryptoError reports a failure in an underlying cryptographic primitive.
type CryptoError struct {
	// Stage names the failing step ("ecdh", "hkdf", "aead", "keygen").
	Stage string
	Err   error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("crypto failure at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *CryptoError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *CryptoError) Is(target error) bool { return target == ErrCryptoFailure }

// WebPushError implements the WebPushError interface.
func (e *CryptoError) WebPushError() {}

// SigningError reports a token signing failure.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("token signing failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *SigningError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *SigningError) Is(target error) bool { return target == ErrSigning }

// WebPushError implements the WebPushError interface.
func (e *SigningError) WebPushError() {}
