package webpush

import (
	"errors"
	"fmt"

	"github.com/AlexanderSlaa/webpush/internal/crypto"
)

// EncryptResult carries the encrypted body and the encoding metadata the
// caller needs to assemble the push request.
type EncryptResult struct {
	// Body is the request body: the full self-describing aes128gcm body, or
	// the bare ciphertext for the aesgcm encoding.
	Body []byte
	// ContentEncoding is the Content-Encoding header value implied by Body.
	ContentEncoding ContentEncoding
	// Salt is the key-derivation salt. Set only for the aesgcm encoding,
	// where it travels in the Encryption header; for aes128gcm it is
	// embedded in Body.
	Salt []byte
	// PublicKey is the sender's ephemeral public key. Set only for the
	// aesgcm encoding, where it travels in the Crypto-Key header.
	PublicKey []byte
}

// ContentLength returns the Content-Length value implied by the body.
func (r *EncryptResult) ContentLength() int { return len(r.Body) }

// SaltHeader returns the "salt=<base64url>" fragment for the aesgcm
// Encryption header, or an empty string for the aes128gcm encoding.
func (r *EncryptResult) SaltHeader() string {
	if len(r.Salt) == 0 {
		return ""
	}
	return "salt=" + crypto.ToBase64URL(r.Salt)
}

// DHHeader returns the "dh=<base64url>" fragment for the aesgcm Crypto-Key
// header, or an empty string for the aes128gcm encoding. The fragment is
// meant to be joined with the "p256ecdsa=" fragment from VAPID signing using
// a semicolon.
func (r *EncryptResult) DHHeader() string {
	if len(r.PublicKey) == 0 {
		return ""
	}
	return "dh=" + crypto.ToBase64URL(r.PublicKey)
}

// Encrypt encrypts a payload for a subscriber. The default configuration
// produces a single-record aes128gcm body with a 4096-byte record size.
//
// Every call draws a fresh salt and ephemeral key pair, so two calls with
// identical inputs produce different bodies.
func Encrypt(payload Payload, sub *Subscription, opts ...EncryptOption) (*EncryptResult, error) {
	if sub == nil {
		return nil, ErrMissingSubscription
	}

	cfg := newEncryptConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.recordSize < MinRecordSize {
		return nil, &RecordSizeError{RecordSize: cfg.recordSize, Min: MinRecordSize}
	}
	if cfg.finalRecordPadding < 0 {
		return nil, fmt.Errorf("final record padding must be non-negative, got %d", cfg.finalRecordPadding)
	}

	publicKey, authSecret, err := sub.Keys.decode()
	if err != nil {
		return nil, err
	}

	switch cfg.contentEncoding {
	case AES128GCM:
		return encryptAES128GCM(payload, publicKey, authSecret, cfg)
	case AESGCM:
		return encryptAESGCM(payload, publicKey, authSecret, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, cfg.contentEncoding)
	}
}

func encryptAES128GCM(payload Payload, publicKey, authSecret []byte, cfg encryptConfig) (*EncryptResult, error) {
	limit := int(cfg.recordSize) - crypto.TagSize - 1
	if !cfg.multipleRecords && payload.Len()+cfg.finalRecordPadding > limit {
		return nil, &PayloadTooLargeError{
			RecordSize: cfg.recordSize,
			Limit:      limit,
			Actual:     payload.Len() + cfg.finalRecordPadding,
		}
	}

	body, err := crypto.EncryptAES128GCM(payload.Bytes(), publicKey, authSecret, crypto.Options{
		RecordSize:         cfg.recordSize,
		MultipleRecords:    cfg.multipleRecords,
		FinalRecordPadding: cfg.finalRecordPadding,
	})
	if err != nil {
		return nil, wrapCryptoError(err, cfg.recordSize, payload.Len()+cfg.finalRecordPadding)
	}

	return &EncryptResult{
		Body:            body,
		ContentEncoding: AES128GCM,
	}, nil
}

func encryptAESGCM(payload Payload, publicKey, authSecret []byte, cfg encryptConfig) (*EncryptResult, error) {
	if payload.Len() > crypto.LegacyMaxPayloadSize {
		return nil, &PayloadTooLargeError{
			Limit:  crypto.LegacyMaxPayloadSize,
			Actual: payload.Len(),
		}
	}

	msg, err := crypto.EncryptAESGCM(payload.Bytes(), publicKey, authSecret)
	if err != nil {
		return nil, wrapCryptoError(err, 0, payload.Len())
	}

	return &EncryptResult{
		Body:            msg.Ciphertext,
		ContentEncoding: AESGCM,
		Salt:            msg.Salt,
		PublicKey:       msg.PublicKey,
	}, nil
}

// wrapCryptoError converts engine errors to the package's typed errors.
func wrapCryptoError(err error, recordSize uint32, actual int) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, crypto.ErrPayloadTooLarge):
		limit := 0
		if recordSize > 0 {
			limit = int(recordSize) - crypto.TagSize - 1
		}
		return &PayloadTooLargeError{RecordSize: recordSize, Limit: limit, Actual: actual}
	case errors.Is(err, crypto.ErrInvalidPublicKeySize),
		errors.Is(err, crypto.ErrInvalidPublicKeyFormat):
		return &InvalidKeyError{Field: "p256dh", Length: -1, Err: err}
	case errors.Is(err, crypto.ErrInvalidAuthSecretSize):
		return &InvalidKeyError{Field: "auth", Length: -1, Err: err}
	default:
		return &CryptoError{Stage: "encrypt", Err: err}
	}
}
