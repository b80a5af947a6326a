package webpush

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlexanderSlaa/webpush/internal/crypto"
)

const (
	// DefaultTokenExpiry is the token lifetime used when none is requested.
	DefaultTokenExpiry = 12 * time.Hour
	// MaxTokenExpiry is the hard cap on token lifetime (RFC 8292 §2).
	MaxTokenExpiry = 24 * time.Hour
)

// VAPIDKeys holds a long-term P-256 signing key pair as URL-safe base64
// strings. The keys are read-only and reusable across calls.
type VAPIDKeys struct {
	// PublicKey is the 65-byte uncompressed public point, base64url.
	PublicKey string
	// PrivateKey is the 32-byte private scalar, base64url.
	PrivateKey string
}

// GenerateVAPIDKeys creates a new long-term VAPID signing key pair.
func GenerateVAPIDKeys() (*VAPIDKeys, error) {
	kp, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, &CryptoError{Stage: "keygen", Err: err}
	}

	return &VAPIDKeys{
		PublicKey:  kp.PublicKeyB64,
		PrivateKey: crypto.ToBase64URL(kp.PrivateKey),
	}, nil
}

// Validate checks that both keys are present and decode to valid P-256 key
// material. Missing keys yield ErrNoAuthMethod.
func (k *VAPIDKeys) Validate() error {
	if k == nil || k.PublicKey == "" || k.PrivateKey == "" {
		return ErrNoAuthMethod
	}
	_, _, err := k.decode()
	return err
}

// decode decodes and validates the key pair, returning the raw public point
// and a key pair usable for signing.
func (k *VAPIDKeys) decode() (publicKey []byte, pair *crypto.Keypair, err error) {
	if !crypto.IsBase64URL(k.PublicKey) {
		return nil, nil, &FormatError{Field: "vapid public key", Value: k.PublicKey}
	}
	publicKey, err = crypto.FromBase64URL(k.PublicKey)
	if err != nil {
		return nil, nil, &FormatError{Field: "vapid public key", Value: k.PublicKey, Err: err}
	}
	if err = crypto.ValidatePublicKey(publicKey); err != nil {
		return nil, nil, &InvalidKeyError{Field: "vapid public key", Length: len(publicKey), Err: err}
	}

	if !crypto.IsBase64URL(k.PrivateKey) {
		return nil, nil, &FormatError{Field: "vapid private key", Value: k.PrivateKey}
	}
	privateKey, err := crypto.FromBase64URL(k.PrivateKey)
	if err != nil {
		return nil, nil, &FormatError{Field: "vapid private key", Value: k.PrivateKey, Err: err}
	}
	pair, err = crypto.KeypairFromPrivateKey(privateKey)
	if err != nil {
		return nil, nil, &InvalidKeyError{Field: "vapid private key", Length: len(privateKey), Err: err}
	}

	return publicKey, pair, nil
}

// VAPIDHeaders carries the authentication header values for one request.
type VAPIDHeaders struct {
	// Authorization is the Authorization header value.
	Authorization string
	// CryptoKey is the "p256ecdsa=<key>" Crypto-Key fragment. Set only for
	// the aesgcm encoding; join it with the encryption "dh=" fragment using
	// a semicolon.
	CryptoKey string
}

// vapidConfig holds configuration for one signing call.
type vapidConfig struct {
	expiry    time.Duration
	maxExpiry time.Duration
	now       func() time.Time
}

// VAPIDOption configures a signing call.
type VAPIDOption func(*vapidConfig)

// WithTokenExpiry sets the token lifetime. Default: 12 hours.
func WithTokenExpiry(d time.Duration) VAPIDOption {
	return func(c *vapidConfig) {
		c.expiry = d
	}
}

// WithMaxTokenExpiry lowers the cap on token lifetime. Values above
// MaxTokenExpiry are ignored; the hard cap always applies.
func WithMaxTokenExpiry(d time.Duration) VAPIDOption {
	return func(c *vapidConfig) {
		if d > 0 && d < MaxTokenExpiry {
			c.maxExpiry = d
		}
	}
}

// WithNow sets the clock used for the expiry claim. Intended for tests.
func WithNow(now func() time.Time) VAPIDOption {
	return func(c *vapidConfig) {
		c.now = now
	}
}

// SignVAPID builds and signs a VAPID token for one push-service origin and
// formats the authentication header values for the given content encoding.
//
// The token is an ES256 JWT with claims {aud, exp, sub}. For the aes128gcm
// encoding the result is a single Authorization value of the form
// "vapid t=<token>, k=<publicKey>"; for the legacy aesgcm encoding the
// scheme is "WebPush <token>" and the public key travels in a separate
// Crypto-Key fragment.
func SignVAPID(audience, subject string, keys *VAPIDKeys, encoding ContentEncoding, opts ...VAPIDOption) (*VAPIDHeaders, error) {
	if keys == nil || keys.PublicKey == "" || keys.PrivateKey == "" {
		return nil, ErrNoAuthMethod
	}
	if audience == "" {
		return nil, ErrMissingAudience
	}
	if !strings.HasPrefix(subject, "https:") && !strings.HasPrefix(subject, "mailto:") {
		return nil, &InvalidSubjectError{Subject: subject}
	}

	cfg := vapidConfig{
		expiry:    DefaultTokenExpiry,
		maxExpiry: MaxTokenExpiry,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.expiry <= 0 {
		cfg.expiry = DefaultTokenExpiry
	}
	if cfg.expiry > cfg.maxExpiry {
		return nil, &ExpiryError{Expiry: cfg.expiry, MaxExpiry: cfg.maxExpiry}
	}

	publicKey, pair, err := keys.decode()
	if err != nil {
		return nil, err
	}

	signingKey, err := pair.ECDSAKey()
	if err != nil {
		return nil, &InvalidKeyError{Field: "vapid private key", Length: -1, Err: err}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"aud": audience,
		"exp": cfg.now().Add(cfg.expiry).Unix(),
		"sub": subject,
	})

	signed, err := token.SignedString(signingKey)
	if err != nil {
		return nil, &SigningError{Err: err}
	}

	publicKeyB64 := crypto.ToBase64URL(publicKey)

	switch encoding {
	case AES128GCM:
		return &VAPIDHeaders{
			Authorization: fmt.Sprintf("vapid t=%s, k=%s", signed, publicKeyB64),
		}, nil
	case AESGCM:
		return &VAPIDHeaders{
			Authorization: "WebPush " + signed,
			CryptoKey:     "p256ecdsa=" + publicKeyB64,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}
