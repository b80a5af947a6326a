package crypto

import "errors"

var (
	// ErrInvalidPublicKeySize is returned when a public key is not 65 bytes.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidPublicKeyFormat is returned when a public key is not an
	// uncompressed point or does not lie on the P-256 curve.
	ErrInvalidPublicKeyFormat = errors.New("invalid public key format")

	// ErrInvalidPrivateKeySize is returned when a private key is not 32 bytes.
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")

	// ErrInvalidPrivateKeyFormat is returned when a private scalar is out of
	// the curve order's range.
	ErrInvalidPrivateKeyFormat = errors.New("invalid private key format")

	// ErrInvalidAuthSecretSize is returned when the subscriber auth secret
	// is shorter than 16 bytes.
	ErrInvalidAuthSecretSize = errors.New("invalid auth secret size")

	// ErrInvalidSaltSize is returned when an explicitly supplied salt is not
	// 16 bytes.
	ErrInvalidSaltSize = errors.New("invalid salt size")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrRecordSizeTooSmall is returned when the requested record size
	// cannot hold one data byte, the delimiter, and the tag.
	ErrRecordSizeTooSmall = errors.New("record size too small")

	// ErrPayloadTooLarge is returned when the payload (plus delimiter and
	// padding) does not fit the available record space.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrInvalidBody is returned when an aes128gcm body is malformed.
	ErrInvalidBody = errors.New("invalid message body")

	// ErrDecryptionFailed is returned when AEAD authentication fails or a
	// record's delimiter byte is wrong.
	ErrDecryptionFailed = errors.New("decryption failed")
)
