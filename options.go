package webpush

import "github.com/AlexanderSlaa/webpush/internal/crypto"

// ContentEncoding selects the encryption scheme and the matching header
// formats.
type ContentEncoding string

const (
	// AES128GCM is the standardized encoding (RFC 8188/8291).
	AES128GCM ContentEncoding = "aes128gcm"
	// AESGCM is the legacy pre-standard encoding. Its derivation labels and
	// header layout differ from AES128GCM and are not interchangeable.
	AESGCM ContentEncoding = "aesgcm"
)

const (
	// DefaultRecordSize is the record size used when none is requested.
	DefaultRecordSize uint32 = crypto.DefaultRecordSize
	// MinRecordSize is the smallest valid record size: one data byte, the
	// delimiter, and the authentication tag.
	MinRecordSize uint32 = crypto.MinRecordSize
)

// encryptConfig holds configuration for one encryption call.
type encryptConfig struct {
	recordSize         uint32
	multipleRecords    bool
	finalRecordPadding int
	contentEncoding    ContentEncoding
}

func newEncryptConfig() encryptConfig {
	return encryptConfig{
		recordSize:      DefaultRecordSize,
		contentEncoding: AES128GCM,
	}
}

// EncryptOption configures an encryption call.
type EncryptOption func(*encryptConfig)

// WithRecordSize sets the maximum record size (tag included) for the
// aes128gcm encoding. Must be at least MinRecordSize. Default: 4096.
func WithRecordSize(rs uint32) EncryptOption {
	return func(c *encryptConfig) {
		c.recordSize = rs
	}
}

// WithMultipleRecords allows the payload to span more than one record. By
// default the whole payload must fit a single record and a larger payload
// fails with PayloadTooLargeError.
func WithMultipleRecords(allow bool) EncryptOption {
	return func(c *encryptConfig) {
		c.multipleRecords = allow
	}
}

// WithFinalRecordPadding appends n zero bytes after the final record's
// delimiter, hiding the exact payload length. Default: 0.
func WithFinalRecordPadding(n int) EncryptOption {
	return func(c *encryptConfig) {
		c.finalRecordPadding = n
	}
}

// WithContentEncoding selects the content encoding. Default: AES128GCM.
func WithContentEncoding(encoding ContentEncoding) EncryptOption {
	return func(c *encryptConfig) {
		c.contentEncoding = encoding
	}
}
