package crypto

const (
	// PublicKeySize is the size of an uncompressed P-256 public key in bytes.
	PublicKeySize = 65
	// PrivateKeySize is the size of a P-256 private scalar in bytes.
	PrivateKeySize = 32
	// SharedSecretSize is the size of the P-256 ECDH shared secret in bytes.
	SharedSecretSize = 32

	// AuthSecretSize is the minimum size of the subscriber auth secret in bytes.
	AuthSecretSize = 16
	// SaltSize is the size of the per-message random salt in bytes.
	SaltSize = 16

	// KeySize is the size of an AES-128 content-encryption key in bytes.
	KeySize = 16
	// NonceSize is the size of an AES-GCM nonce in bytes.
	NonceSize = 12
	// TagSize is the size of an AES-GCM authentication tag in bytes.
	TagSize = 16

	// UncompressedPointPrefix is the leading byte of an uncompressed point.
	UncompressedPointPrefix = 0x04

	// MinRecordSize is the smallest valid aes128gcm record size: one byte of
	// data, one delimiter byte, and the authentication tag.
	MinRecordSize = 18
	// DefaultRecordSize is the record size used when the caller does not
	// request one.
	DefaultRecordSize = 4096

	// HeaderSize is the size of the aes128gcm body header:
	// salt(16) || rs(4) || idlen(1) || ephemeral public key(65).
	HeaderSize = SaltSize + 4 + 1 + PublicKeySize

	// recordDelimiter terminates the plaintext of every non-final record.
	recordDelimiter = 0x01
	// finalRecordDelimiter terminates the plaintext of the final record.
	finalRecordDelimiter = 0x02

	// LegacyMaxPayloadSize is the largest payload the aesgcm encoding
	// accepts: 4096 bytes of record space minus the two-byte pad prefix and
	// the authentication tag.
	LegacyMaxPayloadSize = 4096 - 2 - TagSize
)

// Derivation labels. The aes128gcm and aesgcm layouts differ byte-for-byte
// and must never be mixed.
var (
	// infoWebPush prefixes the IKM info for aes128gcm (RFC 8291 §3.3).
	infoWebPush = []byte("WebPush: info\x00")
	// infoAES128GCM is the content-encryption-key info for aes128gcm.
	infoAES128GCM = []byte("Content-Encoding: aes128gcm\x00")
	// infoNonce is the nonce info for both encodings; for aesgcm the
	// key-agreement context is appended.
	infoNonce = []byte("Content-Encoding: nonce\x00")
	// infoAuth is the PRK info for the legacy aesgcm encoding.
	infoAuth = []byte("Content-Encoding: auth\x00")
	// infoAESGCM prefixes the content-encryption-key info for aesgcm.
	infoAESGCM = []byte("Content-Encoding: aesgcm\x00")
	// labelP256 prefixes the legacy key-agreement context.
	labelP256 = []byte("P-256\x00")
)
