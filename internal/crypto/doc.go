// Package crypto implements the cryptographic engine for Web Push message
// encryption and the key material used for sender authentication.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - ECDH over NIST P-256: key agreement between a per-message ephemeral
//     key pair and the subscriber's key pair.
//
//   - HKDF-SHA-256 (RFC 5869): key derivation from the ECDH shared secret
//     with the label layouts fixed by RFC 8291 (aes128gcm) and
//     draft-ietf-httpbis-encryption-encoding-03 (aesgcm).
//
//   - AES-128-GCM: authenticated encryption of the framed plaintext
//     records. Each record carries a 16-byte authentication tag.
//
// # Content Encodings
//
// Two encodings are supported, and their derivation labels are NOT
// interchangeable:
//
//   - aes128gcm (RFC 8188/8291): the body is self-describing. A binary
//     header (salt, record size, ephemeral public key) is followed by one
//     or more AEAD records. Each record's plaintext ends in a delimiter
//     byte: 0x01 for non-final records, 0x02 for the final record,
//     optionally followed by zero padding.
//
//   - aesgcm (pre-standard draft): a single AEAD record whose plaintext is
//     prefixed with a two-byte padding length. Salt and ephemeral public
//     key are not embedded; the caller transmits them in separate headers.
//
// # Security Model
//
//   - Confidentiality: only the holder of the subscriber's private key can
//     decrypt a message.
//   - Integrity: tampering with any record causes decryption to fail.
//   - Forward secrecy: every message uses a fresh ephemeral key pair and a
//     fresh random salt; no secret survives the call.
//
// AES-GCM nonces are derived as the nonce base XOR the big-endian 96-bit
// record counter, so a (key, nonce) pair is never reused within a message,
// and the content-encryption key is never reused across messages.
//
// # Determinism
//
// The *WithKeys variants accept an explicit salt and ephemeral key pair and
// are fully deterministic. They exist for known-answer tests and
// cross-implementation vectors; production callers use the randomized
// wrappers.
package crypto
