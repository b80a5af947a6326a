package crypto

import (
	"encoding/binary"
	"fmt"
)

// LegacyMessage is the output of the aesgcm encoding. The salt and ephemeral
// public key are not embedded in the ciphertext; the caller transmits them in
// the Encryption and Crypto-Key headers.
type LegacyMessage struct {
	// Ciphertext is the single AEAD record: ciphertext || tag(16).
	Ciphertext []byte
	// Salt is the 16-byte salt used for key derivation.
	Salt []byte
	// PublicKey is the sender's ephemeral public point (65 bytes).
	PublicKey []byte
}

// EncryptAESGCM encrypts plaintext using the legacy aesgcm content encoding
// (draft-ietf-httpbis-encryption-encoding-03). A fresh salt and ephemeral
// key pair are drawn from the random source.
func EncryptAESGCM(plaintext, subscriberPublicKey, authSecret []byte) (*LegacyMessage, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}

	ephemeral, err := GenerateKeypair()
	if err != nil {
		return nil, err
	}

	return EncryptAESGCMWithKeys(plaintext, subscriberPublicKey, authSecret, salt, ephemeral)
}

// EncryptAESGCMWithKeys is the deterministic core of EncryptAESGCM. The
// caller supplies the salt and ephemeral key pair explicitly.
func EncryptAESGCMWithKeys(plaintext, subscriberPublicKey, authSecret, salt []byte, ephemeral *Keypair) (*LegacyMessage, error) {
	if err := ValidatePublicKey(subscriberPublicKey); err != nil {
		return nil, err
	}
	if len(authSecret) < AuthSecretSize {
		return nil, fmt.Errorf("%w: got %d, want at least %d", ErrInvalidAuthSecretSize, len(authSecret), AuthSecretSize)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSaltSize, len(salt), SaltSize)
	}
	if len(plaintext) > LegacyMaxPayloadSize {
		return nil, fmt.Errorf("%w: payload %d bytes exceeds %d for the aesgcm encoding",
			ErrPayloadTooLarge, len(plaintext), LegacyMaxPayloadSize)
	}

	ecdhSecret, err := ephemeral.SharedSecret(subscriberPublicKey)
	if err != nil {
		return nil, err
	}

	cek, nonce, err := aesgcmSchedule(ecdhSecret, subscriberPublicKey, ephemeral.PublicKey, authSecret, salt)
	if err != nil {
		return nil, err
	}

	// Record: pad length (2 bytes, BE, zero) || payload.
	record := make([]byte, 2+len(plaintext))
	copy(record[2:], plaintext)

	ciphertext, err := sealAESGCM(cek, nonce, record)
	if err != nil {
		return nil, err
	}

	return &LegacyMessage{
		Ciphertext: ciphertext,
		Salt:       salt,
		PublicKey:  ephemeral.PublicKey,
	}, nil
}

// DecryptAESGCM decrypts an aesgcm message with the subscriber's private
// key, reversing EncryptAESGCM.
func DecryptAESGCM(msg *LegacyMessage, subscriberPrivateKey, authSecret []byte) ([]byte, error) {
	subscriber, err := KeypairFromPrivateKey(subscriberPrivateKey)
	if err != nil {
		return nil, err
	}

	ecdhSecret, err := subscriber.SharedSecret(msg.PublicKey)
	if err != nil {
		return nil, err
	}

	cek, nonce, err := aesgcmSchedule(ecdhSecret, subscriber.PublicKey, msg.PublicKey, authSecret, msg.Salt)
	if err != nil {
		return nil, err
	}

	record, err := openAESGCM(cek, nonce, msg.Ciphertext)
	if err != nil {
		return nil, err
	}

	if len(record) < 2 {
		return nil, fmt.Errorf("%w: record too short for pad prefix", ErrDecryptionFailed)
	}
	padLen := int(binary.BigEndian.Uint16(record))
	if padLen > len(record)-2 {
		return nil, fmt.Errorf("%w: pad length %d exceeds record", ErrDecryptionFailed, padLen)
	}

	return record[2+padLen:], nil
}

// aesgcmSchedule derives the content-encryption key and nonce for the legacy
// aesgcm encoding. The label layout differs from aes128gcm: the key
// agreement context (with length-prefixed public keys) is appended to both
// infos, and the PRK extraction is labeled separately.
func aesgcmSchedule(ecdhSecret, subscriberPublicKey, senderPublicKey, authSecret, salt []byte) (cek, nonce []byte, err error) {
	prk, err := DeriveKey(ecdhSecret, authSecret, infoAuth, SharedSecretSize)
	if err != nil {
		return nil, nil, err
	}

	context := legacyContext(subscriberPublicKey, senderPublicKey)

	cekInfo := append(append([]byte{}, infoAESGCM...), context...)
	cek, err = DeriveKey(prk, salt, cekInfo, KeySize)
	if err != nil {
		return nil, nil, err
	}

	nonceInfo := append(append([]byte{}, infoNonce...), context...)
	nonce, err = DeriveKey(prk, salt, nonceInfo, NonceSize)
	if err != nil {
		return nil, nil, err
	}

	return cek, nonce, nil
}

// legacyContext builds the aesgcm key-agreement context:
// "P-256" || 0x00 || len(ua_public) || ua_public || len(as_public) || as_public,
// with both lengths as big-endian uint16.
func legacyContext(subscriberPublicKey, senderPublicKey []byte) []byte {
	context := make([]byte, 0, len(labelP256)+2+PublicKeySize+2+PublicKeySize)
	context = append(context, labelP256...)
	context = binary.BigEndian.AppendUint16(context, uint16(len(subscriberPublicKey)))
	context = append(context, subscriberPublicKey...)
	context = binary.BigEndian.AppendUint16(context, uint16(len(senderPublicKey)))
	context = append(context, senderPublicKey...)
	return context
}
