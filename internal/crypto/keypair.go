package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// randReader is the random source used for key and salt generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func reader() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// Keypair represents a P-256 key pair. It serves both per-message ephemeral
// agreement keys and long-term signing keys.
type Keypair struct {
	// PublicKey is the uncompressed public point (65 bytes, leading 0x04).
	PublicKey []byte
	// PrivateKey is the raw private scalar (32 bytes).
	PrivateKey []byte
	// PublicKeyB64 is the public key encoded as URL-safe base64.
	PublicKeyB64 string

	ecdhKey *ecdh.PrivateKey
}

// GenerateKeypair creates a new P-256 key pair.
func GenerateKeypair() (*Keypair, error) {
	key, err := ecdh.P256().GenerateKey(reader())
	if err != nil {
		return nil, fmt.Errorf("generate P-256 key: %w", err)
	}

	pub := key.PublicKey().Bytes()
	return &Keypair{
		PublicKey:    pub,
		PrivateKey:   key.Bytes(),
		PublicKeyB64: ToBase64URL(pub),
		ecdhKey:      key,
	}, nil
}

// KeypairFromPrivateKey reconstructs a key pair from a raw 32-byte scalar.
// The public key is recomputed from the scalar.
func KeypairFromPrivateKey(privateKey []byte) (*Keypair, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, ErrInvalidPrivateKeySize
	}

	key, err := ecdh.P256().NewPrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKeyFormat, err)
	}

	pub := key.PublicKey().Bytes()
	return &Keypair{
		PublicKey:    pub,
		PrivateKey:   key.Bytes(),
		PublicKeyB64: ToBase64URL(pub),
		ecdhKey:      key,
	}, nil
}

// ValidatePublicKey checks that publicKey is a 65-byte uncompressed point on
// the P-256 curve.
func ValidatePublicKey(publicKey []byte) error {
	if len(publicKey) != PublicKeySize {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidPublicKeySize, len(publicKey), PublicKeySize)
	}
	if publicKey[0] != UncompressedPointPrefix {
		return fmt.Errorf("%w: leading byte 0x%02x, want 0x%02x", ErrInvalidPublicKeyFormat, publicKey[0], UncompressedPointPrefix)
	}
	if _, err := ecdh.P256().NewPublicKey(publicKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKeyFormat, err)
	}
	return nil
}

// ValidatePrivateKey checks that privateKey is a valid 32-byte P-256 scalar.
func ValidatePrivateKey(privateKey []byte) error {
	if len(privateKey) != PrivateKeySize {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidPrivateKeySize, len(privateKey), PrivateKeySize)
	}
	if _, err := ecdh.P256().NewPrivateKey(privateKey); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPrivateKeyFormat, err)
	}
	return nil
}

// SharedSecret computes the ECDH shared secret with a peer's uncompressed
// public point.
func (k *Keypair) SharedSecret(peerPublicKey []byte) ([]byte, error) {
	if err := ValidatePublicKey(peerPublicKey); err != nil {
		return nil, err
	}

	pub, err := ecdh.P256().NewPublicKey(peerPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKeyFormat, err)
	}

	if k.ecdhKey == nil {
		key, err := ecdh.P256().NewPrivateKey(k.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKeyFormat, err)
		}
		k.ecdhKey = key
	}

	return k.ecdhKey.ECDH(pub)
}

// ECDSAKey converts the key pair to an ECDSA private key for ES256 signing.
func (k *Keypair) ECDSAKey() (*ecdsa.PrivateKey, error) {
	if err := ValidatePrivateKey(k.PrivateKey); err != nil {
		return nil, err
	}

	curve := elliptic.P256()
	x, y := curve.ScalarBaseMult(k.PrivateKey)

	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve, X: x, Y: y},
		D:         new(big.Int).SetBytes(k.PrivateKey),
	}, nil
}

// ECDSAPublicKey converts a 65-byte uncompressed point to an ECDSA public
// key for ES256 verification.
func ECDSAPublicKey(publicKey []byte) (*ecdsa.PublicKey, error) {
	if err := ValidatePublicKey(publicKey); err != nil {
		return nil, err
	}

	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(publicKey[1:33]),
		Y:     new(big.Int).SetBytes(publicKey[33:]),
	}, nil
}

// GenerateSalt creates a fresh 16-byte random salt.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(reader(), salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}
