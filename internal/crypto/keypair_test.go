package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestGenerateKeypair(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	if len(kp.PublicKey) != PublicKeySize {
		t.Errorf("PublicKey size = %d, want %d", len(kp.PublicKey), PublicKeySize)
	}
	if kp.PublicKey[0] != UncompressedPointPrefix {
		t.Errorf("PublicKey leading byte = 0x%02x, want 0x04", kp.PublicKey[0])
	}
	if len(kp.PrivateKey) != PrivateKeySize {
		t.Errorf("PrivateKey size = %d, want %d", len(kp.PrivateKey), PrivateKeySize)
	}

	decoded, err := FromBase64URL(kp.PublicKeyB64)
	if err != nil {
		t.Fatalf("FromBase64URL() error = %v", err)
	}
	if !bytes.Equal(decoded, kp.PublicKey) {
		t.Error("PublicKeyB64 does not decode to PublicKey")
	}
}

func TestGenerateKeypair_Uniqueness(t *testing.T) {
	kp1, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}
	kp2, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	if bytes.Equal(kp1.PublicKey, kp2.PublicKey) {
		t.Error("generated keypairs have identical public keys")
	}
	if bytes.Equal(kp1.PrivateKey, kp2.PrivateKey) {
		t.Error("generated keypairs have identical private keys")
	}
}

func TestKeypairFromPrivateKey(t *testing.T) {
	original, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	reconstructed, err := KeypairFromPrivateKey(original.PrivateKey)
	if err != nil {
		t.Fatalf("KeypairFromPrivateKey() error = %v", err)
	}

	if !bytes.Equal(original.PublicKey, reconstructed.PublicKey) {
		t.Error("reconstructed public key does not match original")
	}
	if original.PublicKeyB64 != reconstructed.PublicKeyB64 {
		t.Error("reconstructed PublicKeyB64 does not match original")
	}
}

func TestKeypairFromPrivateKey_InvalidSize(t *testing.T) {
	if _, err := KeypairFromPrivateKey(make([]byte, 31)); !errors.Is(err, ErrInvalidPrivateKeySize) {
		t.Errorf("error = %v, want ErrInvalidPrivateKeySize", err)
	}
}

func TestValidatePublicKey(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	notOnCurve := make([]byte, PublicKeySize)
	notOnCurve[0] = UncompressedPointPrefix
	notOnCurve[64] = 0x01

	badPrefix := append([]byte{}, kp.PublicKey...)
	badPrefix[0] = 0x02

	tests := []struct {
		name    string
		key     []byte
		wantErr error
	}{
		{"valid", kp.PublicKey, nil},
		{"too short", kp.PublicKey[:64], ErrInvalidPublicKeySize},
		{"too long", append(append([]byte{}, kp.PublicKey...), 0x00), ErrInvalidPublicKeySize},
		{"compressed prefix", badPrefix, ErrInvalidPublicKeyFormat},
		{"not on curve", notOnCurve, ErrInvalidPublicKeyFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePublicKey(tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePublicKey() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePublicKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePrivateKey(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	if err := ValidatePrivateKey(kp.PrivateKey); err != nil {
		t.Errorf("ValidatePrivateKey() error = %v, want nil", err)
	}
	if err := ValidatePrivateKey(make([]byte, 16)); !errors.Is(err, ErrInvalidPrivateKeySize) {
		t.Errorf("error = %v, want ErrInvalidPrivateKeySize", err)
	}
}

func TestSharedSecret_Symmetry(t *testing.T) {
	a, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}
	b, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	ab, err := a.SharedSecret(b.PublicKey)
	if err != nil {
		t.Fatalf("SharedSecret() error = %v", err)
	}
	ba, err := b.SharedSecret(a.PublicKey)
	if err != nil {
		t.Fatalf("SharedSecret() error = %v", err)
	}

	if len(ab) != SharedSecretSize {
		t.Errorf("shared secret size = %d, want %d", len(ab), SharedSecretSize)
	}
	if !bytes.Equal(ab, ba) {
		t.Error("ECDH shared secrets are not symmetric")
	}
}

func TestECDSAKey_MatchesPublicPoint(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}

	signing, err := kp.ECDSAKey()
	if err != nil {
		t.Fatalf("ECDSAKey() error = %v", err)
	}

	public, err := ECDSAPublicKey(kp.PublicKey)
	if err != nil {
		t.Fatalf("ECDSAPublicKey() error = %v", err)
	}

	if signing.PublicKey.X.Cmp(public.X) != 0 || signing.PublicKey.Y.Cmp(public.Y) != 0 {
		t.Error("ECDSA public key derived from scalar does not match the encoded point")
	}
}

// repeatReader yields the same byte forever, making key and salt
// generation deterministic.
type repeatReader byte

func (r repeatReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r)
	}
	return len(p), nil
}

func TestSetRandReaderForTesting(t *testing.T) {
	restore := SetRandReaderForTesting(repeatReader(0x42))
	defer restore()

	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}
	if !bytes.Equal(salt, bytes.Repeat([]byte{0x42}, SaltSize)) {
		t.Errorf("salt = %x, want repeated 0x42", salt)
	}

	kp1, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}
	kp2, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error = %v", err)
	}
	if !bytes.Equal(kp1.PrivateKey, kp2.PrivateKey) {
		t.Error("injected reader did not make key generation deterministic")
	}
}

func TestGenerateSalt(t *testing.T) {
	s1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}
	s2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}

	if len(s1) != SaltSize {
		t.Errorf("salt size = %d, want %d", len(s1), SaltSize)
	}
	if bytes.Equal(s1, s2) {
		t.Error("two generated salts are identical")
	}
}
