package crypto

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Options controls the aes128gcm record framing.
type Options struct {
	// RecordSize is the maximum size of one record, tag included.
	RecordSize uint32
	// MultipleRecords allows the payload to span more than one record.
	MultipleRecords bool
	// FinalRecordPadding is the number of zero bytes appended after the
	// final record's delimiter.
	FinalRecordPadding int
}

// EncryptAES128GCM encrypts plaintext for a subscriber using the aes128gcm
// content encoding (RFC 8188 framing, RFC 8291 key schedule). A fresh salt
// and ephemeral key pair are drawn from the random source; the returned body
// is self-describing.
func EncryptAES128GCM(plaintext, subscriberPublicKey, authSecret []byte, opts Options) ([]byte, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}

	ephemeral, err := GenerateKeypair()
	if err != nil {
		return nil, err
	}

	return EncryptAES128GCMWithKeys(plaintext, subscriberPublicKey, authSecret, salt, ephemeral, opts)
}

// EncryptAES128GCMWithKeys is the deterministic core of EncryptAES128GCM.
// The caller supplies the salt and ephemeral key pair explicitly; identical
// inputs produce an identical body.
func EncryptAES128GCMWithKeys(plaintext, subscriberPublicKey, authSecret, salt []byte, ephemeral *Keypair, opts Options) ([]byte, error) {
	rs := opts.RecordSize
	if rs == 0 {
		rs = DefaultRecordSize
	}
	if rs < MinRecordSize {
		return nil, fmt.Errorf("%w: got %d, want at least %d", ErrRecordSizeTooSmall, rs, MinRecordSize)
	}
	if opts.FinalRecordPadding < 0 {
		return nil, fmt.Errorf("invalid final record padding %d", opts.FinalRecordPadding)
	}
	if err := ValidatePublicKey(subscriberPublicKey); err != nil {
		return nil, err
	}
	if len(authSecret) < AuthSecretSize {
		return nil, fmt.Errorf("%w: got %d, want at least %d", ErrInvalidAuthSecretSize, len(authSecret), AuthSecretSize)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSaltSize, len(salt), SaltSize)
	}

	// Maximum plaintext per record: the delimiter byte and the tag must fit.
	maxChunk := int(rs) - TagSize - 1

	if !opts.MultipleRecords && len(plaintext)+opts.FinalRecordPadding > maxChunk {
		return nil, fmt.Errorf("%w: payload %d bytes plus %d padding exceeds %d for record size %d",
			ErrPayloadTooLarge, len(plaintext), opts.FinalRecordPadding, maxChunk, rs)
	}

	ecdhSecret, err := ephemeral.SharedSecret(subscriberPublicKey)
	if err != nil {
		return nil, err
	}

	cek, nonceBase, err := aes128gcmSchedule(ecdhSecret, subscriberPublicKey, ephemeral.PublicKey, authSecret, salt)
	if err != nil {
		return nil, err
	}

	records := (len(plaintext) + maxChunk - 1) / maxChunk
	if records == 0 {
		records = 1
	}

	lastChunk := len(plaintext) - (records-1)*maxChunk
	if lastChunk+opts.FinalRecordPadding > maxChunk {
		return nil, fmt.Errorf("%w: final record %d bytes plus %d padding exceeds %d for record size %d",
			ErrPayloadTooLarge, lastChunk, opts.FinalRecordPadding, maxChunk, rs)
	}

	var body bytes.Buffer
	body.Grow(HeaderSize + records*int(rs))

	// Header: salt(16) || rs(4, BE) || idlen(1) || ephemeral public key(65).
	body.Write(salt)
	if err := binary.Write(&body, binary.BigEndian, rs); err != nil {
		return nil, err
	}
	body.WriteByte(PublicKeySize)
	body.Write(ephemeral.PublicKey)

	for i := 0; i < records; i++ {
		start := i * maxChunk
		end := start + maxChunk
		if end > len(plaintext) {
			end = len(plaintext)
		}

		record := make([]byte, 0, maxChunk+1+opts.FinalRecordPadding)
		record = append(record, plaintext[start:end]...)
		if i == records-1 {
			record = append(record, finalRecordDelimiter)
			record = append(record, make([]byte, opts.FinalRecordPadding)...)
		} else {
			record = append(record, recordDelimiter)
		}

		sealed, err := sealAESGCM(cek, recordNonce(nonceBase, uint64(i)), record)
		if err != nil {
			return nil, err
		}
		body.Write(sealed)
	}

	return body.Bytes(), nil
}

// DecryptAES128GCM decrypts an aes128gcm body with the subscriber's private
// key, reversing EncryptAES128GCM. The body header supplies the salt, record
// size, and sender public key.
func DecryptAES128GCM(body, subscriberPrivateKey, authSecret []byte) ([]byte, error) {
	if len(body) < HeaderSize+TagSize+1 {
		return nil, fmt.Errorf("%w: %d bytes is below the minimum of %d", ErrInvalidBody, len(body), HeaderSize+TagSize+1)
	}

	salt := body[:SaltSize]
	rs := binary.BigEndian.Uint32(body[SaltSize : SaltSize+4])
	if rs < MinRecordSize {
		return nil, fmt.Errorf("%w: record size %d", ErrInvalidBody, rs)
	}
	if body[SaltSize+4] != PublicKeySize {
		return nil, fmt.Errorf("%w: key id length %d, want %d", ErrInvalidBody, body[SaltSize+4], PublicKeySize)
	}
	senderPublicKey := body[SaltSize+5 : HeaderSize]

	subscriber, err := KeypairFromPrivateKey(subscriberPrivateKey)
	if err != nil {
		return nil, err
	}

	ecdhSecret, err := subscriber.SharedSecret(senderPublicKey)
	if err != nil {
		return nil, err
	}

	cek, nonceBase, err := aes128gcmSchedule(ecdhSecret, subscriber.PublicKey, senderPublicKey, authSecret, salt)
	if err != nil {
		return nil, err
	}

	var plaintext []byte
	remaining := body[HeaderSize:]
	for i := 0; len(remaining) > 0; i++ {
		recordLen := int(rs)
		last := len(remaining) <= recordLen
		if last {
			recordLen = len(remaining)
		}
		if recordLen < TagSize+1 {
			return nil, fmt.Errorf("%w: record %d is %d bytes", ErrInvalidBody, i, recordLen)
		}

		record, err := openAESGCM(cek, recordNonce(nonceBase, uint64(i)), remaining[:recordLen])
		if err != nil {
			return nil, err
		}

		chunk, err := stripDelimiter(record, last)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		plaintext = append(plaintext, chunk...)
		remaining = remaining[recordLen:]
	}

	return plaintext, nil
}

// stripDelimiter removes the delimiter byte (and, on the final record, the
// zero padding that follows it) from a decrypted record.
func stripDelimiter(record []byte, last bool) ([]byte, error) {
	if last {
		record = bytes.TrimRight(record, "\x00")
		if len(record) == 0 || record[len(record)-1] != finalRecordDelimiter {
			return nil, fmt.Errorf("%w: missing final record delimiter", ErrDecryptionFailed)
		}
		return record[:len(record)-1], nil
	}

	if len(record) == 0 || record[len(record)-1] != recordDelimiter {
		return nil, fmt.Errorf("%w: missing record delimiter", ErrDecryptionFailed)
	}
	return record[:len(record)-1], nil
}

// aes128gcmSchedule derives the content-encryption key and nonce base for
// the aes128gcm encoding (RFC 8291 §3.3-3.4).
func aes128gcmSchedule(ecdhSecret, subscriberPublicKey, senderPublicKey, authSecret, salt []byte) (cek, nonceBase []byte, err error) {
	// IKM info: "WebPush: info" || 0x00 || ua_public || as_public.
	ikmInfo := make([]byte, 0, len(infoWebPush)+2*PublicKeySize)
	ikmInfo = append(ikmInfo, infoWebPush...)
	ikmInfo = append(ikmInfo, subscriberPublicKey...)
	ikmInfo = append(ikmInfo, senderPublicKey...)

	ikm, err := DeriveKey(ecdhSecret, authSecret, ikmInfo, SharedSecretSize)
	if err != nil {
		return nil, nil, err
	}

	cek, err = DeriveKey(ikm, salt, infoAES128GCM, KeySize)
	if err != nil {
		return nil, nil, err
	}

	nonceBase, err = DeriveKey(ikm, salt, infoNonce, NonceSize)
	if err != nil {
		return nil, nil, err
	}

	return cek, nonceBase, nil
}

// recordNonce computes the nonce for record i: the nonce base XOR the
// big-endian 96-bit record counter.
func recordNonce(nonceBase []byte, i uint64) []byte {
	nonce := make([]byte, NonceSize)
	copy(nonce, nonceBase)
	binary.BigEndian.PutUint64(nonce[NonceSize-8:], binary.BigEndian.Uint64(nonce[NonceSize-8:])^i)
	return nonce
}
