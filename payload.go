package webpush

// Payload is message content fixed at the API boundary. Text and binary
// content are normalized to bytes before any cryptographic operation.
type Payload struct {
	data []byte
}

// TextPayload builds a payload from a UTF-8 string.
func TextPayload(s string) Payload {
	return Payload{data: []byte(s)}
}

// BinaryPayload builds a payload from raw bytes. The slice is not copied;
// the caller must not mutate it until the encrypting call returns.
func BinaryPayload(b []byte) Payload {
	return Payload{data: b}
}

// Bytes returns the normalized payload bytes.
func (p Payload) Bytes() []byte { return p.data }

// Len returns the payload length in bytes.
func (p Payload) Len() int { return len(p.data) }
