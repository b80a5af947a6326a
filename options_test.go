package webpush

import "testing"

func TestEncryptConfig_Defaults(t *testing.T) {
	cfg := newEncryptConfig()

	if cfg.recordSize != DefaultRecordSize {
		t.Errorf("recordSize = %d, want %d", cfg.recordSize, DefaultRecordSize)
	}
	if cfg.multipleRecords {
		t.Error("multipleRecords defaults to true, want false")
	}
	if cfg.finalRecordPadding != 0 {
		t.Errorf("finalRecordPadding = %d, want 0", cfg.finalRecordPadding)
	}
	if cfg.contentEncoding != AES128GCM {
		t.Errorf("contentEncoding = %q, want %q", cfg.contentEncoding, AES128GCM)
	}
}

func TestEncryptOptions_Apply(t *testing.T) {
	cfg := newEncryptConfig()
	for _, opt := range []EncryptOption{
		WithRecordSize(1024),
		WithMultipleRecords(true),
		WithFinalRecordPadding(64),
		WithContentEncoding(AESGCM),
	} {
		opt(&cfg)
	}

	if cfg.recordSize != 1024 {
		t.Errorf("recordSize = %d, want 1024", cfg.recordSize)
	}
	if !cfg.multipleRecords {
		t.Error("multipleRecords not applied")
	}
	if cfg.finalRecordPadding != 64 {
		t.Errorf("finalRecordPadding = %d, want 64", cfg.finalRecordPadding)
	}
	if cfg.contentEncoding != AESGCM {
		t.Errorf("contentEncoding = %q, want %q", cfg.contentEncoding, AESGCM)
	}
}
