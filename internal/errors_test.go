package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	originalErr := errors.New("disk full")
	err := &StorageError{
		Key: "chatvault_messages_abc",
		Op:  "set",
		Err: originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "chatvault_messages_abc") {
		t.Errorf("StorageError.Error() should contain the key, got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "set") {
		t.Errorf("StorageError.Error() should contain the op, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("StorageError should unwrap to the original error")
	}
}

func TestParseError(t *testing.T) {
	originalErr := errors.New("invalid JSON")
	err := &ParseError{
		Key: "chatvault_storage_meta",
		Err: originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "parse error") {
		t.Errorf("ParseError.Error() should contain 'parse error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "chatvault_storage_meta") {
		t.Errorf("ParseError.Error() should contain the key, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ParseError should unwrap to the original error")
	}
}

func TestExportError(t *testing.T) {
	originalErr := errors.New("write failed")
	err := &ExportError{
		Format: "jsonl",
		Err:    originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "export error") {
		t.Errorf("ExportError.Error() should contain 'export error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "jsonl") {
		t.Errorf("ExportError.Error() should contain the format, got: %q", errorMsg)
	}

	if !errors.Is(err, originalErr) {
		t.Error("ExportError should unwrap to the original error")
	}
}

func TestQuotaSentinelWrapsThroughStorageError(t *testing.T) {
	err := &StorageError{Key: "k", Op: "set", Err: ErrQuotaExceeded}
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Error("wrapped quota error not detected by errors.Is")
	}
}
