package config

import (
	"os"
	"path/filepath"
	"testing"

	perrors "github.com/jmgilman/go/errors"
)

func TestLoad_UnknownConfigVersion(t *testing.T) {
	d := t.TempDir()
	cfg := filepath.Join(d, "unknown_version.cue")
	content := "{\n  configVersion: \"2\"\n}\n"
	if err := os.WriteFile(cfg, []byte(content), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	_, err := Load(cfg)
	if err == nil {
		t.Fatalf("expected error")
	}
	var pe perrors.PlatformError
	if !perrors.As(err, &pe) {
		t.Fatalf("expected platform error, got %T", err)
	}
	if pe.Code() != perrors.CodeInvalidConfig {
		t.Fatalf("unexpected code: %s", pe.Code())
	}
	want := "unsupported configVersion: \"2\" (supported: 1)"
	if pe.Message() != want {
		t.Fatalf("unexpected error\nwant: %s\n got: %s", want, pe.Message())
	}
}

func TestIsSupportedConfigVersion(t *testing.T) {
	if !IsSupportedConfigVersion(CurrentConfigVersion) {
		t.Fatalf("current version must be supported")
	}
	if IsSupportedConfigVersion("0") {
		t.Fatalf("version 0 must not be supported")
	}
}

func TestCheckConfigVersion(t *testing.T) {
	if err := checkConfigVersion("1"); err != nil {
		t.Fatalf("version 1: %v", err)
	}
	err := checkConfigVersion("")
	var pe perrors.PlatformError
	if !perrors.As(err, &pe) || pe.Code() != perrors.CodeInvalidConfig {
		t.Fatalf("expected INVALID_CONFIGURATION, got %v", err)
	}
	if pe.Context()["configVersion"] != "" {
		t.Fatalf("missing configVersion context: %v", pe.Context())
	}
}
