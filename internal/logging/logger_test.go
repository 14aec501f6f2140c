package logging

import (
	"testing"
)

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
	// Silent logger must still accept writes
	Info("status loaded")
	Debug("debug detail")
}

func TestInitialize_ExplicitLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		if err := Initialize(level); err != nil {
			t.Errorf("Initialize(%q) error = %v", level, err)
		}
	}
	Sync()
}

func TestInitializeFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "debug")

	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
}

func TestGetLogger_Uninitialized(t *testing.T) {
	logger = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger() should fall back to a silent logger")
	}
}
