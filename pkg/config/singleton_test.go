package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetAndGetConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := Default()
	cfg.Server.ListenAddress = "127.0.0.1:7777"
	SetConfig(cfg)

	got := GetConfig()
	if got == nil {
		t.Fatal("GetConfig() = nil after SetConfig")
	}
	if got.Server.ListenAddress != "127.0.0.1:7777" {
		t.Errorf("ListenAddress = %q, want 127.0.0.1:7777", got.Server.ListenAddress)
	}
}

func TestMustGetConfig_Panics(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	SetConfig(nil)
	defer func() {
		if recover() == nil {
			t.Error("MustGetConfig() should panic when uninitialized")
		}
	}()
	MustGetConfig()
}

func TestReloadConfig(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  listen_address: \"127.0.0.1:6060\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if err := ReloadConfig(path); err != nil {
		t.Fatalf("ReloadConfig() error = %v", err)
	}
	if got := GetConfig().Server.ListenAddress; got != "127.0.0.1:6060" {
		t.Errorf("ListenAddress = %q, want reloaded value", got)
	}
}

func TestReloadConfig_KeepsOldOnFailure(t *testing.T) {
	original := GetConfig()
	defer SetConfig(original)

	cfg := Default()
	cfg.Server.ListenAddress = "127.0.0.1:5050"
	SetConfig(cfg)

	if err := ReloadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("ReloadConfig() expected error for missing file")
	}
	if got := GetConfig().Server.ListenAddress; got != "127.0.0.1:5050" {
		t.Errorf("ListenAddress = %q, existing config should survive a failed reload", got)
	}
}
