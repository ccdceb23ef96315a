package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should contain "sponsorhub"
	if !contains(configDir, "sponsorhub") {
		t.Errorf("GetConfigDir() = %v, should contain 'sponsorhub'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !contains(configDir, "AppData") && !contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with config.yaml
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}

	t.Logf("Config path: %s", configPath)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Profiles == nil {
		t.Error("NewRegistry().Profiles should not be nil")
	}

	if reg.Preferences == nil {
		t.Error("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.DefaultProfile != "default" {
		t.Errorf("NewRegistry().Preferences.DefaultProfile = %v, want 'default'", reg.Preferences.DefaultProfile)
	}

	if reg.Preferences.OutputFormat != "detailed" {
		t.Errorf("NewRegistry().Preferences.OutputFormat = %v, want 'detailed'", reg.Preferences.OutputFormat)
	}
}

func TestRegistryEnsureProfile(t *testing.T) {
	reg := NewRegistry()

	// First call should create the profile
	profile1 := reg.EnsureProfile("staging")
	if profile1 == nil {
		t.Fatal("EnsureProfile() returned nil")
	}

	// Second call should return same profile
	profile2 := reg.EnsureProfile("staging")
	if profile1 != profile2 {
		t.Error("EnsureProfile() should return same instance for same name")
	}

	// Different name should create new profile
	profile3 := reg.EnsureProfile("production")
	if profile1 == profile3 {
		t.Error("EnsureProfile() should create new instance for different name")
	}
}

func TestRegistrySetLogin(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.SetLogin("default", "https://api.example.com", "tok-abc", "club", 42, "ASD Ravenna Calcio", "segreteria@example.com")
	after := time.Now()

	profile := reg.GetProfile("default")
	if profile == nil {
		t.Fatal("Profile should exist after SetLogin()")
	}

	if profile.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %v, want https://api.example.com", profile.BaseURL)
	}
	if profile.Token != "tok-abc" {
		t.Errorf("Token = %v, want tok-abc", profile.Token)
	}
	if profile.Role != "club" {
		t.Errorf("Role = %v, want club", profile.Role)
	}
	if profile.UserID != 42 {
		t.Errorf("UserID = %v, want 42", profile.UserID)
	}
	if profile.UserName != "ASD Ravenna Calcio" {
		t.Errorf("UserName = %v, want 'ASD Ravenna Calcio'", profile.UserName)
	}

	if profile.LastLogin.Before(before) || profile.LastLogin.After(after) {
		t.Errorf("LastLogin = %v, should be between %v and %v", profile.LastLogin, before, after)
	}
}

func TestRegistryClearToken(t *testing.T) {
	reg := NewRegistry()
	reg.SetLogin("default", "https://api.example.com", "tok-abc", "sponsor", 7, "Acme SpA", "marketing@acme.it")

	reg.ClearToken("default")

	profile := reg.GetProfile("default")
	if profile == nil {
		t.Fatal("Profile should survive ClearToken()")
	}
	if profile.Token != "" {
		t.Errorf("Token = %v, want empty after ClearToken()", profile.Token)
	}
	if profile.BaseURL != "https://api.example.com" {
		t.Error("BaseURL should be kept after ClearToken()")
	}
	if profile.Role != "sponsor" {
		t.Error("Role should be kept after ClearToken()")
	}

	// Clearing an unknown profile is a no-op
	reg.ClearToken("nope")
}

func TestRegistryDeleteProfile(t *testing.T) {
	reg := NewRegistry()
	reg.EnsureProfile("staging")

	reg.DeleteProfile("staging")

	if reg.GetProfile("staging") != nil {
		t.Error("Profile should be gone after DeleteProfile()")
	}
}

func TestRegistryDefaultProfileName(t *testing.T) {
	reg := NewRegistry()
	if got := reg.DefaultProfileName(); got != "default" {
		t.Errorf("DefaultProfileName() = %v, want 'default'", got)
	}

	reg.Preferences.DefaultProfile = "staging"
	if got := reg.DefaultProfileName(); got != "staging" {
		t.Errorf("DefaultProfileName() = %v, want 'staging'", got)
	}

	reg.Preferences = nil
	if got := reg.DefaultProfileName(); got != "default" {
		t.Errorf("DefaultProfileName() with nil preferences = %v, want 'default'", got)
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	// Use a temporary directory for testing
	tmpDir, err := os.MkdirTemp("", "sponsorhub-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	// Create and populate registry
	reg := NewRegistry()
	reg.SetLogin("default", "https://api.example.com", "tok-abc", "club", 42, "ASD Ravenna Calcio", "segreteria@example.com")

	// Manually save to test path
	data, err := yaml.Marshal(reg)
	if err != nil {
		t.Fatalf("Failed to marshal registry: %v", err)
	}

	if err := os.WriteFile(testConfigPath, data, 0600); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	// Load from test path
	raw, err := os.ReadFile(testConfigPath)
	if err != nil {
		t.Fatalf("Failed to read test config: %v", err)
	}

	var loaded Registry
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("Failed to parse test config: %v", err)
	}

	// Verify loaded data
	profile := loaded.GetProfile("default")
	if profile == nil {
		t.Fatal("Profile should exist in loaded registry")
	}

	if profile.BaseURL != "https://api.example.com" {
		t.Errorf("Loaded BaseURL = %v, want https://api.example.com", profile.BaseURL)
	}
	if profile.Token != "tok-abc" {
		t.Errorf("Loaded Token = %v, want tok-abc", profile.Token)
	}
	if profile.Role != "club" {
		t.Errorf("Loaded Role = %v, want club", profile.Role)
	}
}

// Helper functions

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 ||
		(len(s) > 0 && (s[:len(substr)] == substr || contains(s[1:], substr))))
}

// Benchmark tests

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}

func BenchmarkEnsureProfile(b *testing.B) {
	reg := NewRegistry()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reg.EnsureProfile("default")
	}
}
