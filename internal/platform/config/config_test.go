package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "FIREBASE_PROJECT_ID", "FIREBASE_CREDS_BASE64",
		"FIREBASE_CREDS_FILE", "FIRESTORE_EMULATOR_HOST", "ALLOWED_ORIGINS",
		"ACADEMY_TIMEZONE", "STATS_SNAPSHOT_ON_START", "STATS_REFRESH_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIREBASE_PROJECT_ID", "academy-dev")
	t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:8081")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.GinMode != "release" || cfg.LogLevel != "info" || cfg.Timezone != "UTC" {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.UseEmulator() {
		t.Errorf("emulator host should enable emulator mode")
	}
	if cfg.SnapshotOnStart {
		t.Errorf("SnapshotOnStart should default to false")
	}
	if cfg.RefreshInterval != 0 {
		t.Errorf("RefreshInterval should default to disabled, got %s", cfg.RefreshInterval)
	}
}

func TestLoadRefreshInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv("FIREBASE_PROJECT_ID", "academy")
	t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:8081")
	t.Setenv("STATS_REFRESH_INTERVAL", "15m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RefreshInterval != 15*time.Minute {
		t.Errorf("RefreshInterval = %s, want 15m", cfg.RefreshInterval)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing project",
			env:     map[string]string{"FIREBASE_CREDS_FILE": "creds.json"},
			wantErr: "FIREBASE_PROJECT_ID",
		},
		{
			name:    "missing credentials",
			env:     map[string]string{"FIREBASE_PROJECT_ID": "academy"},
			wantErr: "FIREBASE_CREDS_BASE64",
		},
		{
			name:    "bad timezone",
			env:     map[string]string{"FIREBASE_PROJECT_ID": "academy", "FIRESTORE_EMULATOR_HOST": "localhost:8081", "ACADEMY_TIMEZONE": "Mars/Olympus"},
			wantErr: "ACADEMY_TIMEZONE",
		},
		{
			name:    "bad interval",
			env:     map[string]string{"FIREBASE_PROJECT_ID": "academy", "FIRESTORE_EMULATOR_HOST": "localhost:8081", "STATS_REFRESH_INTERVAL": "hourly"},
			wantErr: "STATS_REFRESH_INTERVAL",
		},
		{
			name:    "negative interval",
			env:     map[string]string{"FIREBASE_PROJECT_ID": "academy", "FIRESTORE_EMULATOR_HOST": "localhost:8081", "STATS_REFRESH_INTERVAL": "-5m"},
			wantErr: "STATS_REFRESH_INTERVAL",
		},
		{
			name:    "bad bool",
			env:     map[string]string{"FIREBASE_PROJECT_ID": "academy", "FIRESTORE_EMULATOR_HOST": "localhost:8081", "STATS_SNAPSHOT_ON_START": "sometimes"},
			wantErr: "STATS_SNAPSHOT_ON_START",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestFirebaseCredentialsJSON(t *testing.T) {
	payload := []byte(`{"type":"service_account"}`)

	cfg := Config{FirebaseCredsBase64: base64.StdEncoding.EncodeToString(payload)}
	got, source, err := cfg.FirebaseCredentialsJSON()
	if err != nil || source != "base64" || string(got) != string(payload) {
		t.Errorf("base64 creds = %q, %q, %v", got, source, err)
	}

	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		t.Fatalf("write creds: %v", err)
	}
	cfg = Config{FirebaseCredsFile: path}
	got, source, err = cfg.FirebaseCredentialsJSON()
	if err != nil || source != "file" || string(got) != string(payload) {
		t.Errorf("file creds = %q, %q, %v", got, source, err)
	}

	if _, _, err := (Config{}).FirebaseCredentialsJSON(); err == nil {
		t.Errorf("expected error without credentials")
	}
}

func TestLocation(t *testing.T) {
	cfg := Config{Timezone: "UTC"}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}
