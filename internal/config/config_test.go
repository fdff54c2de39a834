package config

import (
	"log/slog"
	"strings"
	"testing"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromLookup(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr string
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Config{LogLevel: slog.LevelInfo, JPEGQuality: 95},
		},
		{
			name: "all set",
			env: map[string]string{
				EnvLogLevel:    "DEBUG",
				EnvImagesDir:   " /srv/images ",
				EnvJPEGQuality: "80",
			},
			want: Config{LogLevel: slog.LevelDebug, ImagesDir: "/srv/images", JPEGQuality: 80},
		},
		{
			name: "empty values keep defaults",
			env:  map[string]string{EnvLogLevel: "", EnvJPEGQuality: ""},
			want: Config{LogLevel: slog.LevelInfo, JPEGQuality: 95},
		},
		{
			name:    "bad level",
			env:     map[string]string{EnvLogLevel: "chatty"},
			wantErr: EnvLogLevel,
		},
		{
			name:    "quality out of range",
			env:     map[string]string{EnvJPEGQuality: "101"},
			wantErr: EnvJPEGQuality,
		},
		{
			name:    "quality not a number",
			env:     map[string]string{EnvJPEGQuality: "high"},
			wantErr: EnvJPEGQuality,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fromLookup(envFrom(tt.env))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error: got %v, want mention of %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("config: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvJPEGQuality, "70")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.LogLevel != slog.LevelWarn || cfg.JPEGQuality != 70 {
		t.Errorf("config: got %+v", cfg)
	}
}
