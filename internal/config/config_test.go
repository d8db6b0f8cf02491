package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[instagram]
username = "bot"
password = "hunter2"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("log defaults not applied: %+v", cfg.Log)
	}
	if cfg.Server.Addr != DefaultHTTPAddr {
		t.Fatalf("server addr = %q", cfg.Server.Addr)
	}
	if cfg.Instagram.CookiesFile != DefaultCookiesFile {
		t.Fatalf("cookies file = %q", cfg.Instagram.CookiesFile)
	}
	if cfg.SneakPeek.MaxPhotos != DefaultMaxPhotos {
		t.Fatalf("max photos = %d", cfg.SneakPeek.MaxPhotos)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[instagram]
username = "bot"
password = "hunter2"
cookies_file = "/var/lib/igpeek/cookies.json"

[sneakpeek]
max_photos = 5

[telegram]
bot_token = "123:abc"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
	if cfg.SneakPeek.MaxPhotos != 5 {
		t.Fatalf("max photos = %d", cfg.SneakPeek.MaxPhotos)
	}
	if cfg.Telegram.BotToken != "123:abc" {
		t.Fatalf("telegram token = %q", cfg.Telegram.BotToken)
	}
	if cfg.Instagram.CookiesFile != "/var/lib/igpeek/cookies.json" {
		t.Fatalf("cookies file = %q", cfg.Instagram.CookiesFile)
	}
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[instagram]
username = "bot"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for missing password")
	}
}

func TestLoadRejectsZeroMaxPhotos(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[instagram]
username = "bot"
password = "hunter2"

[sneakpeek]
max_photos = 0
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for max_photos below 1")
	}
}
