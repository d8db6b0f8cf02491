package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath  = "config.toml"
	DefaultHTTPAddr    = ":8080"
	DefaultCookiesFile = "instagram_cookies.json"
	DefaultMaxPhotos   = 3
)

type Config struct {
	Log       LogConfig       `toml:"log"`
	Server    ServerConfig    `toml:"server"`
	Instagram InstagramConfig `toml:"instagram"`
	SneakPeek SneakPeekConfig `toml:"sneakpeek"`
	Telegram  TelegramConfig  `toml:"telegram"`
	Discord   DiscordConfig   `toml:"discord"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type InstagramConfig struct {
	Username    string `toml:"username" validate:"required"`
	Password    string `toml:"password" validate:"required"`
	CookiesFile string `toml:"cookies_file" validate:"required"`
}

type SneakPeekConfig struct {
	// MaxPhotos bounds the passive-mode fan-out: at most this many posts
	// are previewed per recognized link.
	MaxPhotos int `toml:"max_photos" validate:"min=1"`
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
}

type DiscordConfig struct {
	BotToken string `toml:"bot_token"`
}

func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Instagram: InstagramConfig{
			CookiesFile: DefaultCookiesFile,
		},
		SneakPeek: SneakPeekConfig{
			MaxPhotos: DefaultMaxPhotos,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
