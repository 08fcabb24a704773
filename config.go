package main

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"go.uber.org/zap"

	"wellmind/channel"
)

// Config is the daemon's environment configuration.
type Config struct {
	DataDir     string        `envconfig:"DATA_DIR" default:"./data"`
	ChannelFile string        `envconfig:"CHANNEL_CONFIG" default:"channels.json"`
	Tick        time.Duration `envconfig:"TICK" default:"20s"`
	ResendDelay time.Duration `envconfig:"RESEND_DELAY" default:"24h"`
}

// ChannelConfig holds the shared credentials for the delivery adapters,
// read from a JSON file at startup.
type ChannelConfig struct {
	TelegramToken string              `json:"telegram_token"`
	SMTP          *channel.SMTPConfig `json:"smtp"`
	Discord       bool                `json:"discord"`
}

// readChannelConfig reads channel credentials from the given file.
func readChannelConfig(path string) (*ChannelConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ChannelConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.New("couldn't unmarshal channel configuration")
	}
	return &cfg, nil
}

// buildChannels wires up every adapter the config enables. A daemon with no
// channels at all is almost certainly misconfigured, so that is an error.
func buildChannels(cfg *ChannelConfig, log *zap.SugaredLogger) (channel.Registry, error) {
	reg := channel.Registry{}

	if cfg.TelegramToken != "" {
		tg, err := channel.NewTelegram(cfg.TelegramToken)
		if err != nil {
			return nil, err
		}
		reg["telegram"] = tg
		log.Info("telegram channel enabled")
	}

	if cfg.SMTP != nil && cfg.SMTP.Host != "" {
		reg["email"] = channel.NewEmail(*cfg.SMTP)
		log.Info("email channel enabled")
	}

	if cfg.Discord {
		reg["discord"] = channel.NewDiscord()
		log.Info("discord channel enabled")
	}

	if len(reg) == 0 {
		return nil, errors.New("no communication channels configured")
	}
	return reg, nil
}
