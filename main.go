package main

import (
	"math/rand"
	"time"

	"github.com/jmhodges/clock"
	"github.com/kelseyhightower/envconfig"

	"wellmind/logger"
	"wellmind/reminder"
	"wellmind/storage"
)

// wellmind entry point
func main() {
	log, syncLogs := logger.New("wellmind")
	defer syncLogs()

	var cfg Config
	if err := envconfig.Process("wellmind", &cfg); err != nil {
		log.Fatalw("couldn't read environment configuration", "err", err)
	}

	chCfg, err := readChannelConfig(cfg.ChannelFile)
	if err != nil {
		log.Fatalw("couldn't read channel configuration", "file", cfg.ChannelFile, "err", err)
	}

	channels, err := buildChannels(chCfg, log)
	if err != nil {
		log.Fatalw("failed to initialize channels", "err", err)
	}

	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalw("failed to initialize storage", "dir", cfg.DataDir, "err", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sched := reminder.New(store, channels, log, clock.New(), rng)
	sched.SetResendDelay(cfg.ResendDelay)

	if err := sched.Init(cfg.Tick); err != nil {
		log.Fatalw("failed to initialize scheduler", "err", err)
	}

	stickHere := make(<-chan int)
	<-stickHere
}
