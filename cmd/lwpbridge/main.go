package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/programmingLego/lwpctl/internal/bridge"
	"github.com/programmingLego/lwpctl/internal/config"
	"github.com/programmingLego/lwpctl/internal/logging"
)

func main() {
	configPath := flag.String("config", "cmd/lwpbridge/config.toml", "config path")
	initCfg := flag.Bool("init", false, "write a default config template and exit")
	force := flag.Bool("force", false, "overwrite existing config on -init")
	flag.Parse()

	logging.ConfigureRuntime()
	logging.New("lwpbridge")

	if *initCfg {
		if err := config.WriteTemplate(*configPath, "bridge", *force); err != nil {
			log.Fatal().Err(err).Msg("failed to write config template")
		}
		log.Info().Str("path", *configPath).Msg("wrote config template")
		return
	}

	cfg, err := config.LoadBridgeConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load bridge config")
	}
	log.Info().Str("path", *configPath).Msg("loaded bridge config")

	server := bridge.Appear(cfg.ID, cfg.TCPAddr, cfg.HTTPAddr, cfg.CorsOrigins)
	go func() {
		if err := server.ServeHTTP(); err != nil {
			log.Fatal().Err(err).Msg("status surface stopped")
		}
	}()

	log.Info().Str("id", cfg.ID).Str("tcp", cfg.TCPAddr).Str("http", cfg.HTTPAddr).Msg("bridge started")
	if err := server.Serve(); err != nil {
		log.Fatal().Err(err).Msg("bridge stopped")
	}
}
