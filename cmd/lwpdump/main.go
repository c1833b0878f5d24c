package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/programmingLego/lwpctl/internal/config"
	"github.com/programmingLego/lwpctl/internal/console"
	"github.com/programmingLego/lwpctl/internal/logging"
)

func main() {
	configPath := flag.String("config", "cmd/lwpdump/config.toml", "config path")
	initCfg := flag.Bool("init", false, "write a default config template and exit")
	force := flag.Bool("force", false, "overwrite existing config on -init")
	noColor := flag.Bool("no-color", false, "disable ANSI styling")
	flag.Parse()

	logging.ConfigureRuntime()
	logging.New("lwpdump")

	if *initCfg {
		if err := config.WriteTemplate(*configPath, "dump", *force); err != nil {
			log.Fatal().Err(err).Msg("failed to write config template")
		}
		log.Info().Str("path", *configPath).Msg("wrote config template")
		return
	}

	cfg := defaultDumpConfig()
	if _, err := os.Stat(*configPath); err == nil {
		loaded, err := config.LoadDumpConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
		log.Info().Str("path", *configPath).Msg("loaded config")
	}

	styler := console.New(os.Stdout, *noColor || cfg.Log.NoColor)

	frames := flag.Args()
	if len(frames) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			frames = append(frames, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			log.Fatal().Err(err).Msg("stdin read failed")
		}
	}

	failed := 0
	for _, raw := range frames {
		line, err := dump(styler, cfg, raw)
		if err != nil {
			failed++
			fmt.Println(styler.Err(fmt.Sprintf("%s: %v", raw, err)))
			continue
		}
		fmt.Println(line)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func defaultDumpConfig() config.DumpConfig {
	return config.DumpConfig{
		Name:   "lwpdump",
		Log:    config.LogConfig{Level: "info", Timestamp: true},
		Decode: config.DecodeConfig{GearRatio: 1.0},
	}
}
