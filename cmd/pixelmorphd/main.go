// Command pixelmorphd serves the pixelmorph orchestrator over a single
// websocket connection: preset loading, transform playback, interactive
// drawing, and the Genetic/Greedy optimizer sessions that back both.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/obamify/pixelmorph/orchestrator"
	"github.com/obamify/pixelmorph/server"
)

var (
	configPath = flag.String("config", "./config.yaml", "path to the daemon's YAML config")
	host       = flag.String("host", "", "the host ip")
	port       = flag.String("port", "", "the host port, overrides config.yaml if set")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("pixelmorphd: load config: %w", err)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *host != "" {
		cfg.Host = *host
	}

	presets, err := server.LoadPresetStore(cfg.PresetsDir)
	if err != nil {
		return fmt.Errorf("pixelmorphd: load presets: %w", err)
	}

	orch := orchestrator.New(presets)
	if len(presets) > 0 {
		orch.LoadPreset(presets[0])
	}

	addr := cfg.Host + ":" + cfg.Port
	srv := server.New(addr, orch, cfg.DefaultGeneration)

	log.Printf("pixelmorphd: serving on %s (%d preset(s) loaded)", addr, len(presets))
	return srv.Serve()
}
