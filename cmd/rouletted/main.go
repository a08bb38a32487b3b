// rouletted serves the predictor over HTTP: multiple independent sessions,
// a sqlite spin journal, and a websocket live feed.
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/MJE43/roulette-edge-go/internal/api"
	"github.com/MJE43/roulette-edge-go/internal/config"
	"github.com/MJE43/roulette-edge-go/internal/session"
	"github.com/MJE43/roulette-edge-go/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	journal, err := store.NewSQLiteDB(cfg.JournalPath)
	if err != nil {
		log.Fatalf("failed to open journal: %v", err)
	}
	defer journal.Close()

	if err := journal.Migrate(); err != nil {
		log.Fatalf("failed to migrate journal: %v", err)
	}

	sessions := session.NewManager(cfg.Options())
	server := api.NewServer(sessions, journal)

	log.Printf("rouletted_listening addr=%s journal=%s decay=%g",
		cfg.Listen, cfg.JournalPath, cfg.Predictor.DecayFactor)

	if err := http.ListenAndServe(cfg.Listen, server.Routes()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
