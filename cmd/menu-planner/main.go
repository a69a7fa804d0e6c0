package main

import (
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"menu-planner/internal/api"
	"menu-planner/internal/cache"
	"menu-planner/internal/config"
	"menu-planner/internal/metrics"
	"menu-planner/internal/suggest"
	"menu-planner/internal/ui"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := cache.NewDB(cfg.CacheDBPath)
	if err != nil {
		log.Fatalf("Failed to initialize cache database: %v", err)
	}
	defer db.Close()

	store := metrics.NewStore(db.SQL)
	if err := store.Prune(time.Now().AddDate(0, 0, -30)); err != nil {
		log.Printf("Warning: failed to prune old request metrics: %v", err)
	}

	opts := []api.Option{api.WithObserver(store)}
	if cfg.APIToken != "" {
		opts = append(opts, api.WithToken(cfg.APIToken))
	}
	client := api.NewClient(cfg.APIBaseURL, opts...)

	products := suggest.NewProductSource(client, cache.NewProductStore(db), suggest.DefaultCacheTTL)

	app := ui.NewApp(client, products)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Printf("Program error: %v", err)
		os.Exit(1)
	}
}
