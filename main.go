package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jlindgren/wayfarer/internal/api"
	"github.com/jlindgren/wayfarer/internal/config"
	"github.com/jlindgren/wayfarer/internal/domain"
	"github.com/jlindgren/wayfarer/internal/logger"
	"github.com/jlindgren/wayfarer/internal/saved"
	"github.com/jlindgren/wayfarer/internal/session"
	"github.com/jlindgren/wayfarer/internal/storage"
	"github.com/jlindgren/wayfarer/internal/ui"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()

	var store domain.CredentialStore
	store, err = storage.NewLocalStore()
	if err != nil {
		// No local storage: run the session in-memory only.
		logger.LogError("STORAGE_INIT", err)
		store = storage.Unavailable(err)
	}

	client := api.NewClient(cfg.BaseURL, cfg.RequestTimeout)
	sess := session.NewManager(store, client)
	client.OnUnauthorized(sess.Invalidate)

	// The session must resolve before the UI can fire an authenticated call.
	sess.Bootstrap()

	savedCtrl := saved.NewController(client)

	p := tea.NewProgram(ui.NewModel(sess, client, savedCtrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
