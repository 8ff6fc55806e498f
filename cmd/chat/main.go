package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/chatlite/chatlite/cmd/chat/ui"
	"github.com/chatlite/chatlite/internal/client/api"
	"github.com/chatlite/chatlite/internal/client/chat"
	"github.com/chatlite/chatlite/internal/client/session"
	"github.com/chatlite/chatlite/internal/client/storage/boltdb"
)

func main() {
	_ = godotenv.Load()

	serverURL := os.Getenv("CHATLITE_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:5000"
	}

	storagePath, err := defaultStoragePath()
	if err != nil {
		log.Fatalf("storage path: %v", err)
	}

	store, err := boltdb.Open(storagePath)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer func() {
		_ = store.Close()
	}()

	client := api.NewClient(serverURL)
	sess := session.New(client, store)
	convs := chat.NewStore()
	responder := chat.NewCannedResponder(1200 * time.Millisecond)

	program := tea.NewProgram(ui.NewModel(sess, convs, responder), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "chatlite: %v\n", err)
		os.Exit(1)
	}
}

func defaultStoragePath() (string, error) {
	if path := os.Getenv("CHATLITE_SESSION_DB"); path != "" {
		return path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	appDir := filepath.Join(dir, "chatlite")
	if err := os.MkdirAll(appDir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(appDir, "session.db"), nil
}
