// Package cli implements the secrets-tracker CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcliao/secrets-tracker/internal/config"
	"github.com/rcliao/secrets-tracker/internal/prompt"
	"github.com/rcliao/secrets-tracker/internal/store"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	chatID     string
	configPath string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "secrets-tracker",
	Short: "Per-chat secrets and revelations tracker",
	Long:  "Track secrets between the user and NPCs per chat: who knows what, what is still hidden, and what the model should be told. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $SECRETS_TRACKER_DB or ~/.secrets-tracker/tracker.db)")
	RootCmd.PersistentFlags().StringVarP(&chatID, "chat", "c", "default", "Chat id the command operates on")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default: $SECRETS_TRACKER_CONFIG or ~/.secrets-tracker/config.json)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("SECRETS_TRACKER_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".secrets-tracker", "tracker.db")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func loadSettings() config.Settings {
	s, err := config.Load(getConfigPath())
	if err != nil {
		exitErr("load settings", err)
	}
	return s
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// refreshInjection recompiles the tracker block for the chat and writes it
// to the injection slot. Disabled settings clear the slot instead.
func refreshInjection(ctx context.Context, s store.Store, chat string, settings config.Settings) error {
	inj := store.Injection{
		ChatID:     chat,
		Tag:        prompt.InjectionTag,
		Position:   store.Position(settings.Position),
		Depth:      settings.Depth,
		Persistent: true,
	}
	if settings.Enabled {
		state, err := s.LoadState(ctx, chat)
		if err != nil {
			return err
		}
		inj.Text = prompt.Compile(state, prompt.Options{RevealInstruction: settings.AutoDetect})
	}
	return s.SetInjection(ctx, inj)
}
