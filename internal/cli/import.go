package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rcliao/secrets-tracker/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace a chat's ledger from JSON",
		Long:  "Read a JSON ledger from stdin and replace the chat's state wholesale. Missing lists become empty and a missing label falls back to the default. Import never merges.",
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var state model.State
	if err := json.Unmarshal(data, &state); err != nil {
		exitErr("parse json", err)
	}
	state.Normalize()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.SaveState(ctx, chatID, &state); err != nil {
		exitErr("import", err)
	}
	if err := refreshInjection(ctx, s, chatID, loadSettings()); err != nil {
		exitErr("update injection", err)
	}

	total := len(state.NPCSecrets) + len(state.UserSecrets) + len(state.MutualSecrets)
	fmt.Printf(`{"ok":true,"chat":%q,"secrets":%d}`+"\n", chatID, total)
}
