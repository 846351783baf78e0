package cli

import (
	"fmt"

	"github.com/rcliao/secrets-tracker/internal/ledger"
	"github.com/rcliao/secrets-tracker/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a secret",
		Long:  "Delete a secret by id. Deleting an unknown id is a no-op.",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	cmd.Flags().StringP("list", "l", "npc", "Collection: npc, user, mutual")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	listName, _ := cmd.Flags().GetString("list")
	id := args[0]

	coll, ok := model.ParseCollection(listName)
	if !ok {
		exitErr("rm", fmt.Errorf("unknown list %q (use npc, user, or mutual)", listName))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	state, err := s.LoadState(ctx, chatID)
	if err != nil {
		exitErr("load state", err)
	}

	ledger.Remove(state, coll, id)
	if err := s.SaveState(ctx, chatID, state); err != nil {
		exitErr("save state", err)
	}
	if err := refreshInjection(ctx, s, chatID, loadSettings()); err != nil {
		exitErr("update injection", err)
	}

	fmt.Printf(`{"ok":true,"list":%q,"id":%q}`+"\n", coll.String(), id)
}
