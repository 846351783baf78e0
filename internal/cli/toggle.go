package cli

import (
	"fmt"

	"github.com/rcliao/secrets-tracker/internal/ledger"
	"github.com/rcliao/secrets-tracker/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "toggle [id]",
		Short: "Set a secret's visibility flag",
		Long:  "Mark an npc secret known/unknown to the user, or a user secret known/unknown to the NPC. Mutual secrets have no flag.",
		Args:  cobra.ExactArgs(1),
		Run:   runToggle,
	}

	cmd.Flags().StringP("list", "l", "npc", "Collection: npc or user")
	cmd.Flags().Bool("known", true, "Value to set")

	RootCmd.AddCommand(cmd)
}

func runToggle(cmd *cobra.Command, args []string) {
	listName, _ := cmd.Flags().GetString("list")
	known, _ := cmd.Flags().GetBool("known")
	id := args[0]

	coll, ok := model.ParseCollection(listName)
	if !ok {
		exitErr("toggle", fmt.Errorf("unknown list %q (use npc, user, or mutual)", listName))
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

	if err := ledger.SetKnown(state, coll, id, known); err != nil {
		exitErr("toggle", err)
	}
	if err := s.SaveState(ctx, chatID, state); err != nil {
		exitErr("save state", err)
	}
	if err := refreshInjection(ctx, s, chatID, loadSettings()); err != nil {
		exitErr("update injection", err)
	}

	fmt.Printf(`{"ok":true,"list":%q,"id":%q,"known":%v}`+"\n", coll.String(), id, known)
}
