package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rcliao/secrets-tracker/internal/ledger"
	"github.com/rcliao/secrets-tracker/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a secret",
		Long:  "Add a secret to a chat's ledger. The list is npc, user, or mutual; free-form tag labels are normalized into the closed tag set.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAdd,
	}

	cmd.Flags().StringP("list", "l", "npc", "Collection: npc, user, mutual")
	cmd.Flags().StringP("tag", "t", "none", "Tag: none, dangerous, personal, kompromat")
	cmd.Flags().Bool("known", false, "Already known to the other side")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	listName, _ := cmd.Flags().GetString("list")
	tag, _ := cmd.Flags().GetString("tag")
	known, _ := cmd.Flags().GetBool("known")
	text := strings.Join(args, " ")

	coll, ok := model.ParseCollection(listName)
	if !ok {
		exitErr("add", fmt.Errorf("unknown list %q (use npc, user, or mutual)", listName))
	}
	if known && coll == model.MutualSecrets {
		exitErr("add", ledger.ErrNoVisibilityFlag)
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

	secret, err := ledger.Add(state, s, coll, text, tag, known)
	if err != nil {
		exitErr("add", err)
	}
	if err := s.SaveState(ctx, chatID, state); err != nil {
		exitErr("save state", err)
	}
	if err := refreshInjection(ctx, s, chatID, loadSettings()); err != nil {
		exitErr("update injection", err)
	}

	b, _ := json.Marshal(secret)
	fmt.Println(string(b))
}
