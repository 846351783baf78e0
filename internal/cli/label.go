package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "label [name]",
		Short: "Show or set the chat's NPC display label",
		Run:   runLabel,
	}

	RootCmd.AddCommand(cmd)
}

func runLabel(cmd *cobra.Command, args []string) {
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

	if len(args) == 0 {
		fmt.Println(state.NPCLabel)
		return
	}

	label := strings.TrimSpace(strings.Join(args, " "))
	if label == "" {
		exitErr("label", fmt.Errorf("label must not be empty"))
	}
	state.NPCLabel = label
	if err := s.SaveState(ctx, chatID, state); err != nil {
		exitErr("save state", err)
	}

	fmt.Printf(`{"ok":true,"npcLabel":%q}`+"\n", label)
}
