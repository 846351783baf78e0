package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/secrets-tracker/internal/ledger"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a chat's secrets",
		Run:   runList,
	}

	cmd.Flags().StringP("format", "f", "json", "Output format: json or text")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	state, err := s.LoadState(cmd.Context(), chatID)
	if err != nil {
		exitErr("load state", err)
	}

	if format == "text" {
		counts := ledger.Count(state)
		fmt.Printf("Chat %s (%s) — %d revealed / %d hidden\n", chatID, state.NPCLabel, counts.Revealed, counts.Hidden)
		fmt.Println("\nNPC secrets:")
		for _, sec := range state.NPCSecrets {
			mark := "hidden"
			if sec.KnownToUser {
				mark = "known"
			}
			fmt.Printf("  [%s] %s %s (%s, %s)\n", sec.ID, sec.Text, sec.Tag.Icon(), sec.Tag, mark)
		}
		fmt.Println("\nUser secrets:")
		for _, sec := range state.UserSecrets {
			mark := "hidden"
			if sec.KnownToNpc {
				mark = "known"
			}
			fmt.Printf("  [%s] %s %s (%s, %s)\n", sec.ID, sec.Text, sec.Tag.Icon(), sec.Tag, mark)
		}
		fmt.Println("\nMutual secrets:")
		for _, sec := range state.MutualSecrets {
			fmt.Printf("  [%s] %s %s (%s)\n", sec.ID, sec.Text, sec.Tag.Icon(), sec.Tag)
		}
		return
	}

	b, _ := json.MarshalIndent(state, "", "  ")
	fmt.Println(string(b))
}
