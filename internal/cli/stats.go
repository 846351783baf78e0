package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/secrets-tracker/internal/ledger"
	"github.com/rcliao/secrets-tracker/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show ledger totals for a chat",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	state, err := s.LoadState(cmd.Context(), chatID)
	if err != nil {
		exitErr("stats", err)
	}

	byTag := map[model.Tag]int{}
	for _, list := range [][]model.Secret{state.NPCSecrets, state.UserSecrets, state.MutualSecrets} {
		for _, sec := range list {
			byTag[sec.Tag]++
		}
	}

	counts := ledger.Count(state)
	out := map[string]interface{}{
		"chat":     chatID,
		"npc":      len(state.NPCSecrets),
		"user":     len(state.UserSecrets),
		"mutual":   len(state.MutualSecrets),
		"revealed": counts.Revealed,
		"hidden":   counts.Hidden,
		"by_tag":   byTag,
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
