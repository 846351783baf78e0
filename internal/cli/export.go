package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a chat's ledger as JSON",
		Long:  "Print the chat's full secret state as pretty-printed JSON, in the shape import expects.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	state, err := s.LoadState(cmd.Context(), chatID)
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(state, "", "  ")
	fmt.Println(string(b))
}
