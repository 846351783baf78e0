package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List known chat ids",
		Run:   runChats,
	}

	RootCmd.AddCommand(cmd)
}

func runChats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ids, err := s.Chats(cmd.Context())
	if err != nil {
		exitErr("chats", err)
	}

	for _, id := range ids {
		fmt.Println(id)
	}
}
