package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/secrets-tracker/internal/prompt"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Compile the tracker block for a chat",
		Long:  "Print the tracker block that would be injected into the model prompt. With --inject, also write it to the chat's injection slot (or clear the slot when injection is disabled).",
		Run:   runPrompt,
	}

	cmd.Flags().Bool("inject", false, "Write the block to the injection slot")

	RootCmd.AddCommand(cmd)
}

func runPrompt(cmd *cobra.Command, args []string) {
	inject, _ := cmd.Flags().GetBool("inject")
	settings := loadSettings()

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

	block := prompt.Compile(state, prompt.Options{RevealInstruction: settings.AutoDetect})

	if inject {
		if err := refreshInjection(ctx, s, chatID, settings); err != nil {
			exitErr("update injection", err)
		}
		inj, err := s.GetInjection(ctx, chatID, prompt.InjectionTag)
		if err != nil {
			exitErr("read injection", err)
		}
		if inj == nil {
			fmt.Println(`{"ok":true,"injected":false}`)
			return
		}
		b, _ := json.Marshal(inj)
		fmt.Println(string(b))
		return
	}

	fmt.Print(block)
}
