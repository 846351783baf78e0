package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rcliao/secrets-tracker/internal/reveal"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "log [text]",
		Short: "Append a message to the chat feed",
		Long:  "Append a message to the chat feed, as the host does on message-received. Text can be a positional arg or piped via stdin. When auto-detect is on, model messages are scanned for [REVEAL: ...] markers and the ledger updated.",
		Run:   runLog,
	}

	cmd.Flags().StringP("speaker", "s", "", "Speaker name (required)")
	cmd.Flags().Bool("user", false, "Message is from the user side")

	cmd.MarkFlagRequired("speaker")

	RootCmd.AddCommand(cmd)
}

func runLog(cmd *cobra.Command, args []string) {
	speaker, _ := cmd.Flags().GetString("speaker")
	isUser, _ := cmd.Flags().GetBool("user")

	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			text = string(b)
		}
	}
	if strings.TrimSpace(text) == "" {
		exitErr("log", fmt.Errorf("message text is required (positional arg or stdin)"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	msg, err := s.AppendMessage(ctx, chatID, speaker, isUser, text)
	if err != nil {
		exitErr("log", err)
	}

	settings := loadSettings()
	out := struct {
		Message interface{}    `json:"message"`
		Detect  *reveal.Result `json:"detect,omitempty"`
	}{Message: msg}

	// Reveal markers come from the model side; user messages are not scanned.
	if settings.Enabled && settings.AutoDetect && !isUser {
		state, err := s.LoadState(ctx, chatID)
		if err != nil {
			exitErr("load state", err)
		}
		res := reveal.Detect(state, s, text)
		if res.Changed {
			if err := s.SaveState(ctx, chatID, state); err != nil {
				exitErr("save state", err)
			}
			if err := refreshInjection(ctx, s, chatID, settings); err != nil {
				exitErr("update injection", err)
			}
		}
		out.Detect = &res
	}

	b, _ := json.Marshal(out)
	fmt.Println(string(b))
}
