package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/secrets-tracker/internal/scan"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Ask the generation API to propose secrets from recent messages",
		Long:  "Sample the chat's trailing messages, ask the configured generation API for candidate secrets, and merge non-duplicates into the ledger. Requires API settings (config file or SECRETS_TRACKER_API_* env vars).",
		Run:   runScan,
	}

	cmd.Flags().Int("depth", 0, "Messages to sample (default: scan_depth setting)")

	RootCmd.AddCommand(cmd)
}

func runScan(cmd *cobra.Command, args []string) {
	depth, _ := cmd.Flags().GetInt("depth")
	settings := loadSettings()
	if depth <= 0 {
		depth = settings.ScanDepth
	}

	gen := scan.NewFromSettings(settings.API)
	if gen == nil {
		exitErr("scan", scan.ErrNoGenerator)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	report, err := scan.NewScanner(s, gen).Scan(ctx, chatID, depth)
	if err != nil {
		exitErr("scan", err)
	}

	if err := refreshInjection(ctx, s, chatID, settings); err != nil {
		exitErr("update injection", err)
	}

	b, _ := json.Marshal(report)
	fmt.Println(string(b))
}
