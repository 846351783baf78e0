package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rcliao/secrets-tracker/internal/config"
	"github.com/rcliao/secrets-tracker/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Show or change tracker settings",
		Long:  "Without arguments, print the effective settings. With key and value, update the settings file. Keys: enabled, show_widget, position, depth, auto_detect, scan_depth, api.base_url, api.api_key, api.model.",
		Args:  cobra.MaximumNArgs(2),
		Run:   runConfig,
	}

	RootCmd.AddCommand(cmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	settings := loadSettings()

	if len(args) == 0 {
		b, _ := json.MarshalIndent(settings, "", "  ")
		fmt.Println(string(b))
		return
	}
	if len(args) != 2 {
		exitErr("config", fmt.Errorf("expected key and value"))
	}

	key, value := args[0], args[1]
	if err := applySetting(&settings, key, value); err != nil {
		exitErr("config", err)
	}
	if err := settings.Save(getConfigPath()); err != nil {
		exitErr("config", err)
	}

	fmt.Printf(`{"ok":true,"key":%q,"value":%q}`+"\n", key, value)
}

func applySetting(s *config.Settings, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s wants true or false, got %q", key, value)
		}
		return b, nil
	}

	switch key {
	case "enabled":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.Enabled = b
	case "show_widget":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.ShowWidget = b
	case "auto_detect":
		b, err := parseBool()
		if err != nil {
			return err
		}
		s.AutoDetect = b
	case "position":
		if !store.ValidPositions[store.Position(value)] {
			return fmt.Errorf("position wants before_prompt, in_prompt, or in_chat, got %q", value)
		}
		s.Position = value
	case "depth":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("depth wants a non-negative integer, got %q", value)
		}
		s.Depth = n
	case "scan_depth":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("scan_depth wants a positive integer, got %q", value)
		}
		s.ScanDepth = n
	case "api.base_url":
		s.API.BaseURL = value
	case "api.api_key":
		s.API.APIKey = value
	case "api.model":
		s.API.Model = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
