// Package commands contains the CLI command definitions
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/bugfix/internal/config"
	"github.com/tildaslashalef/bugfix/internal/utils"
)

// InitCommand returns the CLI command that sets up the config directory
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the configuration directory with a starter .env file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "backup",
				Usage: "Back up an existing .env before overwriting it",
			},
		},
		Action: initAction,
	}
}

func initAction(c *cli.Context) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".bugfix")

	if err := config.SetupConfigDirectory(configDir, c.Bool("backup")); err != nil {
		return fmt.Errorf("failed to set up config directory: %w", err)
	}

	utils.PrintSuccess("Configuration initialized")
	utils.PrintInfo("Configuration directory: " + color.YellowString("%s", configDir))
	utils.PrintInfo("Configuration file: " + color.YellowString("%s", filepath.Join(configDir, ".env")))
	utils.PrintInfo("Set " + color.CyanString("BUGFIX_GEMINI_API_KEY") + " (or point " +
		color.CyanString("BUGFIX_OLLAMA_ENDPOINT") + " at a local Ollama) and run " +
		color.CyanString("bugfix analyze") + ".")

	return nil
}
