package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/bugfix/internal/app"
	"github.com/tildaslashalef/bugfix/internal/commands"
)

// Version information - populated at build time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cliApp := &cli.App{
		Name:  "bugfix",
		Usage: "LLM-powered code fixing tool",
		Description: "Bugfix sends a code snippet to a generative model, asks for a\n" +
			"structured critique, and shows the error explanation, corrected code\n" +
			"and improvement suggestions it finds in the reply.\n\n" +
			"When run without subcommands, bugfix analyzes the given file or stdin.",
		Version: Version,
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Before: func(c *cli.Context) error {
			// The init command must work before any provider is configured
			if c.Args().First() == "init" {
				return nil
			}

			application, err := app.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			if application, ok := c.App.Metadata["app"].(*app.App); ok {
				return application.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.AnalyzeCommand(),
			commands.InitCommand(),
		},
		Action: func(c *cli.Context) error {
			// Default action is to run the analyze command
			return commands.AnalyzeCommand().Run(c)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
