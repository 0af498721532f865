package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/bugfix/internal/analyze"
	"github.com/tildaslashalef/bugfix/internal/app"
	"github.com/tildaslashalef/bugfix/internal/loggy"
	"github.com/tildaslashalef/bugfix/internal/utils"
)

// AnalyzeCommand returns the CLI command that analyzes a code snippet
func AnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze a code snippet for errors and get a corrected version",
		ArgsUsage: "[file]",
		Description: "Sends the snippet to the configured model and shows the error\n" +
			"explanation, corrected code and improvement suggestions it returns.\n" +
			"Reads from stdin when no file argument is given.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "Language of the snippet (detected when omitted)",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Model to use instead of the configured default",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "Provider to use: gemini or ollama",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Always show the raw model reply",
			},
		},
		Action: analyzeAction,
	}
}

func analyzeAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	if provider := c.String("provider"); provider != "" {
		if err := application.WithProvider(provider); err != nil {
			return fmt.Errorf("selecting provider %q: %w", provider, err)
		}
	}

	snippet, err := readSnippet(c)
	if err != nil {
		return err
	}
	snippet.Language = c.String("lang")

	utils.PrintInfo(fmt.Sprintf("Analyzing with %s ...", application.LLMType))

	analysis, err := application.Analyze.AnalyzeSnippet(c.Context, snippet, &analyze.Options{
		Model: c.String("model"),
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	loggy.Debug("rendering analysis", "id", analysis.ID)
	renderAnalysis(analysis, c.Bool("raw"))
	return nil
}

// readSnippet loads the code to analyze from the file argument, or from
// stdin when no argument (or "-") is given.
func readSnippet(c *cli.Context) (analyze.Snippet, error) {
	path := c.Args().First()

	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return analyze.Snippet{}, fmt.Errorf("reading stdin: %w", err)
		}
		return analyze.Snippet{Content: string(data)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return analyze.Snippet{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return analyze.Snippet{Path: path, Content: string(data)}, nil
}
