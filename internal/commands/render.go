package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tildaslashalef/bugfix/internal/analyze"
	"github.com/tildaslashalef/bugfix/internal/critique"
	"github.com/tildaslashalef/bugfix/internal/lang"
	"github.com/tildaslashalef/bugfix/internal/utils"
)

const renderWidth = 100

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "27", Dark: "86"}).
			MarginTop(1)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "246"})
)

// renderAnalysis prints the parsed sections. Diagnostic sentinels are
// shown as warnings, unset fields as informational placeholders, and
// when parsing was not fully successful the raw reply is printed for
// manual inspection.
func renderAnalysis(a *analyze.Analysis, showRaw bool) {
	fmt.Println()
	utils.PrintHeading("Analysis Results")
	fmt.Println(metaStyle.Render(fmt.Sprintf("%s · %s · %s · %s",
		a.ID, a.Model, a.Language, a.Elapsed.Round(time.Millisecond))))

	if a.Blocked {
		utils.PrintError("The reply was empty or blocked by the provider's safety filters.")
		return
	}

	renderer := newMarkdownRenderer()

	// Error Details
	fmt.Println(sectionStyle.Render("🧐 Error Details"))
	switch {
	case critique.IsDiagnostic(a.Result.ErrorDetails):
		utils.PrintWarning(a.Result.ErrorDetails)
	case a.Result.ErrorDetails != "":
		printMarkdown(renderer, a.Result.ErrorDetails)
	default:
		utils.PrintInfo("No error details provided or extracted.")
	}

	// Corrected Code
	fmt.Println(sectionStyle.Render("✨ Corrected Code"))
	switch {
	case critique.IsDiagnostic(a.Result.CorrectedCode):
		utils.PrintWarning(a.Result.CorrectedCode)
	case a.Result.CorrectedCode != "":
		printCode(renderer, a.Result.CorrectedCode, a.Language)
	default:
		utils.PrintInfo("No corrected code provided or extracted.")
	}

	// Suggestions
	fmt.Println(sectionStyle.Render("💡 Suggestions"))
	switch {
	case critique.IsDiagnostic(a.Result.Suggestions):
		utils.PrintWarning(a.Result.Suggestions)
	case a.Result.Suggestions != "":
		printMarkdown(renderer, a.Result.Suggestions)
	default:
		utils.PrintInfo("No suggestions provided or extracted.")
	}

	if !a.Result.Success {
		fmt.Println()
		utils.PrintWarning("The reply format didn't fully match expectations, so parsing may be incomplete. Raw reply below for reference.")
		showRaw = true
	}

	if showRaw && a.Raw != "" {
		fmt.Println(sectionStyle.Render("Raw Reply"))
		utils.PrintDivider()
		fmt.Println(wordwrap.String(a.Raw, renderWidth))
		utils.PrintDivider()
	}
}

func newMarkdownRenderer() *glamour.TermRenderer {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(renderWidth),
	)
	return r
}

// printMarkdown renders markdown through glamour, falling back to
// wrapped plain text when rendering fails.
func printMarkdown(r *glamour.TermRenderer, content string) {
	if r != nil {
		if out, err := r.Render(content); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(wordwrap.String(content, renderWidth))
}

// printCode renders the corrected code as a fenced block so glamour
// applies syntax highlighting.
func printCode(r *glamour.TermRenderer, code, language string) {
	if r != nil {
		fenced := fmt.Sprintf("```%s\n%s\n```", lang.FenceTag(language), code)
		if out, err := r.Render(fenced); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(utils.CodeBlock(strings.TrimRight(code, "\n")))
}
