// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/law-makers/menulookup/internal/app"
	"github.com/law-makers/menulookup/internal/config"
	"github.com/law-makers/menulookup/internal/output"
	"github.com/law-makers/menulookup/internal/reqctx"
	"github.com/law-makers/menulookup/internal/ui"
	"github.com/spf13/cobra"
)

type lookupOptions struct {
	format   string
	progress bool
}

// NewRootCommand builds the command tree. Each call returns fresh commands
// with their own flag state.
func NewRootCommand() *cobra.Command {
	opts := &lookupOptions{}

	rootCmd := &cobra.Command{
		Use:   "menulookup <search>",
		Short: "Print the description of a menu item",
		Long: `Menulookup fetches the menu listing page, finds the first item whose name
contains the search term (case-insensitive) and prints the description from
that item's detail page.

Nothing matching, or a detail page without a description, prints an empty line.`,
		Example: `  # Describe the first pizza whose name contains "margherita"
  menulookup margherita

  # Keep emphasis from the description as Markdown
  menulookup --format=markdown pepperoni

  # Render pages in headless Chrome
  menulookup --mode=browser hawaii

  # Show what the listing page offers
  menulookup links --format=csv`,
		Version:       "0.1.0",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args[0], opts)
		},
		PersistentPreRunE:  initApp,
		PersistentPostRunE: closeApp,
	}

	config.RegisterFlags(rootCmd)
	rootCmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, markdown or json")
	rootCmd.Flags().BoolVar(&opts.progress, "progress", false, "Show pipeline progress on stderr")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpFunc(customHelpFunc)

	rootCmd.AddCommand(newLinksCommand())
	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure.
// This is called by main.main().
func Execute(ctx context.Context) {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Error("Error:"), err)
		os.Exit(1)
	}
}

// initApp loads configuration and builds the application before a command runs
func initApp(cmd *cobra.Command, _ []string) error {
	if GetApp(cmd) != nil {
		return nil
	}

	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	a, err := app.NewWithWriter(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.Logger.Debug().
		Str("menu_url", cfg.MenuURL).
		Str("base_url", cfg.BaseURL).
		Str("mode", string(cfg.Mode)).
		Msg("Configuration loaded")

	SetApp(cmd, a)
	return nil
}

func closeApp(cmd *cobra.Command, _ []string) error {
	if a := GetApp(cmd); a != nil {
		return a.Close()
	}
	return nil
}

func runLookup(cmd *cobra.Command, term string, opts *lookupOptions) error {
	a := GetApp(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	format, err := output.ParseFormat(opts.format, output.FormatText, output.FormatMarkdown, output.FormatJSON)
	if err != nil {
		return err
	}

	observe, clearProgress := newProgress(cmd.ErrOrStderr(), opts.progress)
	defer clearProgress()

	ctx := reqctx.WithRun(cmd.Context())
	result, err := a.Lookup(observe).Run(ctx, term)
	if err != nil {
		return err
	}

	return output.WriteDescription(cmd.OutOrStdout(), result, format)
}
