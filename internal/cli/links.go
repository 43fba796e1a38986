package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/law-makers/menulookup/internal/output"
	"github.com/law-makers/menulookup/internal/reqctx"
	"github.com/spf13/cobra"
)

func newLinksCommand() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "links",
		Short: "List the menu items found on the listing page",
		Long: `Fetches the menu listing page and prints every labeled link as
"name<TAB>path", in the order the search uses to pick a match.`,
		Example: `  menulookup links
  menulookup links --format=json -o menu.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := GetApp(cmd)
			if a == nil {
				return fmt.Errorf("application not initialized")
			}

			f, err := output.ParseFormat(format, output.FormatText, output.FormatJSON, output.FormatCSV)
			if err != nil {
				return err
			}

			links, err := a.Lookup(nil).Listing(reqctx.WithRun(cmd.Context()))
			if err != nil {
				return err
			}

			write := func(w io.Writer) error {
				return output.WriteLinks(w, links, f)
			}
			if out == "" {
				err = write(cmd.OutOrStdout())
			} else {
				err = writeFile(out, write)
			}
			if err != nil {
				return fmt.Errorf("failed to write links: %w", err)
			}
			if out != "" {
				a.Logger.Info().Str("file", out).Int("links", links.Len()).Msg("Output saved")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or csv")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

// writeFile creates path and fills it with write. The file is removed when
// writing or closing fails.
func writeFile(path string, write func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
