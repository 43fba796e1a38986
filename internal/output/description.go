package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/law-makers/menulookup/pkg/models"
)

// WriteDescription prints a lookup result. Text and markdown print only the
// description followed by a newline, so a miss prints an empty line.
func WriteDescription(w io.Writer, result *models.Result, format Format) error {
	if result == nil {
		result = &models.Result{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatMarkdown:
		text := result.Description
		if result.DescriptionHTML != "" {
			md, err := Markdown(result.DescriptionHTML)
			if err != nil {
				return fmt.Errorf("failed to convert description: %w", err)
			}
			text = md
		}
		_, err := fmt.Fprintln(w, text)
		return err
	default:
		_, err := fmt.Fprintln(w, result.Description)
		return err
	}
}
