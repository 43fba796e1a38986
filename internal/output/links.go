package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/law-makers/menulookup/pkg/models"
)

// WriteLinks prints harvested links in document order
func WriteLinks(w io.Writer, links *models.Links, format Format) error {
	entries := links.All()
	if entries == nil {
		entries = []models.MenuLink{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatCSV:
		writer := csv.NewWriter(w)
		if err := writer.Write([]string{"name", "url"}); err != nil {
			return err
		}
		for _, e := range entries {
			if err := writer.Write([]string{e.Name, e.URL}); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	default:
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", e.Name, e.URL); err != nil {
				return err
			}
		}
		return nil
	}
}
