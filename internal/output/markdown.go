package output

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// Markdown converts a description's inner HTML to Markdown, keeping
// emphasis and links that the plain text drops.
func Markdown(fragment string) (string, error) {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	out, err := converter.ConvertString(fragment)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
