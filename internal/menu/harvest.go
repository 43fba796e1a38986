package menu

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/menulookup/pkg/models"
)

const (
	labelAttr = "aria-label"
	hrefAttr  = "href"

	// labelSeparator is stripped from labels, so "Margherita, Pizza"
	// becomes "margheritapizza".
	labelSeparator = ", "
)

// NormalizeName turns a hyperlink's accessible label into a lookup key
func NormalizeName(label string) string {
	return strings.ToLower(strings.ReplaceAll(label, labelSeparator, ""))
}

// HarvestLinks collects every labeled hyperlink of a listing page.
//
// Anchors without an aria-label are skipped. The href is kept verbatim and
// may be empty. When two anchors normalize to the same name the later href
// wins. A page without labeled anchors yields an empty mapping.
func HarvestLinks(raw []byte) *models.Links {
	links := models.NewLinks()

	parseDocument(raw).Find("a").Each(func(_ int, a *goquery.Selection) {
		label, ok := a.Attr(labelAttr)
		if !ok {
			return
		}
		href, _ := a.Attr(hrefAttr)
		links.Set(NormalizeName(label), href)
	})

	return links
}
