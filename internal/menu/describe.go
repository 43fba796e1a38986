package menu

import (
	"github.com/PuerkitoBio/goquery"
)

const (
	roleAttr         = "itemprop"
	descriptionValue = "description"
)

// FindDescription returns the first <p itemprop="description"> of doc
func FindDescription(doc *goquery.Document) (*goquery.Selection, bool) {
	if doc == nil {
		return nil, false
	}
	return firstMatch(doc.Find("p"), func(p *goquery.Selection) bool {
		role, ok := p.Attr(roleAttr)
		return ok && role == descriptionValue
	})
}

// ExtractDescription returns the text of a detail page's description
// paragraph, or "" when there is none.
func ExtractDescription(raw []byte) string {
	text, _ := extract(raw)
	return text
}

// extract returns both the text and the inner markup of the description
func extract(raw []byte) (text, markup string) {
	p, ok := FindDescription(parseDocument(raw))
	if !ok {
		return "", ""
	}
	markup, err := p.Html()
	if err != nil {
		markup = ""
	}
	return p.Text(), markup
}
