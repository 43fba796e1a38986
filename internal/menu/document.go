// Package menu turns menu listing and detail pages into lookup results.
//
// Every extraction here follows one rule: scan candidates linearly, the first
// structural match wins, and absence is an empty result rather than an error.
//
// Candidates are visited in document order. goquery's Find walks the parsed
// tree depth-first in pre-order, so an element is visited before its
// descendants and before its following siblings, which is the order in which
// its start tag appears in the source. HarvestLinks and FindDescription rely
// on that order and it is covered by tests.
package menu

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// parseDocument parses raw markup leniently. Empty or malformed input yields
// a document with no matching elements, never an error.
func parseDocument(raw []byte) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		log.Debug().Err(err).Msg("Markup could not be parsed, using empty document")
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return doc
}

// firstMatch returns the first selection element accepted by match
func firstMatch(sel *goquery.Selection, match func(*goquery.Selection) bool) (*goquery.Selection, bool) {
	var found *goquery.Selection
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if match(s) {
			found = s
			return false
		}
		return true
	})
	return found, found != nil
}
