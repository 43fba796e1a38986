package models

// MenuLink is one harvested entry of a listing page: a normalized item name
// and the site-relative path of its detail page.
type MenuLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Result is the outcome of one lookup run.
//
// An empty Description is a valid value and means the detail page carried no
// description field, or that nothing matched the search term.
type Result struct {
	Term            string   `json:"term"`
	Matched         bool     `json:"matched"`
	Link            MenuLink `json:"link"`
	URL             string   `json:"url,omitempty"`
	Description     string   `json:"description"`
	DescriptionHTML string   `json:"-"`
}

// FetchMode selects the page fetcher implementation
type FetchMode string

const (
	ModeStatic  FetchMode = "static"
	ModeBrowser FetchMode = "browser"
)

// Stage is a state of the lookup pipeline. Transitions only move forward:
//
//	Start -> ListingFetched -> LinksHarvested -> Matched -> DetailFetched -> DescriptionExtracted -> Done
//	                                          \-> NoMatch -> Done
type Stage int

const (
	StageStart Stage = iota
	StageListingFetched
	StageLinksHarvested
	StageMatched
	StageNoMatch
	StageDetailFetched
	StageDescriptionExtracted
	StageDone
)

var stageNames = [...]string{
	StageStart:                "start",
	StageListingFetched:       "listing_fetched",
	StageLinksHarvested:       "links_harvested",
	StageMatched:              "matched",
	StageNoMatch:              "no_match",
	StageDetailFetched:        "detail_fetched",
	StageDescriptionExtracted: "description_extracted",
	StageDone:                 "done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
