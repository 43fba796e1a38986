package menu

import (
	"context"
	"fmt"
	"strings"

	"github.com/law-makers/menulookup/internal/fetch"
	"github.com/law-makers/menulookup/internal/reqctx"
	"github.com/law-makers/menulookup/pkg/models"
	"github.com/rs/zerolog"
)

// Options configures a Lookup
type Options struct {
	// BaseURL is prepended verbatim to harvested paths.
	BaseURL string
	// MenuURL is the listing page.
	MenuURL string
	// UserAgent identifies every request.
	UserAgent string
	Logger    *zerolog.Logger
	// Observer, when set, is called on every pipeline stage transition.
	Observer func(models.Stage)
}

// Lookup runs the listing -> match -> detail pipeline. It holds no state
// between runs; each call builds and discards its own mapping.
type Lookup struct {
	fetcher fetch.Fetcher
	opts    Options
	logger  zerolog.Logger
}

// NewLookup creates a Lookup that fetches pages through f
func NewLookup(f fetch.Fetcher, opts Options) *Lookup {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Lookup{fetcher: f, opts: opts, logger: logger}
}

// Match returns the first entry, in insertion order, whose name contains the
// lowercased term. An empty term matches the first entry.
func Match(links *models.Links, term string) (models.MenuLink, bool) {
	needle := strings.ToLower(term)
	for _, link := range links.All() {
		if strings.Contains(link.Name, needle) {
			return link, true
		}
	}
	return models.MenuLink{}, false
}

// DetailURL joins the base URL and a harvested path without any normalization
func DetailURL(baseURL, path string) string {
	return baseURL + path
}

// Run fetches the listing page, harvests its links and describes the first
// entry matching term. Transport failures abort the run.
func (l *Lookup) Run(ctx context.Context, term string) (*models.Result, error) {
	links, err := l.Listing(ctx)
	if err != nil {
		return nil, err
	}
	return l.Describe(ctx, links, term)
}

// Listing fetches and harvests the listing page
func (l *Lookup) Listing(ctx context.Context) (*models.Links, error) {
	l.transition(ctx, models.StageStart)

	raw, err := l.fetcher.Fetch(ctx, l.opts.MenuURL, l.opts.UserAgent)
	if err != nil {
		return nil, reqctx.Wrap(ctx, fmt.Errorf("failed to fetch listing page: %w", err))
	}
	l.transition(ctx, models.StageListingFetched)

	links := HarvestLinks(raw)
	l.log(ctx).Debug().
		Int("links", links.Len()).
		Str("url", l.opts.MenuURL).
		Msg("Harvested menu links")
	l.transition(ctx, models.StageLinksHarvested)

	return links, nil
}

// Describe selects the entry matching term and extracts its description.
// Without a match no detail page is fetched and the description is empty.
func (l *Lookup) Describe(ctx context.Context, links *models.Links, term string) (*models.Result, error) {
	result := &models.Result{Term: term}

	link, ok := Match(links, term)
	if !ok {
		l.log(ctx).Info().Str("term", term).Int("links", links.Len()).Msg("No menu item matches search term")
		l.transition(ctx, models.StageNoMatch)
		l.transition(ctx, models.StageDone)
		return result, nil
	}
	l.transition(ctx, models.StageMatched)

	result.Matched = true
	result.Link = link
	result.URL = DetailURL(l.opts.BaseURL, link.URL)

	l.log(ctx).Debug().
		Str("term", term).
		Str("name", link.Name).
		Str("url", result.URL).
		Msg("Matched menu item")

	raw, err := l.fetcher.Fetch(ctx, result.URL, l.opts.UserAgent)
	if err != nil {
		return nil, reqctx.Wrap(ctx, fmt.Errorf("failed to fetch detail page for %q: %w", link.Name, err))
	}
	l.transition(ctx, models.StageDetailFetched)

	result.Description, result.DescriptionHTML = extract(raw)
	if result.Description == "" {
		l.log(ctx).Info().Str("url", result.URL).Msg("Detail page has no description")
	}
	l.transition(ctx, models.StageDescriptionExtracted)
	l.transition(ctx, models.StageDone)

	return result, nil
}

func (l *Lookup) log(ctx context.Context) *zerolog.Logger {
	logger := l.logger.With().
		Str("run_id", reqctx.FromContext(ctx).RunID).
		Str("fetcher", l.fetcher.Name()).
		Logger()
	return &logger
}

func (l *Lookup) transition(ctx context.Context, stage models.Stage) {
	l.log(ctx).Debug().Stringer("stage", stage).Msg("Pipeline stage")
	if l.opts.Observer != nil {
		l.opts.Observer(stage)
	}
}
