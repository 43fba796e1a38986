package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/law-makers/menulookup/internal/fetch"
	"github.com/law-makers/menulookup/internal/reqctx"
	"github.com/law-makers/menulookup/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testBaseURL = "https://www.dominos.nl/"
	testMenuURL = "https://www.dominos.nl/menu"
	testUA      = "Mozilla/5.0 (X11; Linux x86_64) TestBrowser/1.0"
)

// fakeFetcher serves canned pages by URL and records every request.
type fakeFetcher struct {
	pages    map[string]string
	failures map[string]error
	calls    []string
	agents   []string
}

func (f *fakeFetcher) Name() string { return "FakeFetcher" }

func (f *fakeFetcher) Fetch(_ context.Context, url, userAgent string) ([]byte, error) {
	f.calls = append(f.calls, url)
	f.agents = append(f.agents, userAgent)
	if err, ok := f.failures[url]; ok {
		return nil, err
	}
	page, ok := f.pages[url]
	if !ok {
		return nil, fetch.StatusError(url, 404)
	}
	return []byte(page), nil
}

func newFakeSite() *fakeFetcher {
	return &fakeFetcher{
		pages: map[string]string{
			testMenuURL:                        listingHTML,
			testBaseURL + "/menu/margherita":   `<p itemprop="description">Tomato and mozzarella.</p>`,
			testBaseURL + "/menu/pepperoni":    `<p itemprop="description">Spicy pepperoni.</p>`,
			testBaseURL + "/menu/garlic-bread": `<p>No description here</p>`,
		},
		failures: map[string]error{},
	}
}

func newTestLookup(f fetch.Fetcher, observer func(models.Stage)) *Lookup {
	return NewLookup(f, Options{
		BaseURL:   testBaseURL,
		MenuURL:   testMenuURL,
		UserAgent: testUA,
		Observer:  observer,
	})
}

func TestMatch(t *testing.T) {
	links := HarvestLinks([]byte(listingHTML))

	tests := []struct {
		name     string
		term     string
		wantName string
		wantOK   bool
	}{
		{"exact prefix", "margherita", "margheritapizza", true},
		{"upper case term", "MARGHERITA", "margheritapizza", true},
		{"substring anywhere", "roni", "pepperonipizza", true},
		{"first in document order wins", "pizza", "margheritapizza", true},
		{"empty term matches first", "", "margheritapizza", true},
		{"space in name", "garlic b", "garlic bread", true},
		{"separator removed from names", "margherita, pizza", "", false},
		{"no match", "hawaii", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, ok := Match(links, tt.term)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, link.Name)
		})
	}
}

func TestMatch_EmptyMapping(t *testing.T) {
	_, ok := Match(models.NewLinks(), "")
	assert.False(t, ok)

	_, ok = Match(nil, "anything")
	assert.False(t, ok)
}

func TestDetailURL_IsLiteral(t *testing.T) {
	assert.Equal(t, "https://www.dominos.nl//menu/margherita", DetailURL(testBaseURL, "/menu/margherita"))
	assert.Equal(t, "https://www.dominos.nl/menu/a b", DetailURL(testBaseURL, "menu/a b"))
}

func TestLookup_Run(t *testing.T) {
	t.Run("match fetches detail page", func(t *testing.T) {
		site := newFakeSite()
		var stages []models.Stage

		result, err := newTestLookup(site, func(s models.Stage) { stages = append(stages, s) }).
			Run(context.Background(), "margherita")
		require.NoError(t, err)

		assert.True(t, result.Matched)
		assert.Equal(t, "margheritapizza", result.Link.Name)
		assert.Equal(t, testBaseURL+"/menu/margherita", result.URL)
		assert.Equal(t, "Tomato and mozzarella.", result.Description)
		assert.Equal(t, []string{testMenuURL, testBaseURL + "/menu/margherita"}, site.calls)
		assert.Equal(t, []string{testUA, testUA}, site.agents)
		assert.Equal(t, []models.Stage{
			models.StageStart,
			models.StageListingFetched,
			models.StageLinksHarvested,
			models.StageMatched,
			models.StageDetailFetched,
			models.StageDescriptionExtracted,
			models.StageDone,
		}, stages)
	})

	t.Run("case insensitive term", func(t *testing.T) {
		result, err := newTestLookup(newFakeSite(), nil).Run(context.Background(), "MARGHERITA")
		require.NoError(t, err)
		assert.Equal(t, "Tomato and mozzarella.", result.Description)
	})

	t.Run("no match skips detail fetch", func(t *testing.T) {
		site := newFakeSite()
		var stages []models.Stage

		result, err := newTestLookup(site, func(s models.Stage) { stages = append(stages, s) }).
			Run(context.Background(), "hawaii")
		require.NoError(t, err)

		assert.False(t, result.Matched)
		assert.Equal(t, "", result.Description)
		assert.Equal(t, "", result.URL)
		assert.Equal(t, []string{testMenuURL}, site.calls)
		assert.Equal(t, []models.Stage{
			models.StageStart,
			models.StageListingFetched,
			models.StageLinksHarvested,
			models.StageNoMatch,
			models.StageDone,
		}, stages)
	})

	t.Run("empty term selects first entry", func(t *testing.T) {
		site := newFakeSite()

		result, err := newTestLookup(site, nil).Run(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "margheritapizza", result.Link.Name)
		assert.Equal(t, "Tomato and mozzarella.", result.Description)
	})

	t.Run("detail page without description", func(t *testing.T) {
		result, err := newTestLookup(newFakeSite(), nil).Run(context.Background(), "garlic")
		require.NoError(t, err)
		assert.True(t, result.Matched)
		assert.Equal(t, "", result.Description)
	})

	t.Run("empty listing is not an error", func(t *testing.T) {
		site := newFakeSite()
		site.pages[testMenuURL] = "<html><body>Closed for maintenance</body></html>"

		result, err := newTestLookup(site, nil).Run(context.Background(), "")
		require.NoError(t, err)
		assert.False(t, result.Matched)
		assert.Len(t, site.calls, 1)
	})

	t.Run("listing transport failure aborts", func(t *testing.T) {
		site := newFakeSite()
		site.failures[testMenuURL] = fetch.NetworkError(testMenuURL, errors.New("connection refused"))

		ctx := reqctx.WithRun(context.Background())
		result, err := newTestLookup(site, nil).Run(ctx, "margherita")
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, fetch.ErrTransport)
		assert.Contains(t, err.Error(), reqctx.FromContext(ctx).RunID)
		assert.Len(t, site.calls, 1)
	})

	t.Run("detail transport failure aborts", func(t *testing.T) {
		site := newFakeSite()
		delete(site.pages, testBaseURL+"/menu/margherita")

		result, err := newTestLookup(site, nil).Run(context.Background(), "margherita")
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, fetch.ErrTransport)

		var te *fetch.TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, 404, te.StatusCode)
	})

	t.Run("idempotent", func(t *testing.T) {
		lookup := newTestLookup(newFakeSite(), nil)

		first, err := lookup.Run(context.Background(), "pepperoni")
		require.NoError(t, err)
		second, err := lookup.Run(context.Background(), "pepperoni")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, "Spicy pepperoni.", second.Description)
	})
}

func TestLookup_Listing(t *testing.T) {
	site := newFakeSite()

	links, err := newTestLookup(site, nil).Listing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"margheritapizza", "pepperonipizza", "garlic bread"}, links.Names())
	assert.Equal(t, []string{testMenuURL}, site.calls)
}
