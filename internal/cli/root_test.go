package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/law-makers/menulookup/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSite struct {
	server      *httptest.Server
	detailCalls atomic.Int32
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()

	site := &fakeSite{}
	mux := http.NewServeMux()
	mux.HandleFunc("/menu", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html><body>
			<a href="/">Home</a>
			<a aria-label="Margherita, Pizza" href="menu/margherita">Margherita</a>
			<a aria-label="Pepperoni, Pizza" href="menu/pepperoni">Pepperoni</a>
		</body></html>`)
	})
	mux.HandleFunc("/menu/margherita", func(w http.ResponseWriter, r *http.Request) {
		site.detailCalls.Add(1)
		_, _ = fmt.Fprint(w, `<p itemprop="description">Tomato <em>and</em> mozzarella.</p>`)
	})
	mux.HandleFunc("/menu/pepperoni", func(w http.ResponseWriter, r *http.Request) {
		site.detailCalls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	site.server = httptest.NewServer(mux)
	t.Cleanup(site.server.Close)
	return site
}

func (s *fakeSite) flags() []string {
	return []string{
		"--base-url", s.server.URL + "/",
		"--menu-url", s.server.URL + "/menu",
		"--timeout", "5s",
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRoot_PrintsDescription(t *testing.T) {
	site := newFakeSite(t)

	stdout, _, err := execute(t, append(site.flags(), "MARGHERITA")...)
	require.NoError(t, err)
	assert.Equal(t, "Tomato and mozzarella.\n", stdout)
}

func TestRoot_NoMatchPrintsEmptyLine(t *testing.T) {
	site := newFakeSite(t)

	stdout, _, err := execute(t, append(site.flags(), "hawaii")...)
	require.NoError(t, err)
	assert.Equal(t, "\n", stdout)
	assert.Zero(t, site.detailCalls.Load())
}

func TestRoot_MarkdownAndJSON(t *testing.T) {
	site := newFakeSite(t)

	stdout, _, err := execute(t, append(site.flags(), "--format", "markdown", "margherita")...)
	require.NoError(t, err)
	assert.Equal(t, "Tomato _and_ mozzarella.\n", stdout)

	stdout, _, err = execute(t, append(site.flags(), "--format", "json", "margherita")...)
	require.NoError(t, err)

	var result models.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.True(t, result.Matched)
	assert.Equal(t, "margheritapizza", result.Link.Name)
	assert.Equal(t, site.server.URL+"/menu/margherita", result.URL)
}

func TestRoot_TransportFailure(t *testing.T) {
	site := newFakeSite(t)

	stdout, _, err := execute(t, append(site.flags(), "pepperoni")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Empty(t, stdout)
}

func TestRoot_RequiresSearchTerm(t *testing.T) {
	_, _, err := execute(t)
	require.Error(t, err)
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	site := newFakeSite(t)

	_, _, err := execute(t, append(site.flags(), "--format", "xml", "margherita")...)
	require.Error(t, err)
}

func TestRoot_Progress(t *testing.T) {
	site := newFakeSite(t)

	stdout, stderr, err := execute(t, append(site.flags(), "--progress", "margherita")...)
	require.NoError(t, err)
	assert.Equal(t, "Tomato and mozzarella.\n", stdout)
	assert.NotEmpty(t, stderr)
}

func TestLinks(t *testing.T) {
	site := newFakeSite(t)

	stdout, _, err := execute(t, append(site.flags(), "links")...)
	require.NoError(t, err)
	assert.Equal(t, "margheritapizza\tmenu/margherita\npepperonipizza\tmenu/pepperoni\n", stdout)
	assert.Zero(t, site.detailCalls.Load())
}

func TestLinks_OutputFile(t *testing.T) {
	site := newFakeSite(t)
	path := filepath.Join(t.TempDir(), "menu.csv")

	stdout, _, err := execute(t, append(site.flags(), "links", "--format", "csv", "-o", path)...)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,url\nmargheritapizza,menu/margherita\npepperonipizza,menu/pepperoni\n", string(data))
}

func TestHelp(t *testing.T) {
	stdout, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "MENULOOKUP")
	assert.Contains(t, stdout, "links")
	assert.Contains(t, stdout, "--menu-url")
}
