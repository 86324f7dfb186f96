package ingest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-extractor/internal/core/ingest"
	"recipe-extractor/internal/infrastructure/config"
)

const samplePage = `<html><head><style>.x{color:red}</style></head>
<body>
<nav>Home | Recipes | About</nav>
<article>
<h1>Honey Garlic Chicken</h1>
<p>A quick weeknight dinner.</p>
<h2>Ingredients</h2>
<ul>
<li>2 lbs chicken breast</li>
<li>1/2 cup honey</li>
</ul>
<h2>Instructions</h2>
<p>Mix the honey and cook the chicken.</p>
</article>
<footer>Copyright</footer>
</body></html>`

func newFetcher() *ingest.Fetcher {
	return ingest.NewFetcher(&config.Config{
		Ingest: config.IngestConfig{
			Timeout:      2 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
	})
}

func TestFetchText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	text, err := newFetcher().FetchText(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "Honey Garlic Chicken")
	assert.Contains(t, text, "2 lbs chicken breast")
	assert.Contains(t, text, "Ingredients")
	// 導覽與版權這類雜訊不得出現
	assert.NotContains(t, text, "Home | Recipes")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "color:red")
}

func TestFetchText_InvalidScheme(t *testing.T) {
	_, err := newFetcher().FetchText(context.Background(), "ftp://example.com/recipe")
	assert.Error(t, err)
}

func TestFetchText_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newFetcher().FetchText(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestExtractReadableText_LineStructure(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(samplePage))
	require.NoError(t, err)

	text := ingest.ExtractReadableText(doc)
	lines := strings.Split(text, "\n")

	// 標題與食材各自成行
	assert.Contains(t, lines, "Honey Garlic Chicken")
	assert.Contains(t, lines, "2 lbs chicken breast")
	assert.Contains(t, lines, "1/2 cup honey")
}
