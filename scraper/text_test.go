package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// TestStrippedText_JoinsTrimmedFragments verifies fragments are trimmed and
// concatenated
func TestStrippedText_JoinsTrimmedFragments(t *testing.T) {
	doc := parse(t, `<div id="m">
		use <b> SORT BY </b>
		<!-- hidden -->
		please
	</div>`)

	assert.Equal(t, "useSORT BYplease", StrippedText(doc.Find("#m")))
}

// TestStrippedText_Empty verifies an element without text
func TestStrippedText_Empty(t *testing.T) {
	doc := parse(t, `<div id="m">   <br>  </div>`)

	assert.Equal(t, "", StrippedText(doc.Find("#m")))
}

// TestTextOr_Fallback verifies fallback when the selector does not match
func TestTextOr_Fallback(t *testing.T) {
	doc := parse(t, `<div><a class="username"> Jo </a></div>`)

	assert.Equal(t, "Jo", TextOr(doc.Selection, "a.username", "Unknown"))
	assert.Equal(t, "Unknown", TextOr(doc.Selection, "a.missing", "Unknown"))
}

// TestResolveURL verifies relative and absolute references
func TestResolveURL(t *testing.T) {
	tests := []struct {
		base string
		ref  string
		want string
	}{
		{"https://forum.example/forums/fox.184/", "/threads/1/", "https://forum.example/threads/1/"},
		{"https://forum.example/forums/fox.184/", "page-2", "https://forum.example/forums/fox.184/page-2"},
		{"http://site.example/foxst-01.htm", "pics/a.gif", "http://site.example/pics/a.gif"},
		{"http://site.example/foxst-01.htm", "https://cdn.example/x.png", "https://cdn.example/x.png"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ResolveURL(tt.base, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestWithDefaults_FillsEmptySelectors verifies partial configs keep overrides
func TestWithDefaults_FillsEmptySelectors(t *testing.T) {
	cfg := ListConfig{ItemSelector: "li.thread", MaxPages: 0}.WithDefaults()

	assert.Equal(t, "li.thread", cfg.ItemSelector)
	assert.Equal(t, DefaultListConfig().PaginationSelector, cfg.PaginationSelector)
	assert.Equal(t, 0, cfg.MaxPages, "zero max pages should be kept")

	article := ArticleConfig{}.WithDefaults()
	assert.Equal(t, DefaultArticleConfig(), article)

	thread := ThreadConfig{MessageSelector: "div.body"}.WithDefaults()
	assert.Equal(t, "div.body", thread.MessageSelector)
	assert.Equal(t, "article.message", thread.PostSelector)
}
