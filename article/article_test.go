package article

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/foxscrape/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

// TestSanitizeFilename verifies forbidden characters are removed and spaces
// replaced
func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Widget Guide", "Widget_Guide"},
		{`a/b\c:d*e?f"g<h>i|j`, "abcdefghij"},
		{"line\r\nbreak", "linebreak"},
		{"What's new? (Part 2)", "What's_new_(Part_2)"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

// TestSanitizeFilename_Idempotent verifies sanitizing twice changes nothing
// and no forbidden characters survive
func TestSanitizeFilename_Idempotent(t *testing.T) {
	inputs := []string{
		"Widget Guide",
		`C:\Program Files\VFP "9"`,
		"a <b> | c\n\r*?",
		"   ",
		"ünïcödé / títle",
	}

	for _, in := range inputs {
		once := SanitizeFilename(in)
		assert.Equal(t, once, SanitizeFilename(once), "input %q", in)
		assert.False(t, strings.ContainsAny(once, "/\\:*?\"<>|\n\r "), "input %q", in)
	}
}

// TestBuildURL verifies zero padding of the article number
func TestBuildURL(t *testing.T) {
	base := "http://www.ml-consult.co.uk/foxst-"

	assert.Equal(t, "http://www.ml-consult.co.uk/foxst-01.htm", BuildURL(base, 1))
	assert.Equal(t, "http://www.ml-consult.co.uk/foxst-47.htm", BuildURL(base, 47))
	assert.Equal(t, "http://www.ml-consult.co.uk/foxst-100.htm", BuildURL(base, 100))
}

// TestImageExt verifies extension derivation with the .jpg default
func TestImageExt(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://site.example/pics/diagram.gif", ".gif"},
		{"http://site.example/pics/photo.png?size=large", ".png"},
		{"http://site.example/pics/photo", ".jpg"},
		{"http://site.example/", ".jpg"},
		{"http://site.example/image.php/", ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, ImageExt(tt.url))
		})
	}
}

// TestImageFilename verifies the saved image name
func TestImageFilename(t *testing.T) {
	assert.Equal(t, "Widget_Guide_img1.gif", ImageFilename("http://x.example/a.gif", "Widget Guide", 1))
	assert.Equal(t, "Widget_Guide_img3.jpg", ImageFilename("http://x.example/a", "Widget Guide", 3))
}

// TestExtract_TextAndCode verifies blocks are kept in document order
func TestExtract_TextAndCode(t *testing.T) {
	doc := parseHTML(t, `<html><body>
		<p>outside</p>
		<div class="article">
			<h1> Widget Guide </h1>
			<p>Install the widget.</p>
			<pre>print(1)</pre>
			<p>Then inline <code>x = 1</code> code.</p>
		</div>
	</body></html>`)

	article, err := Extract(doc, scraper.DefaultArticleConfig(), "http://x.example/foxst-01.htm", 1)
	require.NoError(t, err)

	assert.Equal(t, "Widget Guide", article.Title)
	require.Len(t, article.Blocks, 4)
	assert.Equal(t, Block{Kind: TextBlock, Text: "Install the widget."}, article.Blocks[0])
	assert.Equal(t, Block{Kind: CodeBlock, Text: "print(1)"}, article.Blocks[1])
	assert.Equal(t, Block{Kind: TextBlock, Text: "Then inline x = 1 code."}, article.Blocks[2])
	assert.Equal(t, Block{Kind: CodeBlock, Text: "x = 1"}, article.Blocks[3])
}

// TestExtract_CodeInsidePre verifies both the pre and its code are fenced
func TestExtract_CodeInsidePre(t *testing.T) {
	doc := parseHTML(t, `<div class="article"><h1></h1><pre><code>SELECT 1</code></pre></div>`)

	article, err := Extract(doc, scraper.ArticleConfig{}, "http://x.example/a.htm", 1)
	require.NoError(t, err)

	require.Len(t, article.Blocks, 2)
	assert.Equal(t, "# Article_1\n\n```\nSELECT 1\n```\n\n```\nSELECT 1\n```", article.Markdown())
}

// TestExtract_SkipNestedCode verifies the opt-in pre/code dedupe
func TestExtract_SkipNestedCode(t *testing.T) {
	doc := parseHTML(t, `<div class="article"><h1>T</h1><pre><code>SELECT 1</code></pre><p>see <code>x</code></p></div>`)

	article, err := Extract(doc, scraper.ArticleConfig{SkipNestedCode: true}, "http://x.example/a.htm", 2)
	require.NoError(t, err)

	require.Len(t, article.Blocks, 3)
	assert.Equal(t, "```\nSELECT 1\n```", article.Blocks[0].Markdown())
	assert.Equal(t, Block{Kind: TextBlock, Text: "see x"}, article.Blocks[1])
	assert.Equal(t, Block{Kind: CodeBlock, Text: "x"}, article.Blocks[2])
}

// TestExtract_NoContainer verifies pages without an article container
func TestExtract_NoContainer(t *testing.T) {
	doc := parseHTML(t, `<html><body><h1>Not here</h1></body></html>`)

	_, err := Extract(doc, scraper.DefaultArticleConfig(), "http://x.example/a.htm", 3)
	assert.ErrorIs(t, err, ErrNoContainer)
}

// TestExtract_TitleFallback verifies the synthetic title
func TestExtract_TitleFallback(t *testing.T) {
	doc := parseHTML(t, `<div class="article"><p>body</p></div>`)

	article, err := Extract(doc, scraper.DefaultArticleConfig(), "http://x.example/a.htm", 7)
	require.NoError(t, err)

	assert.Equal(t, "Article_7", article.Title)
	assert.Equal(t, "Article_7.md", article.Filename())
}

// TestExtract_ImageURLs verifies image sources are resolved and empty ones
// dropped
func TestExtract_ImageURLs(t *testing.T) {
	doc := parseHTML(t, `<div class="article"><h1>T</h1>
		<img src="pics/one.gif">
		<img>
		<img src="">
		<img src="/abs/two.png">
		<img src="https://cdn.example/three">
	</div>
	<img src="outside.gif">`)

	article, err := Extract(doc, scraper.DefaultArticleConfig(), "http://x.example/dir/foxst-01.htm", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"http://x.example/dir/pics/one.gif",
		"http://x.example/abs/two.png",
		"https://cdn.example/three",
	}, article.ImageURLs)
}

// TestMarkdown verifies the rendered document
func TestMarkdown(t *testing.T) {
	article := &Article{
		Title: "Widget Guide",
		Blocks: []Block{
			{Kind: TextBlock, Text: "Install the widget."},
			{Kind: CodeBlock, Text: "print(1)"},
		},
		Images: []ImageRef{{SourceURL: "http://x.example/a.gif", Path: "images/Widget_Guide_img1.gif"}},
	}

	want := "# Widget Guide\n\nInstall the widget.\n\n```\nprint(1)\n```\n\n![Image](images/Widget_Guide_img1.gif)"
	assert.Equal(t, want, article.Markdown())
}

// TestMarkdown_Empty verifies an article with no content
func TestMarkdown_Empty(t *testing.T) {
	article := &Article{Title: "Empty"}

	assert.Equal(t, "# Empty\n\n", article.Markdown())
}
