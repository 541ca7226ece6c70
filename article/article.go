// Package article scrapes numbered article pages into Markdown files with
// their images saved alongside.
package article

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/foxscrape/scraper"
)

// ErrNoContainer is returned when a page has no article container.
var ErrNoContainer = errors.New("no article content found")

// BlockKind distinguishes prose from code in an article body.
type BlockKind int

const (
	TextBlock BlockKind = iota
	CodeBlock
)

// Block is one paragraph or code listing, in page order.
type Block struct {
	Kind BlockKind
	Text string
}

// Markdown renders the block. Code is wrapped in a bare fence.
func (b Block) Markdown() string {
	if b.Kind == CodeBlock {
		return "```\n" + b.Text + "\n```"
	}
	return b.Text
}

// ImageRef is an image that was saved locally.
type ImageRef struct {
	SourceURL string
	Path      string // relative to the article's output directory
}

// Markdown renders the image reference.
func (r ImageRef) Markdown() string {
	return fmt.Sprintf("![Image](%s)", r.Path)
}

// Article is a single scraped page.
type Article struct {
	Number    int
	URL       string
	Title     string
	Blocks    []Block
	ImageURLs []string   // absolute image URLs in page order
	Images    []ImageRef // images that were downloaded, in order
}

var filenameReplacer = strings.NewReplacer(
	"/", "",
	"\\", "",
	":", "",
	"*", "",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\n", "",
	"\r", "",
	" ", "_",
)

// SanitizeFilename strips characters that are not allowed in file names and
// turns spaces into underscores.
func SanitizeFilename(name string) string {
	return filenameReplacer.Replace(name)
}

// BuildURL returns the page URL for article n.
func BuildURL(base string, n int) string {
	return fmt.Sprintf("%s%02d.htm", base, n)
}

// Filename returns the Markdown file name for the article.
func (a *Article) Filename() string {
	return SanitizeFilename(a.Title) + ".md"
}

// Markdown renders the article: an H1 title followed by every block and
// image reference separated by blank lines.
func (a *Article) Markdown() string {
	parts := make([]string, 0, len(a.Blocks)+len(a.Images))
	for _, block := range a.Blocks {
		parts = append(parts, block.Markdown())
	}
	for _, img := range a.Images {
		parts = append(parts, img.Markdown())
	}
	return "# " + a.Title + "\n\n" + strings.Join(parts, "\n\n")
}

// Extract pulls the title, body blocks and image URLs out of doc. pageURL is
// used to resolve relative image sources and n names the fallback title.
func Extract(doc *goquery.Document, config scraper.ArticleConfig, pageURL string, n int) (*Article, error) {
	config = config.WithDefaults()

	container := doc.Find(config.ContainerSelector).First()
	if container.Length() == 0 {
		return nil, ErrNoContainer
	}

	article := &Article{
		Number: n,
		URL:    pageURL,
	}

	title := container.Find(config.TitleSelector).First()
	if title.Length() > 0 {
		article.Title = scraper.StrippedText(title)
	}
	if article.Title == "" { // an empty h1 would name the file ".md"
		article.Title = fmt.Sprintf("Article_%d", n)
	}

	container.Find(config.BlockSelector).Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "pre":
			article.Blocks = append(article.Blocks, Block{Kind: CodeBlock, Text: s.Text()})
		case "code":
			if config.SkipNestedCode && s.ParentsFiltered("pre").Length() > 0 {
				return
			}
			article.Blocks = append(article.Blocks, Block{Kind: CodeBlock, Text: s.Text()})
		default:
			article.Blocks = append(article.Blocks, Block{Kind: TextBlock, Text: s.Text()})
		}
	})

	container.Find(config.ImageSelector).Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			return
		}
		abs, err := scraper.ResolveURL(pageURL, src)
		if err != nil {
			return
		}
		article.ImageURLs = append(article.ImageURLs, abs)
	})

	return article, nil
}
