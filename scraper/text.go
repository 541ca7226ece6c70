package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StrippedText returns the text of every text node under the selection, each
// trimmed of surrounding whitespace, with empty fragments dropped and the rest
// concatenated without a separator.
func StrippedText(s *goquery.Selection) string {
	var b strings.Builder
	collectStripped(s, &b)
	return b.String()
}

func collectStripped(s *goquery.Selection, b *strings.Builder) {
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "#text":
			if t := strings.TrimSpace(child.Text()); t != "" {
				b.WriteString(t)
			}
		case "#comment":
			// skip
		default:
			collectStripped(child, b)
		}
	})
}

// TextOr returns the stripped text of the first match of selector under s,
// or fallback when nothing matches.
func TextOr(s *goquery.Selection, selector, fallback string) string {
	found := s.Find(selector).First()
	if found.Length() == 0 {
		return fallback
	}
	return StrippedText(found)
}

// ResolveURL resolves ref against base and returns an absolute URL.
func ResolveURL(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	refURL, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("invalid reference URL: %w", err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}
