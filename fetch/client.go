// Package fetch issues the HTTP requests for both scrapers. It validates the
// response status, decodes the body to UTF-8, and paces successive requests
// through a single rate limiter.
package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/corpix/uarand"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"
)

// DefaultUserAgent identifies the scraper to the sites it reads.
const DefaultUserAgent = "foxscrape/1.0 (batch article and forum scraper)"

// RandomUserAgent asks NewClient to pick a browser User-Agent string.
const RandomUserAgent = "random"

// HTTPError reports a response whose status was not 200 OK.
type HTTPError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Options configures a Client.
type Options struct {
	// UserAgent sent with every request. Empty uses DefaultUserAgent and
	// RandomUserAgent picks one browser string for the life of the client.
	UserAgent string
	// Timeout per request; zero disables it.
	Timeout time.Duration
	// Delay is the minimum spacing between two requests made through the
	// client. Zero means no pacing.
	Delay time.Duration
	// Charset used to decode HTML when the response does not declare one.
	// Empty leaves the body as is.
	Charset string
}

// Client fetches HTML pages and binary files.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	charset    string
}

// NewClient creates a client from opts.
func NewClient(opts Options) *Client {
	userAgent := opts.UserAgent
	switch userAgent {
	case "":
		userAgent = DefaultUserAgent
	case RandomUserAgent:
		userAgent = uarand.GetRandom()
	}

	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		userAgent:  userAgent,
		limiter:    rate.NewLimiter(limit, 1),
		charset:    opts.Charset,
	}
}

// UserAgent returns the User-Agent header the client sends.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// get waits for the limiter, performs a GET and checks for 200 OK. The caller
// owns the returned body.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	return resp, nil
}

// FetchHTML fetches url and parses the response as HTML.
func (c *Client) FetchHTML(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body := c.decoder(resp)

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

// Download streams url into the file at dest, creating the parent directory
// when the response is 200 OK. It returns the number of bytes written. On a
// non-200 status nothing is created.
func (c *Client) Download(ctx context.Context, url, dest string) (int64, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	n, err := io.Copy(file, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to write file: %w", err)
	}

	return n, nil
}

// decoder wraps the response body in a UTF-8 decoder. The charset comes from
// the Content-Type header, a BOM or a <meta> tag, in that order. When none
// declares one the configured charset applies, and without one the body is
// sniffed.
func (c *Client) decoder(resp *http.Response) io.Reader {
	body := bufio.NewReader(resp.Body)
	head, _ := body.Peek(1024)

	enc, _, certain := charset.DetermineEncoding(head, resp.Header.Get("Content-Type"))
	if !certain && c.charset != "" {
		fallback, err := htmlindex.Get(c.charset)
		if err != nil {
			log.Printf("WARN: Unknown charset %q for %s, sniffing instead", c.charset, resp.Request.URL)
		} else {
			enc = fallback
		}
	}

	return transform.NewReader(body, enc.NewDecoder())
}
