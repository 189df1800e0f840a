// Package epguides scrapes show and episode data from epguides.com.
// It implements the metadata.Provider contract; nothing outside this
// package touches the HTML.
package epguides

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/avast/retry-go/v4"

	"github.com/vmunix/renamarr/internal/catalog"
)

// DefaultBaseURL is the production epguides endpoint.
const DefaultBaseURL = "https://epguides.com"

const userAgent = "renamarr/1.0 (+https://github.com/vmunix/renamarr)"

// Client fetches and parses epguides pages.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
}

// NewClient creates an epguides client. An empty baseURL uses
// DefaultBaseURL; tests point it at a local server.
func NewClient(baseURL string, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// FetchShowList scrapes the alphabetical menu pages and returns every
// listed show. Radio-only entries are skipped.
func (c *Client) FetchShowList(ctx context.Context) ([]*catalog.Show, error) {
	var shows []*catalog.Show

	for letter := 'a'; letter <= 'z'; letter++ {
		doc, err := c.fetch(ctx, fmt.Sprintf("%s/menu%c/", c.baseURL, letter))
		if err != nil {
			return nil, fmt.Errorf("menu page %c: %w", letter, err)
		}

		doc.Find("div.cont li a").Each(func(_ int, a *goquery.Selection) {
			title := strings.TrimSpace(a.Text())
			href, ok := a.Attr("href")
			if title == "" || !ok || strings.HasSuffix(title, " [radio]") {
				return
			}
			shows = append(shows, &catalog.Show{
				Title:     title,
				SourceRef: c.baseURL + "/" + strings.TrimLeft(strings.TrimPrefix(href, ".."), "/"),
			})
		})
	}

	if len(shows) == 0 {
		return nil, fmt.Errorf("no shows found at %s", c.baseURL)
	}
	return shows, nil
}

// FetchEpisodes scrapes the episode table of one show page. Episodes are
// numbered per season in table order; "Special" sections map to season 0.
func (c *Client) FetchEpisodes(ctx context.Context, sourceRef string) ([]*catalog.Episode, error) {
	doc, err := c.fetch(ctx, sourceRef)
	if err != nil {
		return nil, err
	}

	var episodes []*catalog.Episode
	season := 0
	number := 0

	doc.Find("#eplist tr").Each(func(_ int, row *goquery.Selection) {
		if header := strings.TrimSpace(row.Find("td.bold").First().Text()); header != "" {
			season = parseSeasonHeader(header)
			number = 0
			return
		}

		title := strings.TrimSpace(row.Find("td.eptitle a").First().Text())
		if title == "" {
			return
		}
		number++
		episodes = append(episodes, &catalog.Episode{
			Season:  season,
			Number:  number,
			Title:   title,
			AirDate: parseAirDate(row),
		})
	})

	if len(episodes) == 0 {
		return nil, fmt.Errorf("no episode list at %s", sourceRef)
	}
	return episodes, nil
}

func (c *Client) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	return retry.DoWithData(
		func() (*goquery.Document, error) { return c.get(ctx, url) },
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.Warn("retrying fetch", "url", url, "attempt", n+1, "error", err)
		}),
	)
}

func (c *Client) get(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// parseSeasonHeader maps "Season 3" to 3 and special sections to 0.
func parseSeasonHeader(header string) int {
	var n int
	if _, err := fmt.Sscanf(header, "Season %d", &n); err == nil {
		return n
	}
	return 0
}

// airDateLayouts covers the date formats epguides uses in episode rows.
var airDateLayouts = []string{"02 Jan 06", "2 Jan 06", "02/Jan/06"}

func parseAirDate(row *goquery.Selection) *time.Time {
	var found *time.Time
	row.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		text := strings.TrimSpace(td.Text())
		for _, layout := range airDateLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				found = &t
				return false
			}
		}
		return true
	})
	return found
}
