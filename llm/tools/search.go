package tools

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"
)

const (
	// SearchToolName is the name of the search tool
	SearchToolName = "web_search"

	// DefaultSearchMaxResults is the default maximum number of search results
	DefaultSearchMaxResults = 5
	// MaxSearchMaxResults is the maximum allowed results
	MaxSearchMaxResults = 20
	// SearchTimeout is the timeout for search requests
	SearchTimeout = 30 * time.Second
	// MinSearchInterval is the minimum interval between DuckDuckGo searches
	MinSearchInterval = 500 * time.Millisecond

	duckDuckGoLiteURL = "https://lite.duckduckgo.com/lite/"
)

// SearchToolParams defines the parameters for the search tool
type SearchToolParams struct {
	Query      string `json:"query" jsonschema:"description=The search keywords or question to look for on the web"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"description=Maximum number of search results to return (default: 5, max: 20)"`
}

// SearchResult represents a single search result
type SearchResult struct {
	Title    string
	Link     string
	Snippet  string
	Position int
}

// Searcher is a web search backend.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
}

// DuckDuckGo searches DuckDuckGo Lite. It needs no API key and is used when Tavily is
// not configured.
type DuckDuckGo struct {
	client  *http.Client
	baseURL string

	mu       sync.Mutex
	last     time.Time
	minDelay time.Duration
}

// NewDuckDuckGo creates a DuckDuckGo Lite searcher.
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		client:   &http.Client{Timeout: SearchTimeout},
		baseURL:  duckDuckGoLiteURL,
		minDelay: MinSearchInterval,
	}
}

// Name implements Searcher.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search implements Searcher.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	d.maybeDelay()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	setRandomizedHeaders(req)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed with status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return parseLiteSearchResults(string(body), maxResults)
}

// maybeDelay enforces a jittered minimum interval between searches
func (d *DuckDuckGo) maybeDelay() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.minDelay <= 0 {
		return
	}
	minGap := d.minDelay + time.Duration(rand.IntN(1500))*time.Millisecond
	if elapsed := time.Since(d.last); elapsed < minGap {
		time.Sleep(minGap - elapsed)
	}
	d.last = time.Now()
}

// setRandomizedHeaders sets randomized HTTP headers to mimic a real browser
func setRandomizedHeaders(req *http.Request) {
	req.Header.Set("User-Agent", userAgents[rand.IntN(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// parseLiteSearchResults parses DuckDuckGo Lite HTML results
func parseLiteSearchResults(htmlContent string, maxResults int) ([]SearchResult, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var results []SearchResult
	var current *SearchResult

	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "a" && hasClass(n, "result-link") {
				if current != nil && current.Link != "" {
					current.Position = len(results) + 1
					results = append(results, *current)
					if len(results) >= maxResults {
						return
					}
				}
				current = &SearchResult{Title: getTextContent(n)}
				for _, attr := range n.Attr {
					if attr.Key == "href" {
						current.Link = cleanDuckDuckGoURL(attr.Val)
						break
					}
				}
			}
			if n.Data == "td" && hasClass(n, "result-snippet") && current != nil {
				current.Snippet = getTextContent(n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if len(results) >= maxResults {
				return
			}
			traverse(c)
		}
	}

	traverse(doc)

	if current != nil && current.Link != "" && len(results) < maxResults {
		current.Position = len(results) + 1
		results = append(results, *current)
	}

	return results, nil
}

// cleanDuckDuckGoURL extracts the final URL from DuckDuckGo's redirect link
func cleanDuckDuckGoURL(rawURL string) string {
	idx := strings.Index(rawURL, "uddg=")
	if idx == -1 {
		return rawURL
	}
	encoded := rawURL[idx+5:]
	if amp := strings.Index(encoded, "&"); amp != -1 {
		encoded = encoded[:amp]
	}
	if decoded, err := url.QueryUnescape(encoded); err == nil {
		return decoded
	}
	return rawURL
}

// hasClass checks if an HTML node has a specific CSS class
func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

// getTextContent recursively extracts text content from a node
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.TextNode {
			text.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return strings.TrimSpace(text.String())
}
