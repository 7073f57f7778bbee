package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
)

const (
	// FetchToolName is the name of the fetch tool
	FetchToolName = "fetch"

	// DefaultFetchTimeout is the default request timeout in seconds
	DefaultFetchTimeout = 30
	// MaxFetchTimeout is the maximum allowed timeout in seconds
	MaxFetchTimeout = 120
	// MaxReadSize is the maximum response size (5MB)
	MaxReadSize = int64(5 * 1024 * 1024)
	// MaxContentChars caps what is handed back to the model
	MaxContentChars = 20000
)

// FetchToolParams defines the arguments for the fetch tool.
type FetchToolParams struct {
	URL     string `json:"url" jsonschema:"description=The URL to fetch content from. Must start with http:// or https://"`
	Format  string `json:"format,omitempty" jsonschema:"description=The format to return the content in (text or markdown). Default is markdown.,enum=text,enum=markdown"`
	Timeout int    `json:"timeout,omitempty" jsonschema:"description=Optional timeout in seconds (default: 30, max: 120)"`
}

// fetchDescription is the detailed tool description for the AI
const fetchDescription = `Fetch a web page (book review, publisher page, award list) and return its readable content.

BEFORE USING:
- Only fetch URLs returned by web_search
- Fetch several URLs in one response when comparing books

SUPPORTED FORMATS:
- markdown: HTML converted to markdown (default)
- text:     Plain text extraction

PARAMETERS:
- url (required): The URL to fetch (must start with http:// or https://)
- format (optional): text or markdown (default: markdown)
- timeout (optional): Timeout in seconds (default: 30, max: 120)`

// FetchToolFunc fetches a URL and converts the page to text or markdown.
func FetchToolFunc(ctx context.Context, params FetchToolParams) (string, error) {
	if params.URL == "" {
		return Error("URL parameter is required")
	}
	if !strings.HasPrefix(params.URL, "http://") && !strings.HasPrefix(params.URL, "https://") {
		return Error("URL must start with http:// or https://")
	}

	format := strings.ToLower(params.Format)
	if format == "" {
		format = "markdown"
	}
	if format != "text" && format != "markdown" {
		return Error("format must be one of: text, markdown")
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if timeout > MaxFetchTimeout {
		timeout = MaxFetchTimeout
	}

	client := &http.Client{Timeout: time.Duration(timeout) * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, params.URL, nil)
	if err != nil {
		return Error(fmt.Sprintf("failed to create request: %v", err))
	}
	setRandomizedHeaders(req)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return Error(fmt.Sprintf("failed to fetch URL: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxReadSize))
	if err != nil {
		return Error(fmt.Sprintf("failed to read response: %v", err))
	}

	content := string(body)
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		if format == "text" {
			content, err = extractTextFromHTML(content)
		} else {
			content, err = convertHTMLToMarkdown(content)
		}
		if err != nil {
			return Error(fmt.Sprintf("failed to convert page: %v", err))
		}
	}

	if len(content) > MaxContentChars {
		content = content[:MaxContentChars] + fmt.Sprintf("\n\n[Content truncated to %d chars]", MaxContentChars)
	}

	meta := &Metadata{
		URL:        params.URL,
		StatusCode: resp.StatusCode,
		Duration:   time.Since(start).Milliseconds(),
	}
	if resp.StatusCode != http.StatusOK {
		return Partial(content, meta)
	}
	return Success(content, meta)
}

// stripNoise removes elements that never carry book information.
func stripNoise(doc *goquery.Document) {
	doc.Find("script, style, noscript, nav, header, footer, iframe, svg, form").Remove()
}

func extractTextFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	stripNoise(doc)

	text := doc.Find("body").Text()
	return strings.Join(strings.Fields(text), " "), nil
}

func convertHTMLToMarkdown(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	stripNoise(doc)

	converter := md.NewConverter("", true, nil)
	markdown := converter.Convert(doc.Selection)

	// Drop blank lines
	lines := strings.Split(markdown, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return strings.Join(result, "\n"), nil
}

// NewFetchTool returns the fetch tool.
func NewFetchTool() (tool.InvokableTool, error) {
	t, err := utils.InferTool(FetchToolName, fetchDescription, FetchToolFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to create fetch tool: %w", err)
	}
	return t, nil
}
