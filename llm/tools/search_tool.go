package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
)

// searchDescription is the detailed tool description for the AI
const searchDescription = `Performs a web search to find books, reviews, ratings, awards and literary news.

BEFORE USING:
- Use specific, focused queries (genre + theme, author name, "best ... books 2024")
- Search again for details of a single title (page count, series, adaptations)

CAPABILITIES:
- Returns title, URL, and snippet for each result

PARAMETERS:
- query (required): The search keywords or question
- max_results (optional): Maximum results (default: 5, max: 20)

EXAMPLES:
- Discover titles: {"query": "best time travel science fiction novels"}
- Book details: {"query": "Kindred Octavia Butler page count awards"}
- Reviews: {"query": "Project Hail Mary reviews goodreads rating"}`

// SearchTool is the web_search tool backed by a Searcher.
type SearchTool struct {
	searcher   Searcher
	maxResults int
}

// NewSearchTool creates a search tool; maxResults is used when the model does not ask for
// a specific number.
func NewSearchTool(searcher Searcher, maxResults int) *SearchTool {
	if maxResults <= 0 {
		maxResults = DefaultSearchMaxResults
	}
	return &SearchTool{searcher: searcher, maxResults: maxResults}
}

// Run performs one search and formats the results for the model.
func (s *SearchTool) Run(ctx context.Context, params SearchToolParams) (string, error) {
	if strings.TrimSpace(params.Query) == "" {
		return Error("query parameter is required")
	}

	maxResults := params.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}
	if maxResults > MaxSearchMaxResults {
		maxResults = MaxSearchMaxResults
	}

	results, err := s.searcher.Search(ctx, params.Query, maxResults)
	if err != nil {
		return Error(fmt.Sprintf("search failed: %v", err))
	}

	if len(results) == 0 {
		return Success(fmt.Sprintf("No results found for '%s'", params.Query),
			&Metadata{Provider: s.searcher.Name()})
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d search results for '%s':\n\n", len(results), params.Query))
	urls := make([]string, 0, len(results))
	for _, res := range results {
		sb.WriteString(fmt.Sprintf("- **%s**\n", res.Title))
		sb.WriteString(fmt.Sprintf("  URL: %s\n", res.Link))
		sb.WriteString(fmt.Sprintf("  Snippet: %s\n\n", res.Snippet))
		urls = append(urls, res.Link)
	}

	return Success(sb.String(), &Metadata{
		Provider:   s.searcher.Name(),
		MatchCount: len(results),
		URLs:       urls,
	})
}

// Tool wraps the search tool for an eino agent.
func (s *SearchTool) Tool() (tool.InvokableTool, error) {
	t, err := utils.InferTool(SearchToolName, searchDescription, s.Run)
	if err != nil {
		return nil, fmt.Errorf("failed to create search tool: %w", err)
	}
	return t, nil
}

// NewSearcher picks Tavily when an API key is configured and DuckDuckGo otherwise.
func NewSearcher(tavilyAPIKey, tavilyDepth string) Searcher {
	if tavilyAPIKey != "" {
		return NewTavily(tavilyAPIKey, tavilyDepth)
	}
	return NewDuckDuckGo()
}
