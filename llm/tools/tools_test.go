package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const liteHTML = `<html><body><table>
<tr><td><a class="result-link" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fdune&rut=abc">Dune - Frank Herbert</a></td></tr>
<tr><td class="result-snippet">A desert planet epic.</td></tr>
<tr><td><a class="result-link" href="https://example.com/kindred">Kindred</a></td></tr>
<tr><td class="result-snippet">Time travel and slavery.</td></tr>
<tr><td><a class="result-link" href="https://example.com/11-22-63">11/22/63</a></td></tr>
<tr><td class="result-snippet">Stephen King time travel.</td></tr>
</table></body></html>`

func TestParseLiteSearchResults(t *testing.T) {
	results, err := parseLiteSearchResults(liteHTML, 10)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Link != "https://example.com/dune" {
		t.Errorf("redirect not cleaned: %q", results[0].Link)
	}
	if results[0].Title != "Dune - Frank Herbert" || results[0].Snippet != "A desert planet epic." {
		t.Errorf("first result = %+v", results[0])
	}
	if results[2].Position != 3 {
		t.Errorf("position = %d, want 3", results[2].Position)
	}

	limited, _ := parseLiteSearchResults(liteHTML, 2)
	if len(limited) != 2 {
		t.Errorf("maxResults not honored: %d", len(limited))
	}
}

func TestDuckDuckGoSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "time travel books" {
			t.Errorf("query = %q", got)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent")
		}
		fmt.Fprint(w, liteHTML)
	}))
	defer srv.Close()

	d := NewDuckDuckGo()
	d.baseURL = srv.URL
	d.minDelay = 0

	results, err := d.Search(context.Background(), "time travel books", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results", len(results))
	}
}

func TestTavilySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tvly-test" {
			t.Errorf("Authorization = %q", got)
		}
		var req tavilyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Query != "cozy fantasy" || req.SearchDepth != "advanced" || req.MaxResults != 2 {
			t.Errorf("request = %+v", req)
		}
		fmt.Fprint(w, `{"results":[
			{"title":"Legends & Lattes","url":"https://a.example","content":"Orc opens a coffee shop.","score":0.9},
			{"title":"The House in the Cerulean Sea","url":"https://b.example","content":"Found family.","score":0.8},
			{"title":"Extra","url":"https://c.example","content":"Should be cut.","score":0.1}
		]}`)
	}))
	defer srv.Close()

	tv := NewTavily("tvly-test", "advanced")
	tv.baseURL = srv.URL

	results, err := tv.Search(context.Background(), "cozy fantasy", 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[1].Title != "The House in the Cerulean Sea" || results[1].Position != 2 {
		t.Errorf("second result = %+v", results[1])
	}
}

func TestTavilyErrors(t *testing.T) {
	if _, err := NewTavily("", "").Search(context.Background(), "q", 5); err == nil {
		t.Error("expected missing key error")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tv := NewTavily("bad", "basic")
	tv.baseURL = srv.URL
	_, err := tv.Search(context.Background(), "q", 5)
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want http 401", err)
	}
}

type fakeSearcher struct {
	gotMax  int
	results []SearchResult
	err     error
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	f.gotMax = maxResults
	return f.results, f.err
}

func TestSearchToolRun(t *testing.T) {
	fake := &fakeSearcher{results: []SearchResult{
		{Title: "Dune", Link: "https://example.com/dune", Snippet: "Spice.", Position: 1},
	}}
	st := NewSearchTool(fake, 5)

	out, err := st.Run(context.Background(), SearchToolParams{Query: "dune"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fake.gotMax != 5 {
		t.Errorf("default maxResults = %d, want 5", fake.gotMax)
	}
	for _, want := range []string{"Found 1 search results", "**Dune**", "URL: https://example.com/dune", "provider=fake", "matches=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	_, _ = st.Run(context.Background(), SearchToolParams{Query: "dune", MaxResults: 99})
	if fake.gotMax != MaxSearchMaxResults {
		t.Errorf("maxResults not capped: %d", fake.gotMax)
	}
}

func TestSearchToolRunErrors(t *testing.T) {
	st := NewSearchTool(&fakeSearcher{err: errors.New("rate limited")}, 0)

	out, err := st.Run(context.Background(), SearchToolParams{Query: "  "})
	if err != nil || !strings.HasPrefix(out, "[ERROR] query parameter is required") {
		t.Errorf("blank query: %q, %v", out, err)
	}

	out, err = st.Run(context.Background(), SearchToolParams{Query: "x"})
	if err != nil || !strings.Contains(out, "rate limited") {
		t.Errorf("searcher error: %q, %v", out, err)
	}

	empty := NewSearchTool(&fakeSearcher{}, 3)
	out, _ = empty.Run(context.Background(), SearchToolParams{Query: "zzz"})
	if !strings.Contains(out, "No results found for 'zzz'") {
		t.Errorf("no results output = %q", out)
	}
}

func TestNewSearcher(t *testing.T) {
	if got := NewSearcher("key", "basic").Name(); got != "tavily" {
		t.Errorf("with key: %s", got)
	}
	if got := NewSearcher("", "basic").Name(); got != "duckduckgo" {
		t.Errorf("without key: %s", got)
	}
}

func TestFetchToolFunc(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
		fmt.Fprint(w, `<html><head><script>var x=1;</script></head><body>
			<nav>Home | Shop</nav>
			<h1>Kindred</h1>
			<p>By <strong>Octavia E. Butler</strong>, 1979.</p>
		</body></html>`)
	}))
	defer srv.Close()

	out, err := FetchToolFunc(context.Background(), FetchToolParams{URL: srv.URL})
	if err != nil {
		t.Fatalf("FetchToolFunc() error = %v", err)
	}
	if !strings.Contains(out, "# Kindred") || !strings.Contains(out, "**Octavia E. Butler**") {
		t.Errorf("markdown output = %q", out)
	}
	if strings.Contains(out, "var x") || strings.Contains(out, "Home | Shop") {
		t.Errorf("noise not stripped: %q", out)
	}

	out, _ = FetchToolFunc(context.Background(), FetchToolParams{URL: srv.URL, Format: "text"})
	if !strings.Contains(out, "Kindred By Octavia E. Butler, 1979.") {
		t.Errorf("text output = %q", out)
	}

	out, _ = FetchToolFunc(context.Background(), FetchToolParams{URL: srv.URL + "/missing"})
	if !strings.HasPrefix(out, "[PARTIAL]") || !strings.Contains(out, "status=404") {
		t.Errorf("404 output = %q", out)
	}
}

func TestFetchToolFuncValidation(t *testing.T) {
	tests := []struct {
		params FetchToolParams
		want   string
	}{
		{FetchToolParams{}, "URL parameter is required"},
		{FetchToolParams{URL: "ftp://x"}, "must start with http"},
		{FetchToolParams{URL: "https://x", Format: "pdf"}, "format must be one of"},
	}
	for _, tt := range tests {
		out, err := FetchToolFunc(context.Background(), tt.params)
		if err != nil || !strings.Contains(out, tt.want) {
			t.Errorf("FetchToolFunc(%+v) = %q, %v; want %q", tt.params, out, err, tt.want)
		}
	}
}

func TestToolResultString(t *testing.T) {
	r := &ToolResult{
		Status:   StatusPartial,
		Content:  "body",
		Metadata: &Metadata{URL: "https://x", StatusCode: 500},
	}
	want := "[PARTIAL] body\n\n<metadata url=https://x status=500 />"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got, _ := Success("ok", nil); got != "ok" {
		t.Errorf("Success() = %q", got)
	}
}
