package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bookfinder/page"
	"bookfinder/session"

	"github.com/cloudwego/eino/schema"
	"github.com/go-chi/chi/v5"
)

type countingAgent struct {
	calls atomic.Int32
	reply any
	err   error
}

func (a *countingAgent) Run(ctx context.Context, query string) (any, error) {
	a.calls.Add(1)
	return a.reply, a.err
}

func newTestServer(agent page.Agent) (*httptest.Server, *session.MemoryStore) {
	store := session.NewMemoryStore()
	h := NewHandler(page.NewController(agent, store), nil)

	r := chi.NewRouter()
	r.Use(SessionMiddleware(time.Hour, false))
	h.RegisterRoutes(r)

	return httptest.NewServer(r), store
}

func postQuery(t *testing.T, client *http.Client, base, query string) (int, string) {
	t.Helper()
	resp, err := client.PostForm(base+"/", url.Values{"query": {query}})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Jar: jar}
}

func TestShowRendersEmptyPage(t *testing.T) {
	srv, _ := newTestServer(&countingAgent{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName && sessionIDPattern.MatchString(c.Value) {
			found = true
		}
	}
	if !found {
		t.Error("session cookie not set")
	}
}

func TestSubmitBlankShowsWarning(t *testing.T) {
	agent := &countingAgent{reply: "unused"}
	srv, _ := newTestServer(agent)
	defer srv.Close()

	status, body := postQuery(t, newClient(t), srv.URL, "   ")
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if !strings.Contains(body, "Please enter a description.") {
		t.Error("warning not rendered")
	}
	if strings.Contains(body, "Recommendations</h3>") {
		t.Error("recommendations heading rendered for blank input")
	}
	if agent.calls.Load() != 0 {
		t.Errorf("agent called %d times", agent.calls.Load())
	}
}

func TestSubmitRendersRecommendations(t *testing.T) {
	agent := &countingAgent{reply: &schema.Message{Content: "1. Dune ...\n\n| Title | Author |\n|---|---|\n| Dune | Frank Herbert |"}}
	srv, _ := newTestServer(agent)
	defer srv.Close()

	client := newClient(t)
	status, body := postQuery(t, client, srv.URL, "sci-fi books about time travel")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{"📑 Recommendations</h3>", "Dune ...", "<table>", "<td>Frank Herbert</td>"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Please enter a description.") {
		t.Error("warning rendered for valid input")
	}
	if agent.calls.Load() != 1 {
		t.Errorf("agent called %d times, want 1", agent.calls.Load())
	}

	// The next page load restores the query into the text box.
	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if restored := readBody(t, resp); !strings.Contains(restored, ">sci-fi books about time travel</textarea>") {
		t.Error("query not restored on reload")
	}
}

func TestSubmitAgentErrorShowsErrorOnly(t *testing.T) {
	agent := &countingAgent{err: errors.New("search API unavailable")}
	srv, _ := newTestServer(agent)
	defer srv.Close()

	status, body := postQuery(t, newClient(t), srv.URL, "fantasy")
	if status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
	if !strings.Contains(body, "search API unavailable") {
		t.Error("error not rendered")
	}
	if strings.Contains(body, "Recommendations</h3>") || strings.Contains(body, "Please enter a description.") {
		t.Error("error page must show neither recommendations nor warning")
	}
	if agent.calls.Load() != 1 {
		t.Errorf("agent called %d times, want 1", agent.calls.Load())
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	srv, store := newTestServer(&countingAgent{reply: "ok"})
	defer srv.Close()

	postQuery(t, newClient(t), srv.URL, "romance")
	postQuery(t, newClient(t), srv.URL, "horror")

	if store.Len() != 2 {
		t.Errorf("sessions = %d, want 2", store.Len())
	}
}

func TestMarkdownRender(t *testing.T) {
	m := NewMarkdown()
	got := string(m.Render("**bold** <script>alert(1)</script>"))
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("Render() = %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
}
