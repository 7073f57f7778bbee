// Package page is the BookFinder page logic shared by the terminal and browser front ends:
// it gates the query, calls the agent once, and shapes what the output region shows.
package page

import (
	"context"
	"fmt"
	"strings"

	"bookfinder/session"

	"github.com/cloudwego/eino/schema"
)

// Page copy.
const (
	Title          = "📚 Book Recommendation Agent"
	Description    = "Your personal book finder powered by **Tavily API** & **OpenAI GPT-4o**.\nGet personalized book recommendations based on your preferences."
	InputLabel     = "📖 Describe the kind of books you're looking for:"
	Placeholder    = "e.g., I'm interested in books about artificial intelligence, data science, and programming best practices."
	ButtonLabel    = "🔍 Get Recommendations"
	SpinnerText    = "Fetching your personalized book recommendations..."
	Heading        = "📑 Recommendations"
	BlankWarning   = "Please enter a description."
	FooterCaption  = "Powered by Tavily API + OpenAI GPT-4o + Eino Agents 🚀"
	DefaultSession = "default"
)

// Agent runs one recommendation request. The reply is usually a *schema.Message but any
// value is accepted; see ReplyText.
type Agent interface {
	Run(ctx context.Context, query string) (any, error)
}

// AgentFunc adapts a function to Agent.
type AgentFunc func(ctx context.Context, query string) (any, error)

// Run calls f.
func (f AgentFunc) Run(ctx context.Context, query string) (any, error) {
	return f(ctx, query)
}

// IsBlank reports whether the query must be rejected without calling the agent.
func IsBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}

// ReplyText returns the text to display for an agent reply: its content field when it has
// one, otherwise the raw value. The text is never trimmed or otherwise altered.
func ReplyText(reply any) string {
	switch r := reply.(type) {
	case *schema.Message:
		if r != nil {
			return r.Content
		}
	case interface{ GetContent() string }:
		return r.GetContent()
	case string:
		return r
	}
	return fmt.Sprint(reply)
}

// Outcome is what the output region shows after a submission: either a warning or
// recommendations.
type Outcome struct {
	Query    string
	Warning  string
	Heading  string
	Markdown string
}

// IsWarning reports whether the submission was rejected by the input gate.
func (o *Outcome) IsWarning() bool {
	return o.Warning != ""
}

// Document renders the recommendations as a markdown document, or "" for a warning.
func (o *Outcome) Document() string {
	if o.IsWarning() {
		return ""
	}
	return "### " + o.Heading + "\n\n" + o.Markdown
}

// Controller wires the agent and the session store together.
type Controller struct {
	agent Agent
	store session.Store
}

// NewController creates a Controller. A nil store falls back to an in-memory one.
func NewController(agent Agent, store session.Store) *Controller {
	if store == nil {
		store = session.NewMemoryStore()
	}
	return &Controller{agent: agent, store: store}
}

// Restore returns the query the session submitted last, for pre-filling the text box.
func (c *Controller) Restore(ctx context.Context, sessionID string) (string, error) {
	return c.store.Get(ctx, sessionID)
}

// Submit handles one button press. Blank input yields a warning and no agent call.
// Otherwise the agent is called exactly once; its error, if any, is returned unchanged
// and no outcome is produced.
func (c *Controller) Submit(ctx context.Context, sessionID, input string) (*Outcome, error) {
	if err := c.store.Set(ctx, sessionID, input); err != nil {
		return nil, fmt.Errorf("failed to save session state: %w", err)
	}

	if IsBlank(input) {
		return &Outcome{Query: input, Warning: BlankWarning}, nil
	}

	reply, err := c.agent.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Query:    input,
		Heading:  Heading,
		Markdown: ReplyText(reply),
	}, nil
}
