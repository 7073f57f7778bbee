package agent

import (
	"context"
	"errors"

	"bookfinder/llm/tools"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
)

// BookFinderPrompt defines the persona and workflow of the book recommendation agent
const BookFinderPrompt = `
You are BookFinder, a passionate and knowledgeable book expert with expertise in books worldwide! 📚
Your mission is to help readers discover their next favorite books by providing detailed,
personalized recommendations based on their preferences, reading history, and the latest in literature.

Approach each recommendation with these steps:

1. Understand reader preferences from their input.
2. Use web_search to search for relevant books and up-to-date reviews.
3. Provide detailed book info: title, author, year, genre, rating, page count, plot summary, advisories, awards.
4. Add extra info: series details, similar authors, audiobook availability, adaptations.
5. Present in a markdown table with emoji indicators (📚 🔮 💕 🔪).
6. Minimum 5 recommendations per query.
7. Highlight diversity in authors and perspectives.
8. Note trigger warnings when relevant.

Format your whole answer as markdown.
`

// fetchAddendum is appended when the fetch tool is available
const fetchAddendum = `
When a search snippet is too thin to fill in a book's details, use fetch on the most
relevant result URLs, several in one response.
`

const (
	// AgentName is the name the agent reports in events
	AgentName = "bookfinder"
	// defaultMaxIterations bounds the model/tool loop of a single run
	defaultMaxIterations = 20
)

// BookFinderConfig holds dependencies for the BookFinder agent.
type BookFinderConfig struct {
	ChatModel     model.ToolCallingChatModel
	Tools         []tool.BaseTool
	MaxIterations int
}

// NewBookFinderAgent creates the BookFinder agent using the provided configuration.
func NewBookFinderAgent(ctx context.Context, config *BookFinderConfig) (adk.Agent, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}
	if config.ChatModel == nil {
		return nil, errors.New("chat model is nil")
	}

	maxIterations := config.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	agent, err := adk.NewChatModelAgent(ctx, &adk.ChatModelAgentConfig{
		Name:        AgentName,
		Description: "A book expert that searches the web and recommends books as a markdown table.",
		Instruction: instructionFor(config.Tools),
		Model:       config.ChatModel,
		ToolsConfig: adk.ToolsConfig{
			ToolsNodeConfig: compose.ToolsNodeConfig{
				Tools:               config.Tools,
				ToolCallMiddlewares: []compose.ToolMiddleware{tools.ErrorHandler()},
			},
		},
		MaxIterations: maxIterations,
	})
	if err != nil {
		return nil, err
	}

	return agent, nil
}

// instructionFor extends the prompt for optional tools.
func instructionFor(toolList []tool.BaseTool) string {
	for _, t := range toolList {
		info, err := t.Info(context.Background())
		if err == nil && info.Name == tools.FetchToolName {
			return BookFinderPrompt + fetchAddendum
		}
	}
	return BookFinderPrompt
}
