package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bookfinder/config"
	"bookfinder/llm/providers"
	"bookfinder/llm/tools"
	"bookfinder/pubsub"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// ErrNoReply is returned when a run ends without any assistant message.
var ErrNoReply = errors.New("agent finished without a reply")

// Runtime Agent 运行时：一次 Run 对应一次按钮点击
type Runtime struct {
	runner *adk.Runner
	broker *pubsub.Broker[adk.Message]
	logger *slog.Logger
}

// NewRuntime 创建新的 Agent 运行时
func NewRuntime(ctx context.Context, agt adk.Agent, logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = slog.Default()
	}

	runner := adk.NewRunner(ctx, adk.RunnerConfig{
		Agent:           agt,
		EnableStreaming: false, // 非流式
	})

	return &Runtime{
		runner: runner,
		broker: pubsub.NewBroker[adk.Message](),
		logger: logger,
	}
}

// Run sends the query to the agent and blocks until it answers. The reply is the final
// assistant message. The first error the agent reports is returned as is; nothing is
// retried.
func (r *Runtime) Run(ctx context.Context, query string) (any, error) {
	userMsg := schema.UserMessage(query)
	r.broker.Publish(pubsub.CreatedEvent, userMsg)

	var final adk.Message
	defer func() {
		r.broker.Publish(pubsub.FinishedEvent, final)
	}()

	iter := r.runner.Run(ctx, []adk.Message{userMsg})
	for {
		event, ok := iter.Next()
		if !ok {
			break
		}
		if event.Err != nil {
			r.logger.Error("agent run failed", "agent", event.AgentName, "error", event.Err)
			return nil, event.Err
		}

		msg := r.handleEvent(event)
		if msg != nil {
			final = msg
		}
	}

	if final == nil {
		return nil, ErrNoReply
	}
	return final, nil
}

// handleEvent 处理 Agent 事件，返回可作为最终回复的助手消息
func (r *Runtime) handleEvent(event *adk.AgentEvent) adk.Message {
	if event.Output == nil || event.Output.MessageOutput == nil {
		return nil
	}

	msg, err := event.Output.MessageOutput.GetMessage()
	if err != nil {
		r.logger.Warn("failed to read agent message", "error", err)
		return nil
	}
	if msg == nil || msg.Role != schema.Assistant {
		return nil
	}

	// 工具调用只作为进度通知
	if len(msg.ToolCalls) > 0 {
		for _, tc := range msg.ToolCalls {
			r.logger.Info("agent tool call", "tool", tc.Function.Name, "arguments", tc.Function.Arguments)
		}
		r.broker.Publish(pubsub.UpdatedEvent, msg)
		return nil
	}

	return msg
}

// Broker 获取事件 Broker
func (r *Runtime) Broker() *pubsub.Broker[adk.Message] {
	return r.broker
}

// Close 关闭运行时
func (r *Runtime) Close() {
	r.broker.Shutdown()
}

// Setup builds model, tools, agent and runtime from configuration.
func Setup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	chatModel, err := providers.NewChatModel(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	toolList, err := BuildTools(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tools: %w", err)
	}

	agt, err := NewBookFinderAgent(ctx, &BookFinderConfig{
		ChatModel: chatModel,
		Tools:     toolList,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	return NewRuntime(ctx, agt, logger), nil
}

// BuildTools returns web_search and, when enabled, fetch.
func BuildTools(cfg *config.Config) ([]tool.BaseTool, error) {
	searcher := tools.NewSearcher(cfg.Search.TavilyAPIKey, cfg.Search.TavilyDepth)
	searchTool, err := tools.NewSearchTool(searcher, cfg.Search.MaxResults).Tool()
	if err != nil {
		return nil, err
	}
	toolList := []tool.BaseTool{searchTool}

	if cfg.FetchTool {
		fetchTool, err := tools.NewFetchTool()
		if err != nil {
			return nil, err
		}
		toolList = append(toolList, fetchTool)
	}

	return toolList, nil
}
