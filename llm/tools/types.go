package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
)

// ResultStatus represents the status of a tool execution
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusError   ResultStatus = "error"
	StatusPartial ResultStatus = "partial" // 部分成功
)

// Metadata contains structured metadata about tool execution
type Metadata struct {
	// Search results
	Provider   string   `json:"provider,omitempty"`
	MatchCount int      `json:"match_count,omitempty"`
	URLs       []string `json:"urls,omitempty"`

	// Network
	URL        string `json:"url,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
	Duration   int64  `json:"duration_ms,omitempty"`
}

// ToolResult represents a structured tool response
type ToolResult struct {
	Status   ResultStatus `json:"status"`
	Content  string       `json:"content"`
	Metadata *Metadata    `json:"metadata,omitempty"`
}

// String returns the formatted string representation for LLM consumption
func (r *ToolResult) String() string {
	var sb strings.Builder

	switch r.Status {
	case StatusError:
		sb.WriteString("[ERROR] ")
	case StatusPartial:
		sb.WriteString("[PARTIAL] ")
	}

	sb.WriteString(r.Content)

	if r.Metadata != nil {
		md := r.Metadata
		var attrs []string

		if md.Provider != "" {
			attrs = append(attrs, fmt.Sprintf("provider=%s", md.Provider))
		}
		if md.MatchCount > 0 {
			attrs = append(attrs, fmt.Sprintf("matches=%d", md.MatchCount))
		}
		if md.URL != "" {
			attrs = append(attrs, fmt.Sprintf("url=%s", md.URL))
		}
		if md.StatusCode > 0 {
			attrs = append(attrs, fmt.Sprintf("status=%d", md.StatusCode))
		}
		if md.Duration > 0 {
			attrs = append(attrs, fmt.Sprintf("duration=%dms", md.Duration))
		}

		if len(attrs) > 0 {
			sb.WriteString(fmt.Sprintf("\n\n<metadata %s />", strings.Join(attrs, " ")))
		}
	}

	return sb.String()
}

// JSON returns the JSON representation (for debugging/logging)
func (r *ToolResult) JSON() string {
	data, _ := json.MarshalIndent(r, "", "  ")
	return string(data)
}

// Success creates a successful tool result
func Success(content string, metadata *Metadata) (string, error) {
	return (&ToolResult{
		Status:   StatusSuccess,
		Content:  content,
		Metadata: metadata,
	}).String(), nil
}

// Error creates an error tool result
func Error(content string) (string, error) {
	return (&ToolResult{
		Status:  StatusError,
		Content: content,
	}).String(), nil
}

// Partial creates a partial success tool result
func Partial(content string, metadata *Metadata) (string, error) {
	return (&ToolResult{
		Status:   StatusPartial,
		Content:  content,
		Metadata: metadata,
	}).String(), nil
}

// ErrorHandler 是工具错误处理中间件
// 捕获工具调用错误，转换为模型可读的工具结果，避免整个运行失败
func ErrorHandler() compose.ToolMiddleware {
	return compose.ToolMiddleware{
		Invokable: func(next compose.InvokableToolEndpoint) compose.InvokableToolEndpoint {
			return func(ctx context.Context, in *compose.ToolInput) (*compose.ToolOutput, error) {
				output, err := next(ctx, in)
				if err == nil {
					return output, nil
				}

				errStr := err.Error()
				// 中断信号需要原样返回
				if strings.Contains(errStr, "interrupt signal") {
					return nil, err
				}

				if idx := strings.Index(errStr, "err="); idx != -1 {
					errStr = strings.TrimSpace(errStr[idx+4:])
				}
				return &compose.ToolOutput{
					Result: fmt.Sprintf("Error: %s", errStr),
				}, nil
			}
		},
	}
}
