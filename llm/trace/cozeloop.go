// Package trace wires optional CozeLoop tracing into eino's global callbacks.
package trace

import (
	"context"
	"fmt"
	"os"

	clc "github.com/cloudwego/eino-ext/callbacks/cozeloop"
	"github.com/cloudwego/eino/callbacks"
	"github.com/coze-dev/cozeloop-go"
)

// Settings identifies the CozeLoop workspace to report to.
type Settings struct {
	APIToken    string
	WorkspaceID string
}

// SettingsFromEnv reads COZE_LOOP_API_TOKEN and COZELOOP_WORKSPACE_ID.
func SettingsFromEnv() Settings {
	return Settings{
		APIToken:    os.Getenv("COZE_LOOP_API_TOKEN"),
		WorkspaceID: os.Getenv("COZELOOP_WORKSPACE_ID"),
	}
}

// Enabled reports whether both credentials are present.
func (s Settings) Enabled() bool {
	return s.APIToken != "" && s.WorkspaceID != ""
}

// Setup registers the CozeLoop callback handler when tracing is configured. The returned
// function flushes and closes the client; it is a no-op when tracing is disabled.
func Setup(ctx context.Context, s Settings) (func(context.Context), error) {
	if !s.Enabled() {
		return func(context.Context) {}, nil
	}

	client, err := cozeloop.NewClient(
		cozeloop.WithAPIToken(s.APIToken),
		cozeloop.WithWorkspaceID(s.WorkspaceID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cozeloop client: %w", err)
	}

	callbacks.AppendGlobalHandlers(clc.NewLoopHandler(client))

	return func(ctx context.Context) {
		client.Close(ctx)
	}, nil
}
