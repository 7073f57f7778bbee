package trace

import (
	"context"
	"testing"
)

func TestSetupDisabled(t *testing.T) {
	for _, s := range []Settings{{}, {APIToken: "t"}, {WorkspaceID: "w"}} {
		if s.Enabled() {
			t.Errorf("%+v should be disabled", s)
		}
		closeFn, err := Setup(context.Background(), s)
		if err != nil {
			t.Fatalf("Setup(%+v) error = %v", s, err)
		}
		closeFn(context.Background())
	}
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("COZE_LOOP_API_TOKEN", "token")
	t.Setenv("COZELOOP_WORKSPACE_ID", "ws")

	s := SettingsFromEnv()
	if !s.Enabled() || s.APIToken != "token" || s.WorkspaceID != "ws" {
		t.Errorf("SettingsFromEnv() = %+v", s)
	}
}
