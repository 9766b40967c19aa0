package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notes-service/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		level       string
		debugOn     bool
		expectsJSON bool
	}{
		{name: "local environment", env: config.EnvLocal, level: "info", debugOn: true},
		{name: "dev environment", env: config.EnvDev, level: "debug", debugOn: true, expectsJSON: true},
		{name: "prod environment", env: config.EnvProd, level: "info", debugOn: false, expectsJSON: true},
		{name: "unknown level", env: config.EnvProd, level: "loud", debugOn: false, expectsJSON: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := newWithWriter(&buf, tt.env, tt.level)
			require.NotNil(t, log)
			assert.Equal(t, tt.debugOn, log.Enabled(context.Background(), slog.LevelDebug))

			log.Info("hello", Err(errors.New("boom")))
			var decoded map[string]interface{}
			isJSON := json.Unmarshal(buf.Bytes(), &decoded) == nil
			assert.Equal(t, tt.expectsJSON, isJSON)
			assert.Contains(t, buf.String(), "boom")
		})
	}
}
