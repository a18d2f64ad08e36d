package audit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/btcbarkeep/ainareports/pkg/auth"
)

// setupTestLogger creates a test logger with an observer to capture log entries.
func setupTestLogger(t *testing.T) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, recorded := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	return logger, recorded
}

func TestScreenSearchInput(t *testing.T) {
	fingerprint, hit := ScreenSearchInput("'; DROP TABLE units--")
	assert.True(t, hit)
	assert.NotEmpty(t, fingerprint)

	_, hit = ScreenSearchInput("ala moana 1201")
	assert.False(t, hit)
}

func TestLogInjectionAttempt(t *testing.T) {
	logger, recorded := setupTestLogger(t)
	auditor := NewSecurityAuditor(logger)

	claims := &auth.Claims{}
	claims.Subject = "user-123"
	ctx := context.WithValue(context.Background(), auth.ClaimsKey, claims)

	auditor.LogInjectionAttempt(ctx, InjectionDetails{
		ParamName:   "q",
		ParamValue:  "'; DROP TABLE units--",
		Fingerprint: "s&1c",
		Route:       "/api/search",
	}, "192.168.1.100")

	entries := recorded.All()
	require.Len(t, entries, 1)
	entry := entries[0]

	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "security_audit", entry.LoggerName)

	fields := entry.ContextMap()
	assert.Equal(t, "q", fields["param_name"])
	assert.Equal(t, "s&1c", fields["fingerprint"])
	assert.Equal(t, "user-123", fields["user_id"])

	var event SecurityEvent
	require.NoError(t, json.Unmarshal([]byte(fields["event_json"].(string)), &event))
	assert.Equal(t, EventInjectionAttempt, event.EventType)
	assert.Equal(t, "warning", event.Severity)
}

func TestLogNotFoundProbe(t *testing.T) {
	logger, recorded := setupTestLogger(t)
	auditor := NewSecurityAuditor(logger)

	auditor.LogNotFoundProbe(context.Background(), "/api/buildings/{slug}", "no-such-building", "10.0.0.1")

	entries := recorded.All()
	require.Len(t, entries, 1)
	entry := entries[0]

	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "no-such-building", fields["target"])
	assert.Equal(t, "", fields["user_id"])
}
