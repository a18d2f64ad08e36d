// Package audit provides security audit logging for SIEM consumption.
// It logs security-relevant events in structured JSON format for easy parsing
// and integration with security information and event management systems.
package audit

import (
	"context"
	"encoding/json"
	"time"

	libinjection "github.com/corazawaf/libinjection-go"
	"go.uber.org/zap"

	"github.com/btcbarkeep/ainareports/pkg/auth"
)

// SecurityEventType categorizes security-relevant events for filtering and alerting.
type SecurityEventType string

const (
	// EventInjectionAttempt is logged when libinjection detects SQL injection
	// patterns in user-supplied search input.
	EventInjectionAttempt SecurityEventType = "sql_injection_attempt"
	// EventNotFoundProbe is logged for repeated lookups of nonexistent
	// resources, a common enumeration signal.
	EventNotFoundProbe SecurityEventType = "not_found_probe"
)

// SecurityEvent represents an auditable security event with all relevant
// context for SIEM ingestion and analysis.
type SecurityEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType SecurityEventType `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
	Details   any               `json:"details"`
	Severity  string            `json:"severity"` // info, warning, critical
}

// InjectionDetails contains specifics of a detected injection pattern.
type InjectionDetails struct {
	ParamName   string `json:"param_name"`
	ParamValue  string `json:"param_value"`
	Fingerprint string `json:"fingerprint"` // libinjection fingerprint for pattern analysis
	Route       string `json:"route"`
}

// ScreenSearchInput runs libinjection over a user-supplied query string.
// Search input only ever reaches the database through bind parameters, so a
// hit is telemetry rather than a blocked attack; callers decide whether to
// serve the request anyway. Returns the fingerprint and true on detection.
func ScreenSearchInput(value string) (string, bool) {
	isSQLi, fingerprint := libinjection.IsSQLi(value)
	if !isSQLi {
		return "", false
	}
	return fingerprint, true
}

// SecurityAuditor logs security events for SIEM consumption.
// Events are logged in structured JSON format with appropriate severity levels.
type SecurityAuditor struct {
	logger *zap.Logger
}

// NewSecurityAuditor creates a new security auditor with a dedicated logger
// namespace. The "security_audit" namespace keeps these events easy to filter
// in SIEM systems.
func NewSecurityAuditor(logger *zap.Logger) *SecurityAuditor {
	securityLogger := logger.Named("security_audit")
	return &SecurityAuditor{logger: securityLogger}
}

// LogInjectionAttempt records a detected injection pattern with full context.
// This is logged at WARN level: the query was still executed safely through
// bind parameters, but the pattern is worth alerting on.
//
// The context is used to extract the user ID from JWT claims if available.
// Client IP should be extracted from the HTTP request (typically r.RemoteAddr).
func (a *SecurityAuditor) LogInjectionAttempt(ctx context.Context, details InjectionDetails, clientIP string) {
	userID := auth.GetUserIDFromContext(ctx)

	event := SecurityEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventInjectionAttempt,
		UserID:    userID,
		ClientIP:  clientIP,
		Details:   details,
		Severity:  "warning",
	}

	// Marshaling known types should never fail.
	eventJSON, _ := json.Marshal(event)

	a.logger.Warn("SQL injection pattern in search input",
		zap.String("event_json", string(eventJSON)),
		zap.String("param_name", details.ParamName),
		zap.String("fingerprint", details.Fingerprint),
		zap.String("route", details.Route),
		zap.String("client_ip", clientIP),
		zap.String("user_id", userID),
		zap.String("severity", "warning"),
	)
}

// LogNotFoundProbe records a lookup of a nonexistent resource.
// This is logged at INFO level; isolated misses are normal, volume is the signal.
func (a *SecurityAuditor) LogNotFoundProbe(ctx context.Context, route, target, clientIP string) {
	userID := auth.GetUserIDFromContext(ctx)

	event := SecurityEvent{
		Timestamp: time.Now().UTC(),
		EventType: EventNotFoundProbe,
		UserID:    userID,
		ClientIP:  clientIP,
		Details: map[string]string{
			"route":  route,
			"target": target,
		},
		Severity: "info",
	}

	eventJSON, _ := json.Marshal(event)

	a.logger.Info("Lookup of nonexistent resource",
		zap.String("event_json", string(eventJSON)),
		zap.String("route", route),
		zap.String("target", target),
		zap.String("client_ip", clientIP),
		zap.String("user_id", userID),
		zap.String("severity", "info"),
	)
}
