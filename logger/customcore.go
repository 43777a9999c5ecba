package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RedactedValue replaces the value of any sensitive field when redaction is enabled.
const RedactedValue = "REDACTED"

// sensitiveFieldKeys are the structured field keys that may carry credentials.
var sensitiveFieldKeys = map[string]bool{
	"access_token":  true,
	"refresh_token": true,
	"AccessToken":   true,
	"RefreshToken":  true,
	"Authorization": true,
}

// customCore wraps a zapcore.Core and masks credential-bearing fields before they are encoded.
type customCore struct {
	zapcore.Core
	hideSensitiveData bool
}

// With adds structured context to the Core, masking sensitive fields first.
func (c *customCore) With(fields []zapcore.Field) zapcore.Core {
	return &customCore{
		Core:              c.Core.With(c.redact(fields)),
		hideSensitiveData: c.hideSensitiveData,
	}
}

// Write serializes the Entry and any Fields supplied at the log site and writes them to their destination.
func (c *customCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(entry, c.redact(fields))
}

// Check determines whether the supplied Entry should be logged. The wrapper must add itself
// rather than the inner core, otherwise Write would bypass redaction.
func (c *customCore) Check(entry zapcore.Entry, checkedEntry *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checkedEntry.AddCore(entry, c)
	}
	return checkedEntry
}

// Sync flushes buffered logs (if any).
func (c *customCore) Sync() error {
	return c.Core.Sync()
}

func (c *customCore) redact(fields []zapcore.Field) []zapcore.Field {
	if !c.hideSensitiveData {
		return fields
	}
	out := make([]zapcore.Field, len(fields))
	for i, field := range fields {
		if sensitiveFieldKeys[field.Key] {
			out[i] = zap.String(field.Key, RedactedValue)
			continue
		}
		out[i] = field
	}
	return out
}
