package observability

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger()
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	if logger == nil {
		t.Fatal("NewLogger() returned nil logger")
	}
	_ = logger.Sync()
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want zap.AtomicLevel
	}{
		{name: "debug", in: "DEBUG", want: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{name: "lowercase debug", in: "debug", want: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{name: "warn", in: "warn", want: zap.NewAtomicLevelAt(zap.WarnLevel)},
		{name: "error", in: "ERROR", want: zap.NewAtomicLevelAt(zap.ErrorLevel)},
		{name: "empty defaults to info", in: "", want: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{name: "unknown defaults to info", in: "verbose", want: zap.NewAtomicLevelAt(zap.InfoLevel)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseLogLevel(tc.in); got.Level() != tc.want.Level() {
				t.Fatalf("parseLogLevel(%q) = %v, want %v", tc.in, got.Level(), tc.want.Level())
			}
		})
	}
}
