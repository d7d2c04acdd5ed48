package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/skirmish/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"nonsense", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		log, err := New(config.LoggingConfig{Level: tt.level, Format: "json"})
		if err != nil {
			t.Fatalf("New(%q) error: %v", tt.level, err)
		}
		if !log.Core().Enabled(tt.want) {
			t.Errorf("New(%q) does not enable %v", tt.level, tt.want)
		}
		if tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1) {
			t.Errorf("New(%q) enables %v", tt.level, tt.want-1)
		}
	}
}

func TestNewFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skirmish.log")

	log, err := NewFile(config.LoggingConfig{Level: "info"}, path)
	if err != nil {
		t.Fatalf("NewFile() error: %v", err)
	}
	log.Info("tick", zap.Int("unit_id", 7))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"unit_id":7`) {
		t.Errorf("log output %q missing structured field", data)
	}
}
