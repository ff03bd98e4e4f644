package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the log file path, relative to the working directory (project root when run via go run ./cmd/portfolio).
const DefaultPath = "logs/scene.log"

// defaultMaxLines bounds the in-memory buffer shown by the console.
const defaultMaxLines = 200

// Config selects level, file sink and encoder flavour.
type Config struct {
	Level       string `yaml:"level" env:"PORTFOLIO_LOG_LEVEL"`
	Path        string `yaml:"path" env:"PORTFOLIO_LOG_PATH"`
	Development bool   `yaml:"development" env:"PORTFOLIO_LOG_DEVELOPMENT"`
	MaxLines    int    `yaml:"max_lines"`
}

// DefaultConfig returns info level logging to logs/scene.log.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		Path:     DefaultPath,
		MaxLines: defaultMaxLines,
	}
}

// Logger writes structured entries to a file and keeps recent lines in memory
// so the in-game console can draw them.
type Logger struct {
	zap   *zap.Logger
	lines *lineBuffer
}

// New builds a Logger from cfg. The log directory is created if needed.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if cfg.MaxLines <= 0 {
		cfg.MaxLines = defaultMaxLines
	}
	lines := newLineBuffer(cfg.MaxLines)

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.TimeKey = "ts"
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	consoleCfg.CallerKey = ""
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(lines), level),
	}

	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		fileCfg := zap.NewProductionEncoderConfig()
		if cfg.Development {
			fileCfg = zap.NewDevelopmentEncoderConfig()
		}
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.Lock(f), level))
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}
	return &Logger{zap: zap.New(zapcore.NewTee(cores...), opts...), lines: lines}, nil
}

// NewWithCore wraps an existing core. Used by tests with zaptest/observer.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{zap: zap.New(core), lines: newLineBuffer(defaultMaxLines)}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop(), lines: newLineBuffer(defaultMaxLines)}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zap.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zap.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zap.Error(msg, fields...) }

// Log records a line typed into (or echoed by) the console.
func (l *Logger) Log(line string) {
	l.zap.Info(line, zap.String("source", "console"))
}

// Named returns a child logger sharing the same sinks.
func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.zap.Named(name), lines: l.lines}
}

// Lines returns a copy of the buffered console lines, oldest first.
func (l *Logger) Lines() []string {
	return l.lines.snapshot()
}

// Sync flushes the file sink.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// lineBuffer is a bounded zapcore.WriteSyncer that keeps the most recent lines.
type lineBuffer struct {
	mu    sync.Mutex
	max   int
	lines []string
}

func newLineBuffer(max int) *lineBuffer {
	return &lineBuffer{max: max, lines: make([]string, 0, max)}
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, line := range strings.Split(text, "\n") {
		b.lines = append(b.lines, line)
	}
	if over := len(b.lines) - b.max; over > 0 {
		b.lines = append(b.lines[:0], b.lines[over:]...)
	}
	return len(p), nil
}

func (b *lineBuffer) Sync() error { return nil }

func (b *lineBuffer) snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
