package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

// Logger 日志管理器
type Logger struct {
	logger  zerolog.Logger
	config  *Config
	closers []io.Closer // 文件句柄与异步writer，Close 时按逆序关闭
}

// Config 日志配置
type Config struct {
	Level      string `mapstructure:"level" json:"level"`            // 日志级别: debug, info, warn, error
	Format     string `mapstructure:"format" json:"format"`          // 输出格式: console, json
	Output     string `mapstructure:"output" json:"output"`          // 输出目标: stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format" json:"timeFormat"` // 时间格式
	Caller     bool   `mapstructure:"caller" json:"caller"`          // 是否显示调用者信息
	Async      bool   `mapstructure:"async" json:"async"`            // 是否启用异步日志
}

// DefaultConfig 默认日志配置
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
		Caller:     false,
		Async:      false,
	}
}

// New 创建日志管理器并设置为全局日志器
func New(config *Config) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var (
		output  io.Writer
		closers []io.Closer
	)
	switch strings.ToLower(config.Output) {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		if err := ensureDir(filepath.Dir(config.Output)); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", config.Output, err)
		}
		output = file
		closers = append(closers, file)
	}

	if config.Async {
		// 隐藏底层 Close，文件由 closers 单独关闭，stdout 不被关闭
		// 缓冲区满时丢弃并在stderr上报数量
		w := diode.NewWriter(struct{ io.Writer }{output}, 1000, 10*time.Millisecond, func(missed int) {
			fmt.Fprintf(os.Stderr, "Logger dropped %d messages\n", missed)
		})
		output = w
		closers = append(closers, w)
	}

	l, err := NewWithWriter(output, config)
	if err != nil {
		for _, c := range closers {
			c.Close()
		}
		return nil, err
	}
	l.closers = closers

	zerolog.TimeFieldFormat = config.TimeFormat
	log.Logger = l.logger
	globalLogger = l
	return l, nil
}

// NewWithWriter 使用给定输出创建日志器，不修改全局状态
func NewWithWriter(output io.Writer, config *Config) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	level, err := zerolog.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", config.Level, err)
	}

	var logger zerolog.Logger
	switch strings.ToLower(config.Format) {
	case "console":
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: config.TimeFormat,
			NoColor:    true,
		})
	case "json":
		logger = zerolog.New(output)
	default:
		return nil, fmt.Errorf("unsupported log format: %s", config.Format)
	}

	logger = logger.With().Timestamp().Logger()
	if config.Caller {
		logger = logger.With().Caller().Logger()
	}

	cfg := *config
	return &Logger{
		logger: logger.Level(level),
		config: &cfg,
	}, nil
}

// Nop 丢弃所有输出的日志器
func Nop() *Logger {
	cfg := DefaultConfig()
	cfg.Level = zerolog.Disabled.String()
	return &Logger{logger: zerolog.Nop(), config: cfg}
}

// OrNop 组件未注入日志器时使用全局日志器，全局也未初始化则丢弃输出
func OrNop(l *Logger) *Logger {
	if l != nil {
		return l
	}
	if globalLogger != nil {
		return globalLogger
	}
	return Nop()
}

// With 返回携带固定字段的子日志器，共享父日志器的输出
func (l *Logger) With(key string, value interface{}) *Logger {
	cfg := *l.config
	return &Logger{
		logger: l.logger.With().Interface(key, value).Logger(),
		config: &cfg,
	}
}

// GetLogger 获取 zerolog 实例
func (l *Logger) GetLogger() zerolog.Logger {
	return l.logger
}

// Debug 调试日志
func (l *Logger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

// Debugf 格式化调试日志
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// Info 信息日志
func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

// Infof 格式化信息日志
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

// Warn 警告日志
func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

// Warnf 格式化警告日志
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

// WarnWithErr 带错误对象的警告日志
func (l *Logger) WarnWithErr(err error, msg string) {
	l.logger.Warn().Err(err).Msg(msg)
}

// Error 错误日志
func (l *Logger) Error(msg string) {
	l.logger.Error().Msg(msg)
}

// Errorf 格式化错误日志
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

// ErrorWithErr 带错误对象的错误日志
func (l *Logger) ErrorWithErr(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

// Fatalf 格式化致命错误日志，输出后退出进程
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logger.Fatal().Msgf(format, args...)
}

// WithFields 以给定字段开始一条信息日志
func (l *Logger) WithFields(fields map[string]interface{}) *zerolog.Event {
	return l.logger.Info().Fields(fields)
}

// SetLevel 动态设置日志级别
func (l *Logger) SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %s: %w", level, err)
	}

	l.logger = l.logger.Level(lvl)
	l.config.Level = level
	return nil
}

// GetLevel 获取当前日志级别
func (l *Logger) GetLevel() string {
	return l.config.Level
}

// Close 刷新异步缓冲并关闭日志文件
func (l *Logger) Close() error {
	var firstErr error
	for i := len(l.closers) - 1; i >= 0; i-- {
		if err := l.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.closers = nil
	return firstErr
}

// ensureDir 确保目录存在
func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

var globalLogger *Logger

// Infof 全局格式化信息日志
func Infof(format string, args ...interface{}) {
	OrNop(nil).Infof(format, args...)
}

// Errorf 全局格式化错误日志
func Errorf(format string, args ...interface{}) {
	OrNop(nil).Errorf(format, args...)
}
