package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	base   = zap.NewNop()
	sugar  = base.Sugar()
	levels = map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
)

// Options 日志配置
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console 或 json
	Dir    string // 为空时只输出到控制台
}

// SetupLogger 初始化日志配置：同时输出到控制台和按日期命名的日志文件
func SetupLogger(opts Options) error {
	level, ok := levels[opts.Level]
	if !ok {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if opts.Format == "json" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return fmt.Errorf("创建日志目录失败: %w", err)
		}
		logFile := filepath.Join(opts.Dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}

	Set(l)
	return nil
}

// Set 替换全局日志实例，测试中可传入 zap.NewNop()
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	sugar = l.Sugar()
}

// L 返回结构化日志实例
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Info 记录信息级别的日志
func Info(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Infof(format, v...)
}

// Warning 记录警告级别的日志
func Warning(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Warnf(format, v...)
}

// Error 记录错误级别的日志
func Error(format string, v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Errorf(format, v...)
}

// Sync 刷新缓冲区
func Sync() {
	_ = L().Sync()
}
