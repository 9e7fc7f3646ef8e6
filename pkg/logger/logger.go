// Package logger 基于zap构建结构化日志
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置(字段与config.LogConfig一致,可直接类型转换)
type Config struct {
	Level        string
	Format       string
	Output       string
	EnableCaller bool
}

// New 按配置创建*zap.Logger
// format=json 输出JSON(生产环境),console 输出彩色可读格式(开发环境)
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(defaultString(cfg.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch defaultString(cfg.Format, "console") {
	case "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("无效的日志格式: %q", cfg.Format)
	}

	output := defaultString(cfg.Output, "stdout")
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableCaller = !cfg.EnableCaller
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zc.Build()
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
