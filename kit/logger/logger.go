package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

type Logger struct {
	*zap.Logger
}

type loggerConfig struct {
	noStdout bool
}

type Option func(*loggerConfig)

func NoStdout(config *loggerConfig) {
	config.noStdout = true
}

func NewLogger(filePath string, level Level, options ...Option) (*Logger, error) {
	loggerConfig := new(loggerConfig)
	for _, option := range options {
		option(loggerConfig)
	}

	outputPaths := []string{filePath}
	if !loggerConfig.noStdout {
		outputPaths = append(outputPaths, "stdout")
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      outputPaths,
		ErrorOutputPaths: outputPaths,
	}
	zapLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: zapLogger}, nil
}

func (l *Logger) With(fields ...Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}
