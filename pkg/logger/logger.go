package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GlebRadaev/coursemart/internal/config"
)

const (
	timeLayout  = "15:04:05 02-01-2006"
	serviceName = "coursemart"
)

var logLvlMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// InitLogger replaces the global zap logger; code logs through zap.L().
func InitLogger(conf *config.Config) error {
	lvl, ok := logLvlMap[conf.LogLvl]
	if !ok {
		return fmt.Errorf("unsupported log lvl: %s", conf.LogLvl)
	}
	encoding, encodeConfig, err := encoderFor(conf.LogFormat)
	if err != nil {
		return err
	}

	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         encoding,
		EncoderConfig:    encodeConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    map[string]any{"service": serviceName},
	}

	logger, err := c.Build()
	if err != nil {
		return fmt.Errorf("unable to create zap logger, error: %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}

// encoderFor returns the colored console layout for terminals and plain
// ISO8601 JSON for log shippers. An empty format means console.
func encoderFor(format string) (string, zapcore.EncoderConfig, error) {
	base := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	switch format {
	case "", "console":
		base.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
		base.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return "console", base, nil
	case "json":
		base.EncodeTime = zapcore.ISO8601TimeEncoder
		base.EncodeLevel = zapcore.LowercaseLevelEncoder
		return "json", base, nil
	default:
		return "", zapcore.EncoderConfig{}, fmt.Errorf("unsupported log format: %s", format)
	}
}
