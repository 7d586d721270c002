package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a file-only zap logger with rotation. Stdout is left alone
// because the TUI owns the terminal. An empty path resolves to the user cache
// directory.
func New(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return zap.NewNop(), nil
		}
		path = filepath.Join(dir, "lumiere-booking-cli", "logs")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(path, "lumiere-booking-cli.log"),
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	})

	logLevel := zap.InfoLevel
	if debug {
		logLevel = zap.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileWriter, logLevel)
	return zap.New(core, zap.AddCaller()), nil
}
