package logger

import (
	"os"
	"quizfy_backend/internal/config"

	"github.com/rollbar/rollbar-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is replaced by InitLogger; the no-op default keeps packages usable in tests.
var Log = zap.NewNop()

var rollbarEnabled bool

func InitLogger(cfg *config.Config) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   "logs/quizfy.log",
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	level := zap.InfoLevel
	if cfg.Server.Mode == "debug" {
		level = zap.DebugLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileWriter, level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), level),
	)

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))

	initRollbar(cfg)
}

func initRollbar(cfg *config.Config) {
	rollbarEnabled = cfg.Rollbar.Token != ""
	rollbar.SetEnabled(rollbarEnabled)
	if !rollbarEnabled {
		return
	}
	env := cfg.Rollbar.Environment
	if env == "" {
		env = cfg.Server.Mode
	}
	rollbar.SetToken(cfg.Rollbar.Token)
	rollbar.SetEnvironment(env)
	rollbar.SetServerHost(cfg.Server.SiteURL)
	Log.Info("Rollbar error reporting enabled", zap.String("environment", env))
}

// ReportError logs err and forwards it to Rollbar when configured.
func ReportError(msg string, err error, fields ...zap.Field) {
	Log.Error(msg, append(fields, zap.Error(err))...)
	if rollbarEnabled {
		rollbar.Error(err, map[string]interface{}{"message": msg})
	}
}

// Close flushes pending log entries and queued Rollbar items.
func Close() {
	_ = Log.Sync()
	if rollbarEnabled {
		rollbar.Close()
	}
}
