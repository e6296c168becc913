package logger

import (
	"github.com/maxaizer/selectflow/internal/config"
	log "github.com/sirupsen/logrus"
	"io"
	"os"
	"path/filepath"
)

const ErrorTypeField = "error_type"

const (
	ErrorTypeDb      = "db"
	ErrorTypeAiApi   = "ai_api"
	ErrorTypeStorage = "storage"
	ErrorTypeSession = "session"
	ErrorTypeHttp    = "http"
)

var (
	logFile     *os.File
	stopPushers []func()
)

func Setup(cfg config.LoggerConfig) {

	if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	var err error
	logFile, err = os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(multiWriter)

	customFormatter := &log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000 -0700",
	}
	log.SetFormatter(customFormatter)
	log.SetLevel(parseLevel(cfg))

	addPrometheusHook()

	if cfg.LokiURL != "" {
		if err = addLokiHook(cfg); err != nil {
			log.Errorf("failed to enable Loki logging: %v", err)
		}
	}
}

func parseLevel(cfg config.LoggerConfig) log.Level {
	switch cfg.LogLevel {
	case config.LevelDebug:
		return log.DebugLevel
	case config.LevelWarning:
		return log.WarnLevel
	case config.LevelError:
		return log.ErrorLevel
	case config.LevelFatal:
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

func Cleanup() {
	for _, stop := range stopPushers {
		stop()
	}
	stopPushers = nil

	if logFile != nil {
		_ = logFile.Close()
	}
}
