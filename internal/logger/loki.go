package logger

import (
	"fmt"
	"github.com/maxaizer/selectflow/internal/config"
	"github.com/maxaizer/selectflow/pkg/loki"
	log "github.com/sirupsen/logrus"
	"path/filepath"
)

const sourceField = "source"

// pusherReporter logs pusher failures locally. The entries carry a source field so the hook skips them.
type pusherReporter struct{}

func (pusherReporter) Error(msg string, args ...any) {
	log.WithFields(log.Fields{sourceField: "loki", "details": fmt.Sprint(args...)}).Warn(msg)
}

type lokiHook struct {
	pusher   *loki.Pusher
	minLevel log.Level
}

func (h *lokiHook) Fire(entry *log.Entry) error {
	if entry.Data[sourceField] == "loki" {
		return nil
	}
	return h.pusher.Push(toLokiEntry(entry))
}

func (h *lokiHook) Levels() []log.Level {
	return log.AllLevels[:h.minLevel+1]
}

func toLokiEntry(entry *log.Entry) loki.Entry {
	fields := make(map[string]any, len(entry.Data)+1)
	for key, value := range entry.Data {
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		fields[key] = value
	}
	if entry.Caller != nil {
		fields["caller"] = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.Function), entry.Caller.Line)
	}

	return loki.Entry{
		Time:    entry.Time,
		Level:   entry.Level.String(),
		Message: entry.Message,
		Fields:  fields,
	}
}

func addLokiHook(cfg config.LoggerConfig) error {
	pusher, err := loki.New(loki.Config{
		URL:      cfg.LokiURL,
		TenantID: cfg.LokiTenant,
		Username: cfg.LokiUser,
		Password: cfg.LokiPassword,
		Labels:   map[string]string{"app": cfg.AppName},
	}, pusherReporter{})
	if err != nil {
		return err
	}

	stopPushers = append(stopPushers, func() {
		pusher.Stop()
		if dropped := pusher.Dropped(); dropped > 0 {
			log.Warnf("%d log entries were dropped before reaching loki", dropped)
		}
	})
	log.AddHook(&lokiHook{pusher: pusher, minLevel: log.GetLevel()})
	log.Infof("Loki logging enabled for app %s", cfg.AppName)
	return nil
}
