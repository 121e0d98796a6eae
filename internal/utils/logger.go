package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide logger. InitLogger configures it once at
// startup; before that it runs with logrus defaults, which is enough
// for tests.
var Logger = logrus.New()

// serviceTagHook stamps every entry with the service name so merged
// log streams stay attributable.
type serviceTagHook struct {
	service string
}

func (h *serviceTagHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *serviceTagHook) Fire(entry *logrus.Entry) error {
	entry.Data["service"] = h.service
	return nil
}

func InitLogger(service string) {
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Logger.SetLevel(resolveLogLevel(os.Getenv("LOG_LEVEL")))
	Logger.AddHook(&serviceTagHook{service: service})
}

func resolveLogLevel(raw string) logrus.Level {
	if raw == "" {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(strings.ToLower(raw))
	if err != nil {
		Logger.Warnf("unrecognized LOG_LEVEL %q, using info", raw)
		return logrus.InfoLevel
	}
	return level
}
