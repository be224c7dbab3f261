package logger

import (
	"log/slog"
	"os"
	"sync"

	"github.com/lmittmann/tint"
)

var once sync.Once

// Init installs a tint handler as the default slog logger. Safe to call more
// than once; only the first call wins.
func Init(level slog.Leveler, timeFormat string) {
	once.Do(func() {
		if timeFormat == "" {
			timeFormat = "15:04:05"
		}
		handler := tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: timeFormat,
		})
		slog.SetDefault(slog.New(handler))
	})
}
