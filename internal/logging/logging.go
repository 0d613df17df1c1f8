package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/steveyiyo/tts-clone-backend/internal/config"
)

// New builds the process logger. Output goes to stderr, plus a rotating
// file when LOG_FILE is set.
func New(cfg config.Config) zerolog.Logger {
	var w io.Writer = os.Stderr
	if cfg.Development() {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	if cfg.LogFile != "" {
		w = zerolog.MultiLevelWriter(w, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}
	return zerolog.New(w).Level(parseLevel(cfg.LogLevel)).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
