package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Dir returns ~/.taskdeck/logs
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".taskdeck", "logs"), nil
}

// Init initializes the logging system, writing logs to ~/.taskdeck/logs/taskdeck.log
// Uses text format for human readability.
func Init() (io.Closer, error) {
	logDir, err := Dir()
	if err != nil {
		return nil, err
	}
	return InitDir(logDir, slog.LevelDebug)
}

// InitDir writes logs at level or above to dir/taskdeck.log and makes that
// logger the slog default. The returned closer closes the file.
func InitDir(dir string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	// Open log file in append mode
	logPath := filepath.Join(dir, "taskdeck.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same file
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags)

	return file, nil
}

// Discard installs a logger that drops everything, for commands that must
// not touch the filesystem.
func Discard() {
	Logger = slog.New(slog.DiscardHandler)
	slog.SetDefault(Logger)
}
