package debug

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/lmittmann/tint"
)

// ErrLocked is returned when another evenup process holds the log file.
var ErrLocked = errors.New("debug log is in use by another process")

var (
	enabled  bool
	logFile  *os.File
	fileLock *flock.Flock
	logger   = slog.New(slog.DiscardHandler)
	mu       sync.Mutex
)

// DefaultPath returns the default debug log location.
func DefaultPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "evenup", "debug.log")
}

// Enable turns on debug logging to the specified file. The file is
// truncated and held under an exclusive lock until Close.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return ErrLocked
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		_ = lock.Unlock()
		return err
	}

	logFile = f
	fileLock = lock
	enabled = true
	logger = newLogger(f, levelFromEnv())

	logger.Info("debug logging enabled", "path", path)
	return nil
}

// Close closes the debug log file and releases its lock.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	if fileLock != nil {
		_ = fileLock.Unlock()
		fileLock = nil
	}
	enabled = false
	logger = slog.New(slog.DiscardHandler)
}

// IsEnabled returns whether debug logging is enabled.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Logger returns the current logger. It discards everything while
// logging is disabled.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a debug message with key/value attributes.
func Log(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Error writes an error message with key/value attributes.
func Error(msg string, err error, args ...any) {
	Logger().Error(msg, append([]any{tint.Err(err)}, args...)...)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    true,
	}))
}

// levelFromEnv reads LOG_LEVEL; the debug log defaults to debug.
func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// Timed logs the duration of an operation. Usage:
//
//	defer debug.Timed("operation name")()
func Timed(name string) func() {
	if !IsEnabled() {
		return func() {}
	}

	start := time.Now()
	Log(name + " started")

	return func() {
		Log(name+" completed", "elapsed", time.Since(start))
	}
}
