package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	diagFileName     = "diagnostics_log.txt"
	dispatchFileName = "dispatch_log.txt"
)

var (
	diagLog      zerolog.Logger
	diagWriter   *lumberjack.Logger
	dispatchFile *os.File
	logMu        sync.Mutex
	logReady     atomic.Bool
	pid          int
	session      string
	dir          string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		return absPath(flagPath)
	}

	// Priority 2: HOTKEYD_LOG_PATH environment variable
	if envPath := os.Getenv("HOTKEYD_LOG_PATH"); envPath != "" {
		return absPath(envPath)
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func absPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

// Session returns the id stamped on every diagnostics line of this run.
func Session() string {
	return session
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()
	session = uuid.NewString()

	var err error
	dispatchFile, err = os.OpenFile(filepath.Join(dir, dispatchFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	diagWriter = &lumberjack.Logger{
		Filename:   filepath.Join(dir, diagFileName),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagWriter,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().
		Timestamp().
		Int("pid", pid).
		Str("session", session[:8]).
		Logger()

	logReady.Store(true)
	diagLog.Info().Str("dir", dir).Msg("log_open")
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	logReady.Store(false)
	if diagWriter != nil {
		diagWriter.Close()
		diagWriter = nil
	}
	if dispatchFile != nil {
		dispatchFile.Close()
		dispatchFile = nil
	}
}

func Info(msg string) {
	if logReady.Load() {
		diagLog.Info().Msg(msg)
	}
}

func Infof(format string, args ...any) {
	if logReady.Load() {
		diagLog.Info().Msg(fmt.Sprintf(format, args...))
	}
}

func Debugf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Debug().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if logReady.Load() {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady.Load() {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady.Load() {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func Registered(id uint32, combo, native string, nativeID uint32) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Uint32("id", id).
		Str("combo", combo).
		Str("native", native).
		Uint32("native_id", nativeID).
		Msg("hotkey_registered")
}

func Unregistered(id uint32, combo string) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Uint32("id", id).
		Str("combo", combo).
		Msg("hotkey_unregistered")
}

func HandlerInstalled(backend string) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().Str("backend", backend).Msg("handler_installed")
}

func HandlerRemoved(backend string) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().Str("backend", backend).Msg("handler_removed")
}

// Dispatched appends one line per delivered press to dispatch_log.txt.
func Dispatched(id uint32, combo string) {
	if !logReady.Load() {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()
	if dispatchFile == nil {
		return
	}
	line := fmt.Sprintf("%s\t[%d]\t%d\t%s\n", time.Now().Format("2006-01-02 15:04:05"), pid, id, combo)
	dispatchFile.WriteString(line)
}

func Dropped(nativeID uint32) {
	if !logReady.Load() {
		return
	}
	diagLog.Debug().Uint32("native_id", nativeID).Msg("dispatch_dropped")
}

func ActionFailed(id uint32, action string, err error) {
	if !logReady.Load() {
		return
	}
	diagLog.Error().
		Uint32("id", id).
		Str("action", action).
		Err(err).
		Msg("action_failed")
}

func SessionStart(backend, platform string, bindings int) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Str("backend", backend).
		Str("platform", platform).
		Int("bindings", bindings).
		Msg("session_start")
}

func SessionEnd(delivered, dropped uint64) {
	if !logReady.Load() {
		return
	}
	diagLog.Info().
		Uint64("delivered", delivered).
		Uint64("dropped", dropped).
		Msg("session_end")
}
