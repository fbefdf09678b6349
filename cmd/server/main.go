package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/rpggio/workbench/internal/config"
	"github.com/rpggio/workbench/internal/dates"
	"github.com/rpggio/workbench/internal/domain/activity"
	"github.com/rpggio/workbench/internal/domain/calendar"
	"github.com/rpggio/workbench/internal/domain/knowledge"
	"github.com/rpggio/workbench/internal/domain/project"
	"github.com/rpggio/workbench/internal/domain/security"
	"github.com/rpggio/workbench/internal/domain/timeledger"
	"github.com/rpggio/workbench/internal/mcp"
	"github.com/rpggio/workbench/internal/metrics"
	"github.com/rpggio/workbench/internal/seed"
	"github.com/rpggio/workbench/internal/sqlite"
	"github.com/rpggio/workbench/internal/transport"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "workbench: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.ReadCloser, stdout io.WriteCloser, stderr io.Writer) error {
	cfg, err := config.Load(args)
	if config.IsHelp(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	m := metrics.New()
	services, cleanup, err := buildServices(cfg, logger, m)
	if err != nil {
		return err
	}
	defer cleanup()

	mcpServer, err := mcp.NewServer(mcp.Config{
		Services: services,
		Metrics:  m,
		Logger:   logger,
		Version:  version,
	})
	if err != nil {
		return err
	}

	if cfg.Transport.Mode == "stdio" {
		return runStdioMode(ctx, logger, mcpServer, stdin, stdout)
	}
	return runHTTPMode(ctx, logger, mcpServer, cfg, m)
}

// buildServices seeds every domain service. The returned cleanup closes the
// activity database, if one was opened.
func buildServices(cfg config.Config, logger *slog.Logger, m *metrics.Metrics) (mcp.Services, func(), error) {
	noop := func() {}

	loc, err := cfg.Seed.Location()
	if err != nil {
		return mcp.Services{}, noop, err
	}
	reference, err := cfg.Seed.Reference(time.Now(), loc)
	if err != nil {
		return mcp.Services{}, noop, err
	}
	clock := dates.SystemClock(loc)
	if cfg.Seed.ReferenceDate != "" {
		clock = anchoredClock(reference, loc)
	}

	registry := project.NewDefaultRegistry()
	dataset, err := seed.New(reference, registry.List(), logger).Generate()
	if err != nil {
		return mcp.Services{}, noop, fmt.Errorf("seed data: %w", err)
	}

	services := mcp.Services{
		Projects: registry,
		Time: timeledger.NewService(registry, logger,
			timeledger.WithClock(clock),
			timeledger.WithEntries(dataset.TimeEntries),
			timeledger.WithRecorder(m),
		),
		Calendar: calendar.NewService(dataset.Events, logger,
			calendar.WithClock(clock),
			calendar.WithLocation(loc),
		),
		Knowledge: knowledge.NewService(dataset.Articles, logger),
		Security: security.NewService(dataset.Issues, logger,
			security.WithClock(clock),
			security.WithLocation(loc),
		),
	}

	if !cfg.Activity.Enabled {
		logger.Info("activity log disabled")
		return services, noop, nil
	}

	if err := ensureDBDir(cfg.Activity.Path); err != nil {
		return mcp.Services{}, noop, fmt.Errorf("prepare activity database path: %w", err)
	}
	db, err := sqlite.New(cfg.Activity.Path)
	if err != nil {
		return mcp.Services{}, noop, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return mcp.Services{}, noop, err
	}
	services.Activity = activity.NewService(sqlite.NewActivityRepository(db), logger)

	return services, func() { _ = db.Close() }, nil
}

// anchoredClock pins the calendar date to reference while the time of day
// follows the wall clock.
func anchoredClock(reference time.Time, loc *time.Location) dates.Clock {
	day := dates.StartOfDay(reference.In(loc))
	return func() time.Time {
		now := time.Now().In(loc)
		return day.Add(now.Sub(dates.StartOfDay(now)))
	}
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server, stdin io.ReadCloser, stdout io.WriteCloser) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or context is canceled
	err := mcpServer.Run(ctx, &sdkmcp.IOTransport{Reader: stdin, Writer: stdout})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server, cfg config.Config, m *metrics.Metrics) error {
	router := transport.NewRouter(transport.Options{
		Server:         mcpServer,
		Stateless:      cfg.Transport.Stateless,
		SessionTimeout: cfg.Transport.SessionTimeout,
		Metrics:        m.Handler(),
		Logger:         logger,
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", addr, "stateless", cfg.Transport.Stateless)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		waitForShutdown(gctx, logger, httpServer)
		return nil
	})
	return g.Wait()
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(ctx context.Context, logger *slog.Logger, server *http.Server) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// logFileWriter appends to a log file and trims it back to the newest
// keepLogSizeBytes once it passes maxLogSizeBytes.
type logFileWriter struct {
	path string
	file *os.File
	mu   sync.Mutex
}

func newLogFileWriter(path string) (*logFileWriter, *os.File, error) {
	if err := ensureLogDir(path); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer := &logFileWriter{path: path, file: file}
	if err := writer.truncateIfNeeded(); err != nil {
		file.Close()
		return nil, nil, err
	}
	return writer, file, nil
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	if err := w.truncateIfNeeded(); err != nil {
		return n, err
	}
	return n, nil
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= maxLogSizeBytes {
		return nil
	}

	buf := make([]byte, keepLogSizeBytes)
	n, err := w.file.ReadAt(buf, size-keepLogSizeBytes)
	if err != nil && err != io.EOF {
		return err
	}
	buf = buf[:n]

	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := w.file.Write(buf); err != nil {
		return err
	}
	_, err = w.file.Seek(0, io.SeekEnd)
	return err
}
