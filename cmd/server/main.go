package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"pair-chat/auth"
	"pair-chat/infrastructure/grpc/server"
	"pair-chat/infrastructure/rest"
	"pair-chat/infrastructure/search"
	"pair-chat/infrastructure/storage"
	"pair-chat/infrastructure/websocket"
	"pair-chat/internal"
	"pair-chat/moderation"
	"pair-chat/observability"
	"pair-chat/runtime"
	"pair-chat/runtime/workers"
	"pair-chat/services"
	"syscall"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
)

// Exit codes give a meaningful status to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pair-chat terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run builds every component and blocks until a signal or a server failure.
// Returning instead of exiting lets the deferred closes flush badger and bluge.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig(".env")
	if err != nil {
		return exitConfig, err
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx := context.Background()

	// 2. Storage (BadgerDB + Bluge)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if config.DebugPort > 0 && logger.Enabled(ctx, slog.LevelDebug) {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, MessageMapper)
	}

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	messages := storage.NewMessageRepository(db, logger)
	matches := storage.NewRelationshipRepository(db, logger)
	attachments := storage.NewAttachmentRepository(db, logger, config.MaxAttachmentBytes)
	index := search.NewMessageIndex(blugeWriter, logger)

	// 3. Moderation
	loader := runtime.DefaultCensoredLoader()
	if config.CensoredDir != "" {
		loader = runtime.NewCensoredLoader(os.DirFS(config.CensoredDir))
	}
	censored, err := loader.LoadAll(censoredRoot(config))
	if err != nil {
		return exitConfig, fmt.Errorf("loading censored words: %w", err)
	}
	moderator, err := moderation.NewModerator(censored.Words, charReplacement, logger)
	if err != nil {
		return exitConfig, err
	}
	logger.Info("Censored words loaded", "languages", censored.Languages, "count", len(censored.Words))

	// 4. Live core
	var registry *runtime.Registry
	metrics := observability.NewMetrics(func() int { return registry.CountOnline() })
	registry = runtime.NewRegistry(logger, metrics)
	presence := runtime.NewPresenceBroadcaster(registry, matches, logger, metrics)
	registry.Listen(presence)
	typing := runtime.NewTypingDebouncer(registry, config.TypingWindow, logger, metrics)
	router := runtime.NewMessageRouter(messages, registry, typing, runtime.RouterOptions{
		MaxTextLength:  config.MaxContentLength,
		HistoryLimit:   config.LimitMessages,
		Censor:         moderator,
		DetectLanguage: moderation.DetectLanguage,
		Index:          index,
	}, logger, metrics)
	relay := runtime.NewEventRelay(registry, matches, logger, metrics)

	sup := workers.NewSupervisor(logger, config.RestartInterval).OnRestart(metrics.IncrWorkerRestart)
	orchestrator := runtime.NewOrchestrator(logger, sup, registry, presence, typing, router,
		config.NumberOfWorkers, config.WorkerBufferSize, config.TypingSweep)

	// 5. Transports
	tokens, err := auth.NewJWTValidator(config.JWTSecret, config.JWTIssuer, config.AuthTokenDuration)
	if err != nil {
		return exitConfig, err
	}
	gateway := websocket.NewGateway(tokens, orchestrator, websocket.SessionOptions{
		IdleTimeout:   config.IdleTimeout,
		WriteWait:     config.WriteTimeout,
		MaxFrameBytes: config.MaxFrameBytes,
		BufferSize:    config.ConnectionBufferSize,
		FrameRate:     rate.Limit(config.FramesPerSecond),
		FrameBurst:    config.FrameBurst,
	}, logger, metrics)
	chatService := services.NewChatService(logger, router, relay, registry, attachments, matches)
	api := rest.NewAPI(chatService, tokens, gateway, metrics, logger, config.MaxAttachmentBytes)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", config.HTTPPort),
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	grpcServer, healthServer := server.NewGRPCServer(logger, tokens, server.NewRelayServer(logger, chatService))

	// 6. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 3)

	go func() {
		logger.Info("Starting orchestrator...")
		if err := orchestrator.Start(ctx); err != nil {
			errChan <- fmt.Errorf("orchestrator error: %w", err)
		}
	}()

	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	grpcAddress := fmt.Sprintf("0.0.0.0:%d", config.GRPCPort)
	listener, err := net.Listen("tcp", grpcAddress)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", grpcAddress, err)
	}
	go func() {
		logger.Info("Starting gRPC server", "address", grpcAddress)
		for serviceName := range grpcServer.GetServiceInfo() {
			logger.Debug("gRPC exposed service", "name", serviceName)
		}
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 8. Graceful Shutdown
	// New connections are refused first, then open sessions drain before the workers stop.
	logger.Info("Shutting down gracefully...")
	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownDeadline)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown did not complete", "error", err)
	}
	grpcServer.GracefulStop()
	orchestrator.Stop()
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

// censoredRoot is the directory LoadAll reads inside the loader's file system.
func censoredRoot(config internal.Config) string {
	if config.CensoredDir != "" {
		return "."
	}
	return "censored"
}

// MessageMapper shows messages in the debug inspector. Index keys keep the default rendering.
func MessageMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	if !storage.IsMessageKey(key) {
		row.Type = "INDEX"
		return row
	}
	msg, err := storage.DecodeMessage(val)
	if err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}
	row.Type = msg.State.String()
	row.Detail = fmt.Sprintf("%s -> %s: %s", msg.From, msg.To, msg.Payload.Text)
	if a := msg.Payload.Attachment; a != nil {
		row.Detail += fmt.Sprintf(" [%s %s]", a.ContentType, a.Name)
	}
	return row
}
