package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/minhquy1903/snapchat/internal/chat"
	"github.com/minhquy1903/snapchat/internal/config"
	"github.com/minhquy1903/snapchat/internal/handlers"
	"github.com/minhquy1903/snapchat/internal/logging"
	"github.com/minhquy1903/snapchat/internal/middleware"
	"github.com/minhquy1903/snapchat/internal/repository"
	"github.com/minhquy1903/snapchat/internal/services"
	"github.com/minhquy1903/snapchat/internal/session"
	"github.com/minhquy1903/snapchat/internal/store"
)

func main() {
	if err := run(); err != nil {
		logging.Log.WithError(err).Error("application error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logging.Init(cfg.Server.Environment)
	logger := logging.Log
	if cfg.Server.Debug {
		logging.SetLevel(logrus.DebugLevel)
	}

	logger.Info("starting snapchat server")

	logger.WithField("addr", cfg.Redis.Addr()).Info("connecting to redis")
	redisClient, err := store.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	remoteStore := store.NewRedisStore(redisClient)

	// Repositories
	users := repository.NewUserRepository(remoteStore)
	feeds := repository.NewFeedRepository(remoteStore)
	stories := repository.NewStoryRepository(remoteStore)

	// External messaging platform
	bridge := chat.NewBridge(&cfg.CometChat)

	// Services
	friendService := services.NewFriendService(users, feeds, bridge)
	suggestionService := services.NewSuggestionService(users)
	userService := services.NewUserService(users, bridge)
	storyService := services.NewStoryService(stories)
	reconciler := services.NewReconcileService(users, cfg.Reconcile.Interval, cfg.Reconcile.Repair)

	// Sessions
	sessions := session.NewManager(session.NewRedisTokenStore(redisClient), cfg.Session.TTL)

	// Handlers
	healthHandler := handlers.NewHealthHandler(remoteStore)
	authHandler := handlers.NewAuthHandler(userService, sessions)
	friendHandler := handlers.NewFriendHandler(friendService, suggestionService)
	notificationHandler := handlers.NewNotificationHandler(feeds)
	storyHandler := handlers.NewStoryHandler(storyService)
	liveHandler := handlers.NewLiveHandler(remoteStore)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(sessions)
	requestLogger := middleware.NewRequestLogger(logger)
	sendLimiter := middleware.NewRateLimiter(redisClient, 30, time.Hour, "ratelimit:send")

	requireSession := authMiddleware.RequireSession

	mux := http.NewServeMux()

	// Health endpoints (no auth)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Session endpoints
	mux.Handle("POST /api/auth/register", http.HandlerFunc(authHandler.Register))
	mux.Handle("POST /api/auth/login", http.HandlerFunc(authHandler.Login))
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(authHandler.Logout))
	mux.Handle("GET /api/auth/me", requireSession(http.HandlerFunc(authHandler.Me)))

	// Friend request endpoints
	mux.Handle("POST /api/friends/requests", requireSession(sendLimiter.Limit(http.HandlerFunc(friendHandler.SendRequest))))
	mux.Handle("PUT /api/notifications/{id}/accept", requireSession(http.HandlerFunc(friendHandler.AcceptRequest)))
	mux.Handle("PUT /api/notifications/{id}/reject", requireSession(http.HandlerFunc(friendHandler.RejectRequest)))
	mux.Handle("GET /api/friends/suggestions", requireSession(http.HandlerFunc(friendHandler.Suggestions)))

	// Notification feed
	mux.Handle("GET /api/notifications", requireSession(http.HandlerFunc(notificationHandler.List)))

	// Stories
	mux.Handle("GET /api/stories", requireSession(http.HandlerFunc(storyHandler.List)))
	mux.Handle("POST /api/stories", requireSession(http.HandlerFunc(storyHandler.Create)))

	// Live snapshot stream
	mux.Handle("GET /api/live/{collection}", requireSession(http.HandlerFunc(liveHandler.Stream)))

	handler := requestLogger.Apply(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background consistency scan for pending/waiting mirror drift
	go reconciler.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
