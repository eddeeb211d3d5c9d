package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smart-news/internal/common/pagination"
	"smart-news/internal/config"
	"smart-news/internal/domain/entity"
	pgRepo "smart-news/internal/infra/adapter/persistence/postgres"
	sqliteRepo "smart-news/internal/infra/adapter/persistence/sqlite"
	"smart-news/internal/infra/db"
	"smart-news/internal/infra/fetcher"
	"smart-news/internal/infra/scraper"
	"smart-news/internal/infra/speech"
	"smart-news/internal/observability/logging"
	"smart-news/internal/observability/tracing"
	"smart-news/internal/repository"
	envcfg "smart-news/pkg/config"

	histUC "smart-news/internal/usecase/history"
	newsUC "smart-news/internal/usecase/news"
	srcUC "smart-news/internal/usecase/source"
	speechUC "smart-news/internal/usecase/speech"

	hhttp "smart-news/internal/handler/http"
	hauth "smart-news/internal/handler/http/auth"
	hhistory "smart-news/internal/handler/http/history"
	hnews "smart-news/internal/handler/http/news"
	"smart-news/internal/handler/http/requestid"
	hsource "smart-news/internal/handler/http/source"
	hspeech "smart-news/internal/handler/http/speech"
	authservice "smart-news/internal/service/auth"
)

// @title           Smart News API
// @version         1.0
// @description     多言語ニュース検索・読み上げシステムの REST API
// @description     ニュース検索、音声合成・文字起こし、検索履歴の管理機能を提供します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	validateJWTSecret(logger)
	validateAdminCredentials(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	sources, err := config.LoadSources()
	if err != nil {
		logger.Error("failed to load source tables", slog.Any("error", err))
		os.Exit(1)
	}

	histSvc := histUC.NewService(historyRepo(database))
	newsSvc := buildNewsService(sources, histSvc)
	speechSvc := buildSpeechService(logger)
	srcSvc := srcUC.NewService(sources)

	handler, limiters := setupRoutes(logger, database, sources, newsSvc, speechSvc, srcSvc, histSvc)
	runServer(logger, handler, limiters, histSvc)
}

// validateJWTSecret refuses to start with a missing or weak signing key.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// validateAdminCredentials checks the operator account at startup so a
// misconfigured deployment fails fast instead of rejecting every login.
func validateAdminCredentials(logger *slog.Logger) {
	user := os.Getenv("ADMIN_USER")
	pass := os.Getenv("ADMIN_USER_PASSWORD")
	if user == "" || pass == "" {
		logger.Error("ADMIN_USER and ADMIN_USER_PASSWORD must be set")
		os.Exit(1)
	}
	if len(pass) < 8 {
		logger.Error("ADMIN_USER_PASSWORD must be at least 8 characters")
		os.Exit(1)
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// historyRepo picks the repository implementation matching the DSN driver.
func historyRepo(database *sql.DB) repository.HistoryRepository {
	if db.DriverFor(os.Getenv("DATABASE_URL")) == "pgx" {
		return pgRepo.NewHistoryRepo(database)
	}
	return sqliteRepo.NewHistoryRepo(database)
}

// buildNewsService wires the feed fetcher and the per-type web scrapers
// into the aggregation service.
func buildNewsService(sources map[string][]entity.SourceConfig, histSvc *histUC.Service) *newsUC.Service {
	client := &http.Client{Timeout: 10 * time.Second}
	factory := scraper.NewScraperFactory(client)
	svc := newsUC.NewService(
		sources,
		config.DefaultLanguage,
		scraper.NewRSSFetcher(client),
		factory.CreateScrapers(),
		histSvc,
	)
	return &svc
}

// buildSpeechService assembles the synthesis fallback chain from the
// environment. Engines whose settings are missing are skipped with a
// warning; an empty chain still serves transcription if configured.
func buildSpeechService(logger *slog.Logger) *speechUC.Service {
	speechCfg, err := config.LoadSpeechConfigFromEnv()
	if err != nil {
		logger.Error("failed to load speech configuration", slog.Any("error", err))
		os.Exit(1)
	}

	client := &http.Client{Timeout: 60 * time.Second}

	var strategies []speechUC.Strategy
	for _, name := range speechCfg.Engines {
		switch name {
		case "cloud-tts":
			if speechCfg.TTSBaseURL == "" {
				logger.Warn("cloud-tts engine skipped, TTS_BASE_URL not set")
				continue
			}
			strategies = append(strategies, speech.NewHTTPTTSEngine(speech.HTTPTTSConfig{
				Engine:  "cloud-tts",
				BaseURL: speechCfg.TTSBaseURL,
				APIKey:  speechCfg.TTSAPIKey,
			}, client))
		case "espeak":
			strategies = append(strategies, speech.NewEspeakEngine(speechCfg.EspeakBinary))
		}
	}
	if len(strategies) == 0 {
		logger.Warn("no synthesis engines configured, synthesis endpoints will fail")
	}

	var transcriber speechUC.Transcriber
	if speechCfg.WhisperBaseURL != "" {
		transcriber = speech.NewWhisperClient(speech.WhisperConfig{
			BaseURL: speechCfg.WhisperBaseURL,
			APIKey:  speechCfg.WhisperAPIKey,
			Model:   speechCfg.WhisperModel,
		}, client)
	} else {
		logger.Info("transcription disabled, WHISPER_BASE_URL not set")
	}

	fetchCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load content fetch configuration", slog.Any("error", err))
		os.Exit(1)
	}

	return speechUC.NewService(
		strategies,
		transcriber,
		fetcher.NewReadabilityFetcher(fetchCfg),
		speechCfg.SynthesisPerSecond,
	)
}

// rateLimiters holds the per-concern limiters so cleanup can be started
// for each of them.
type rateLimiters struct {
	Auth *hhttp.RateLimiter
	API  *hhttp.RateLimiter
}

// setupRoutes registers all HTTP routes and wraps them in the middleware
// chain.
func setupRoutes(
	logger *slog.Logger,
	database *sql.DB,
	sources map[string][]entity.SourceConfig,
	newsSvc *newsUC.Service,
	speechSvc *speechUC.Service,
	srcSvc *srcUC.Service,
	histSvc *histUC.Service,
) (http.Handler, *rateLimiters) {
	// レート制限: 認証エンドポイントは1分間に5リクエストまで
	authLimiter := hhttp.NewRateLimiter(5, 1*time.Minute)
	// レート制限: API 全体は1分間に100リクエストまで
	apiLimiter := hhttp.NewRateLimiter(100, 1*time.Minute)

	authService := authservice.NewAuthService(hauth.NewEnvAuthProvider())
	paginationCfg := pagination.LoadFromEnv()
	version := getVersion()

	mux := http.NewServeMux()
	mux.Handle("POST /auth/token", authLimiter.Limit(hauth.TokenHandler(authService)))

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Sources: sources, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	hnews.Register(mux, newsSvc)
	hspeech.Register(mux, speechSvc)
	hsource.Register(mux, srcSvc)
	hhistory.Register(mux, histSvc, paginationCfg, logger)

	// ミドルウェアは内側から外側の順に適用する
	var handler http.Handler = mux
	handler = hhttp.MetricsMiddleware(handler)
	handler = hhttp.InputValidation()(handler)
	handler = hhttp.LimitRequestBody(1 << 20)(handler)
	handler = hhttp.Timeout(30 * time.Second)(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = apiLimiter.Limit(handler)
	handler = tracing.Middleware(handler)
	handler = requestid.Middleware(handler)

	return handler, &rateLimiters{Auth: authLimiter, API: apiLimiter}
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return envcfg.GetEnvString("VERSION", "dev")
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, limiters *rateLimiters, histSvc *histUC.Service) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupInterval := hhttp.LoadCleanupInterval()
	go hhttp.StartRateLimitCleanup(ctx, limiters.Auth, cleanupInterval, "auth")
	go hhttp.StartRateLimitCleanup(ctx, limiters.API, cleanupInterval, "api")

	addr := envcfg.GetEnvString("LISTEN_ADDR", ":8080")

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// 処理中の履歴書き込みを待ってから終了する
	if err := histSvc.Shutdown(shutdownCtx); err != nil {
		logger.Warn("history writes did not drain in time", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
