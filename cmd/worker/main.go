package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"smart-news/internal/config"
	"smart-news/internal/domain/entity"
	pgRepo "smart-news/internal/infra/adapter/persistence/postgres"
	sqliteRepo "smart-news/internal/infra/adapter/persistence/sqlite"
	"smart-news/internal/infra/db"
	"smart-news/internal/infra/scraper"
	workerPkg "smart-news/internal/infra/worker"
	"smart-news/internal/observability/logging"
	"smart-news/internal/repository"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("crawl_max_concurrent", workerConfig.CrawlMaxConcurrent),
		slog.Duration("crawl_timeout", workerConfig.CrawlTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	sources, err := config.LoadSources()
	if err != nil {
		logger.Error("failed to load source tables", slog.Any("error", err))
		os.Exit(1)
	}

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	crawler := buildCrawler(sources, database, workerConfig.CrawlMaxConcurrent)
	runCronWorker(ctx, logger, crawler, workerConfig, workerMetrics, healthServer)
}

// initDatabase opens the database connection and ensures the schema is in
// place before the first crawl run.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// buildCrawler wires the fetchers and the article store into a crawler.
func buildCrawler(sources map[string][]entity.SourceConfig, database *sql.DB, maxConcurrent int) *workerPkg.Crawler {
	client := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}

	factory := scraper.NewScraperFactory(client)
	return workerPkg.NewCrawler(
		sources,
		scraper.NewRSSFetcher(client),
		factory.CreateScrapers(),
		articleRepo(database),
		maxConcurrent,
	)
}

// articleRepo picks the repository implementation matching the DSN driver.
func articleRepo(database *sql.DB) repository.ArticleRepository {
	if db.DriverFor(os.Getenv("DATABASE_URL")) == "pgx" {
		return pgRepo.NewArticleRepo(database)
	}
	return sqliteRepo.NewArticleRepo(database)
}

// runCronWorker starts the cron scheduler and blocks until a shutdown
// signal arrives.
func runCronWorker(
	ctx context.Context,
	logger *slog.Logger,
	crawler *workerPkg.Crawler,
	cfg *workerPkg.WorkerConfig,
	metrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runCrawlJob(ctx, logger, crawler, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	// 起動直後に1回クロールして、初回スケジュールを待たずにコーパスを温める
	go runCrawlJob(ctx, logger, crawler, cfg, metrics)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("running crawl job did not finish in time")
	}
	logger.Info("worker stopped")
}

// runCrawlJob executes a single crawl run with timeout and metrics.
func runCrawlJob(ctx context.Context, logger *slog.Logger, crawler *workerPkg.Crawler, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("crawl started")

	runCtx, cancel := context.WithTimeout(ctx, cfg.CrawlTimeout)
	defer cancel()

	sourceCount := 0
	for _, table := range crawler.Sources {
		sourceCount += len(table)
	}

	if err := crawler.Run(runCtx); err != nil {
		logger.Error("crawl failed", slog.Any("error", err))
		metrics.RecordRun(false, time.Since(startTime), sourceCount)
		return
	}

	metrics.RecordRun(true, time.Since(startTime), sourceCount)
	logger.Info("crawl completed",
		slog.Int("sources", sourceCount),
		slog.Duration("duration", time.Since(startTime)))
}
