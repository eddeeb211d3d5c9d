package worker_test

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"smart-news/internal/infra/worker"
)

/* ───────── ヘルパ ───────── */

var (
	metricsOnce   sync.Once
	sharedMetrics *worker.WorkerMetrics
)

// workerMetrics はPrometheusのデフォルトレジストリ二重登録を避けるため、
// テスト全体でひとつのインスタンスを共有する。
func workerMetrics() *worker.WorkerMetrics {
	metricsOnce.Do(func() {
		sharedMetrics = worker.NewWorkerMetrics()
	})
	return sharedMetrics
}

/* ───────── テスト ───────── */

func TestDefaultConfig(t *testing.T) {
	cfg := worker.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.CronSchedule != "*/30 * * * *" {
		t.Errorf("CronSchedule = %q", cfg.CronSchedule)
	}
	if cfg.Timezone != "Asia/Ho_Chi_Minh" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
}

func TestWorkerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*worker.WorkerConfig)
		wantErr bool
	}{
		{"valid defaults", func(c *worker.WorkerConfig) {}, false},
		{"bad cron", func(c *worker.WorkerConfig) { c.CronSchedule = "not a cron" }, true},
		{"bad timezone", func(c *worker.WorkerConfig) { c.Timezone = "Mars/Olympus" }, true},
		{"zero concurrency", func(c *worker.WorkerConfig) { c.CrawlMaxConcurrent = 0 }, true},
		{"zero timeout", func(c *worker.WorkerConfig) { c.CrawlTimeout = 0 }, true},
		{"privileged port", func(c *worker.WorkerConfig) { c.HealthPort = 80 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := worker.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("CRAWL_SCHEDULE", "15 * * * *")
	t.Setenv("WORKER_TIMEZONE", "UTC")
	t.Setenv("CRAWL_MAX_CONCURRENT", "8")
	t.Setenv("CRAWL_TIMEOUT", "20m")
	t.Setenv("WORKER_HEALTH_PORT", "9999")

	cfg, err := worker.LoadConfigFromEnv(slog.Default(), workerMetrics())
	if err != nil {
		t.Fatalf("LoadConfigFromEnv err=%v", err)
	}

	if cfg.CronSchedule != "15 * * * *" {
		t.Errorf("CronSchedule = %q", cfg.CronSchedule)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.CrawlMaxConcurrent != 8 {
		t.Errorf("CrawlMaxConcurrent = %d", cfg.CrawlMaxConcurrent)
	}
	if cfg.CrawlTimeout != 20*time.Minute {
		t.Errorf("CrawlTimeout = %v", cfg.CrawlTimeout)
	}
	if cfg.HealthPort != 9999 {
		t.Errorf("HealthPort = %d", cfg.HealthPort)
	}
}

func TestLoadConfigFromEnv_FailOpen(t *testing.T) {
	t.Setenv("CRAWL_SCHEDULE", "every now and then")
	t.Setenv("CRAWL_MAX_CONCURRENT", "-3")

	cfg, err := worker.LoadConfigFromEnv(slog.Default(), workerMetrics())
	if err != nil {
		t.Fatalf("LoadConfigFromEnv must not fail: %v", err)
	}

	// 不正値はデフォルトにフォールバックする
	defaults := worker.DefaultConfig()
	if cfg.CronSchedule != defaults.CronSchedule {
		t.Errorf("CronSchedule = %q, want default %q", cfg.CronSchedule, defaults.CronSchedule)
	}
	if cfg.CrawlMaxConcurrent != defaults.CrawlMaxConcurrent {
		t.Errorf("CrawlMaxConcurrent = %d, want default %d", cfg.CrawlMaxConcurrent, defaults.CrawlMaxConcurrent)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fallback config must validate: %v", err)
	}
}
