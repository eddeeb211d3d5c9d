package metrics

import "time"

// RecordSearch records one aggregation call: which language table served it,
// which relaxation tier produced the result, and how long it took.
func RecordSearch(language, tier string, duration time.Duration) {
	SearchesTotal.WithLabelValues(language, tier).Inc()
	SearchDuration.WithLabelValues(language).Observe(duration.Seconds())
}

// RecordSourceError records a per-source fetch failure.
// errorType should describe the failure class (e.g. "fetch_failed").
func RecordSourceError(source, errorType string) {
	SourceErrorsTotal.WithLabelValues(source, errorType).Inc()
}

// RecordArticlesFetched records the number of normalized articles a source
// contributed to one aggregation or crawl pass.
func RecordArticlesFetched(source string, count int) {
	ArticlesFetchedTotal.WithLabelValues(source).Add(float64(count))
}

// RecordFeedCrawl records metrics for one background crawl of a source.
func RecordFeedCrawl(source string, duration time.Duration, itemsFound int) {
	FeedCrawlDuration.WithLabelValues(source).Observe(duration.Seconds())
	if itemsFound > 0 {
		RecordArticlesFetched(source, itemsFound)
	}
}

// RecordFeedCrawlError records an error during background feed crawling.
func RecordFeedCrawlError(source, errorType string) {
	FeedCrawlErrors.WithLabelValues(source, errorType).Inc()
}

// UpdateArticlesStored updates the gauge of crawled articles in the database.
// Updated periodically by the worker, not per write.
func UpdateArticlesStored(count int) {
	ArticlesStoredTotal.Set(float64(count))
}

// RecordSynthesis records one synthesis attempt against a specific engine.
func RecordSynthesis(engine string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	SynthesisAttemptsTotal.WithLabelValues(engine, status).Inc()
	SynthesisDuration.WithLabelValues(engine).Observe(duration.Seconds())
}

// RecordTranscription records the result of a transcription request.
func RecordTranscription(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	TranscriptionsTotal.WithLabelValues(status).Inc()
}

// RecordContentFetchSuccess records a successful article content fetch.
func RecordContentFetchSuccess(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchFailed records a failed article content fetch.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordHistoryWrite records the result of a search history write.
func RecordHistoryWrite(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	HistoryWritesTotal.WithLabelValues(status).Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g. "insert_history", "select_articles").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
