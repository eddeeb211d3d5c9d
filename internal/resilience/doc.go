// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and retry logic used around the outbound calls this
// service depends on: news feed fetches, full-article content fetches, speech engine
// invocations, and database operations.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.FeedFetchConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchFeed(url)
//	})
//
//	err := retry.WithBackoff(ctx, retry.FeedFetchConfig(), func() error {
//	    return performOperation()
//	})
package resilience
