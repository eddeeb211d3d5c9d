// Package fetcher retrieves the readable text of article pages for the
// read-aloud feature, using the Mozilla Readability algorithm.
package fetcher

import "errors"

// Sentinel errors for content fetching.
var (
	// ErrInvalidURL indicates a malformed or disallowed article URL.
	ErrInvalidURL = errors.New("invalid article URL")

	// ErrPrivateIP indicates a URL resolving to a private address.
	ErrPrivateIP = errors.New("URL resolves to private IP")

	// ErrTooManyRedirects indicates the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates a response above the size cap.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrNoContent indicates that no readable article text was extracted.
	ErrNoContent = errors.New("no readable content found")
)
