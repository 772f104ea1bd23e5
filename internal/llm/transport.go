package llm

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sant0-9/essaypolish/internal/logger"
)

const requestTimeout = 5 * time.Minute

// newHTTPClient returns a standard client that retries transient failures
// with exponential backoff
func newHTTPClient() *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 1 * time.Second
	rc.RetryWaitMax = 5 * time.Second
	rc.CheckRetry = retryablehttp.DefaultRetryPolicy
	rc.Logger = logger.Leveled{}
	rc.HTTPClient.Timeout = requestTimeout

	return rc.StandardClient()
}
