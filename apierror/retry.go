package apierror

import "net/http"

// IsRetryable reports whether the operation that produced p is safe to try
// again. Backoff and attempt budgets belong to the caller.
func IsRetryable(p *ParsedError) bool {
	if p == nil {
		return false
	}
	switch {
	case p.IsNetworkError():
		return true
	case p.Code == CodeRateLimitExceeded, p.Status == http.StatusTooManyRequests:
		return true
	case p.Status == http.StatusRequestTimeout:
		return true
	case p.Status >= 500 && p.Status < 600:
		return true
	}
	return false
}
