// Package resilience provides retry and circuit breaking driven by
// apierror classification.
//
// Retry classifies every failure and, by default, retries exactly what
// apierror.IsRetryable allows. The circuit breaker only counts outages
// (network or server-family failures) so a burst of 422s never opens it:
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("inspections"))
//	err := resilience.RetryFunc(ctx, resilience.DefaultRetryConfig(), func() error {
//	    return cb.Execute(func() error { return submit(ctx) })
//	})
package resilience
