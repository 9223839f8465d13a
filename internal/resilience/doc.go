// Package resilience groups the fault-tolerance helpers used on the relay's
// outbound paths.
//
// Subpackages:
//   - retry: bounded retry with backoff and a transport-error classifier
//   - circuitbreaker: gobreaker wrappers for the database, platform API and redis
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.PlatformAPIConfig())
//	err := retry.WithBackoff(ctx, retry.LookupConfig(), func() error {
//	    return cb.Run(func() error { return lookup(ctx) })
//	})
package resilience
