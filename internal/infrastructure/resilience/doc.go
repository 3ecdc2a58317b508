/*
Package resilience provides a circuit breaker for upstream calls.

# Overview

A Breaker stops sending requests to a dependency that keeps failing, then
probes it again after a cool-down. The fetch client uses one to shed load
from unreachable origins when FETCH_BREAKER_ENABLED is set.

# Usage

	breaker := resilience.New("fetch-upstream", resilience.Settings{
		MaxRequests: 5,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 10
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	page, err := resilience.Do(breaker, func() (*fetch.Page, error) {
		return client.get(ctx, url)
	})

# States

	Closed --[ReadyToTrip]--> Open --[Timeout]--> Half-Open --[MaxRequests successes]--> Closed
	                                                  |
	                                              [failure]
	                                                  v
	                                                 Open

Results that arrive after the breaker has changed state are discarded.
*/
package resilience
