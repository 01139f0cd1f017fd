// Package ratelimit provides a fixed-window request limiter keyed by
// client address, used to throttle the public chat endpoint.
package ratelimit
