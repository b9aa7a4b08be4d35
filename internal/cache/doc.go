// Quizfunnel - Quiz Funnel Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/quizfunnel

/*
Package cache provides a thread-safe LRU cache with per-entry TTL.

The API uses it to recognise repeated quiz submissions: a participant who
double-clicks the final button, or a browser that retries a request, must not
trigger a second webhook delivery.

# Usage Example

	seen := cache.NewLRU[struct{}](10000, 10*time.Minute)
	if seen.IsDuplicate(key) {
	    // already delivered within the window
	}

Expired entries are removed lazily on access and by CleanupExpired. All
operations are O(1) except CleanupExpired, which walks the list.
*/
package cache
