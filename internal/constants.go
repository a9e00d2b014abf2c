/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import "os"

const (
	UserAgent      = "squashtd/0.3.0 (+https://github.com/mikeb26/squashtd)"
	WebCacheBucket = "squashtd-prod-webcache"
	WebCachePrefix = "drawcache"
)

// CacheBucket returns the S3 bucket backing the web cache. It can be
// overridden with SQUASHTD_CACHE_BUCKET; setting it to "none" disables S3
// and keeps the cache in memory.
func CacheBucket() string {
	if b, ok := os.LookupEnv("SQUASHTD_CACHE_BUCKET"); ok {
		if b == "none" {
			return ""
		}
		return b
	}
	return WebCacheBucket
}
