package request

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const headerRetryAfter = "Retry-After"

// shouldRetry reports whether a response may be retried. Only rate limit
// rejections are retried; transport failures never reach here.
func shouldRetry(resp *http.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusTooManyRequests
}

// RetryAfter parses the Retry-After header as fractional seconds or as an
// HTTP date relative to now. A missing or unparsable header yields
// DefaultRetryAfter; negative values clamp to zero.
func RetryAfter(resp *http.Response, now time.Time) time.Duration {
	if resp == nil {
		return DefaultRetryAfter
	}
	after := strings.TrimSpace(resp.Header.Get(headerRetryAfter))
	if after == "" {
		return DefaultRetryAfter
	}

	if sec, err := strconv.ParseFloat(after, 64); err == nil {
		if math.IsNaN(sec) || math.IsInf(sec, 0) {
			return DefaultRetryAfter
		}
		if sec <= 0 {
			return 0
		}
		return time.Duration(sec * float64(time.Second))
	}

	if when, err := time.Parse(time.RFC1123, after); err == nil {
		if d := when.Sub(now); d > 0 {
			return d
		}
		return 0
	}

	return DefaultRetryAfter
}
