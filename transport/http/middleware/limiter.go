package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"fixmycondo/shared"
	"fixmycondo/shared/constant"
	"fixmycondo/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit allows MaxRequests per client address in a fixed window. When the cache is down
// requests are let through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limits := a.config.App.RateLimiter
			if !limits.Enable {
				next.ServeHTTP(w, r)

				return
			}

			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, a.getClientIP(r))

			count, err := a.cache.Increment(r.Context(), cacheKey, limits.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limits.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(limits.MaxRequests)-count), 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limits.WindowSeconds))

			if count > int64(limits.MaxRequests) {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the peer address
// without its port.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
