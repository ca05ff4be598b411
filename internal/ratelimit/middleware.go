package ratelimit

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/httputil"
	"github.com/optiverse/opticore/internal/telemetry"
)

const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRetryAfter         = "Retry-After"

	fingerprintUALen = 24
)

// Middleware enforces the named endpoint-class preset (ai, voice, general,
// admin) per client fingerprint. An unknown class name disables limiting
// for that route rather than blocking it.
func Middleware(limiter *Limiter, class string, presets func() map[string]config.RateLimitPreset, metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			preset, ok := presets()[class]
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			key := class + ":" + Fingerprint(r)
			result := limiter.Check(r.Context(), key, preset.MaxRequests, preset.Window)

			w.Header().Set(headerRateLimitLimit, strconv.FormatInt(preset.MaxRequests, 10))
			w.Header().Set(headerRateLimitRemaining, strconv.FormatInt(result.Remaining, 10))
			w.Header().Set(headerRateLimitReset, result.ResetAt.Format(time.RFC3339))

			if !result.Allowed {
				retrySecs := int(math.Ceil(result.RetryAfter.Seconds()))
				slog.Warn("rate limit exceeded",
					"request_id", w.Header().Get("X-Request-ID"),
					"class", class,
					"limit", preset.MaxRequests,
					"retry_after_s", retrySecs,
				)
				if metrics != nil {
					metrics.RecordRateLimitHit(class)
				}
				w.Header().Set(headerRetryAfter, strconv.Itoa(retrySecs))
				httputil.WriteRateLimitError(w, w.Header().Get("X-Request-ID"),
					fmt.Sprintf("Rate limit exceeded: %d requests per %s. Retry after %ds",
						preset.MaxRequests, preset.Window, retrySecs))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Fingerprint identifies a client as IP plus a truncated user agent. Weak
// on purpose: the suite has no authentication layer, and this only needs
// to separate well-behaved clients, not resist evasion.
func Fingerprint(r *http.Request) string {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}

	ua := r.UserAgent()
	if len(ua) > fingerprintUALen {
		ua = ua[:fingerprintUALen]
	}
	return ip + "|" + ua
}
