package middleware

import (
	"net"
	"net/http"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RideBookingService/pkg/ratelimit"
)

// RateLimitRecorder учитывает отклоненные запросы (может быть nil)
type RateLimitRecorder interface {
	RecordRateLimited(path string)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RateLimit ограничивает частоту запросов пользователя (или IP до аутентификации)
// Ошибка лимитера пропускает запрос
func RateLimit(limiter ratelimit.Limiter, recorder RateLimitRecorder, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("RateLimit: limiter failed for key=%s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				logger.Warn("RateLimit: %s %s rejected for key=%s", r.Method, r.URL.Path, key)
				if recorder != nil {
					recorder.RecordRateLimited(routeTemplate(r))
				}
				handlers.RespondError(w, http.StatusTooManyRequests, handlers.CodeRateLimited, "too many requests, try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
