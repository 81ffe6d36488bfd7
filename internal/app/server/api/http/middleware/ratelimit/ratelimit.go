// Package ratelimit throttles the credential endpoints per client address.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"healthwatch/internal/app/server/api/http/httperr"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// HitFunc is notified about every rejected request.
type HitFunc func(route string)

type RateLimit struct {
	limiter Limiter
	log     *slog.Logger
	onHit   HitFunc
}

func New(limiter Limiter, log *slog.Logger, onHit HitFunc) *RateLimit {
	return &RateLimit{
		limiter: limiter,
		log:     log.With("component", "rate_limit"),
		onHit:   onHit,
	}
}

// Middleware ограничивает route до limit запросов за window с одного адреса.
// limit <= 0 отключает ограничение.
func (rl *RateLimit) Middleware(route string, limit int, window time.Duration) func(huma.Context, func(huma.Context)) {
	if limit <= 0 || rl.limiter == nil {
		return nil
	}
	return func(ctx huma.Context, next func(huma.Context)) {
		key := route + ":" + clientIP(ctx)
		d := rl.limiter.Allow(ctx.Context(), key, limit, window)

		remaining := limit - d.Count
		if remaining < 0 {
			remaining = 0
		}
		ctx.SetHeader("X-RateLimit-Limit", strconv.Itoa(limit))
		ctx.SetHeader("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !d.Allowed {
			retry := int(time.Until(d.WindowEnd).Seconds()) + 1
			if retry < 1 {
				retry = 1
			}
			ctx.SetHeader("Retry-After", strconv.Itoa(retry))
			if rl.onHit != nil {
				rl.onHit(route)
			}
			rl.log.Warn("rate limit exceeded", "route", route, "count", d.Count)
			httperr.Write(ctx, http.StatusTooManyRequests, httperr.MsgTooManyRequests)
			return
		}
		next(ctx)
	}
}

// clientIP берёт адрес соединения. X-Forwarded-For учитывается только за доверенным
// прокси: тогда RealIP на роутере уже переписал RemoteAddr.
func clientIP(ctx huma.Context) string {
	host, _, err := net.SplitHostPort(ctx.RemoteAddr())
	if err != nil {
		return ctx.RemoteAddr()
	}
	return host
}
