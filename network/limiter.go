package network

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// hostLimiter keeps one token bucket per host. A zero rate disables limiting.
type hostLimiter struct {
	limit rate.Limit
	burst int
	hosts sync.Map // host -> *rate.Limiter
}

func newHostLimiter(perSecond int) *hostLimiter {
	if perSecond <= 0 {
		return &hostLimiter{limit: rate.Inf}
	}
	return &hostLimiter{limit: rate.Limit(perSecond), burst: perSecond}
}

func (h *hostLimiter) Wait(ctx context.Context, host string) error {
	if h.limit == rate.Inf {
		return ctx.Err()
	}

	l, _ := h.hosts.LoadOrStore(host, rate.NewLimiter(h.limit, h.burst))
	return l.(*rate.Limiter).Wait(ctx)
}
