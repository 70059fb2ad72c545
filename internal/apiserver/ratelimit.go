package apiserver

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiter holds one token bucket per remote address.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func newIPLimiter(perMinute int) *ipLimiter {
	return &ipLimiter{
		clients: make(map[string]*rate.Limiter),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
	}
}

func (l *ipLimiter) allow(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Crude bound on tracked clients; rate-limit storage backends are out
	// of scope.
	if len(l.clients) > 10000 {
		l.clients = make(map[string]*rate.Limiter)
	}
	lim, ok := l.clients[host]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.clients[host] = lim
	}
	return lim.Allow()
}
