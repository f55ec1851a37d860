package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/social-api/pkg/response"
)

const (
	rateLimitMaxClients = 10000
	rateLimitIdleTTL    = 3 * time.Minute
)

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter 按 IP 维护令牌桶，条目数有上限
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateClient
	rps     rate.Limit
	burst   int
	max     int
	idleTTL time.Duration
}

func newIPLimiter(rps float64, burst, max int, idleTTL time.Duration) *ipLimiter {
	return &ipLimiter{
		clients: make(map[string]*rateClient),
		rps:     rate.Limit(rps),
		burst:   burst,
		max:     max,
		idleTTL: idleTTL,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	cl, ok := l.clients[ip]
	if !ok {
		if len(l.clients) >= l.max {
			l.prune(now)
		}
		cl = &rateClient{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// prune 清掉闲置条目；仍超上限则整体重置
func (l *ipLimiter) prune(now time.Time) {
	for ip, cl := range l.clients {
		if now.Sub(cl.lastSeen) > l.idleTTL {
			delete(l.clients, ip)
		}
	}
	if len(l.clients) >= l.max {
		l.clients = make(map[string]*rateClient)
	}
}

// RateLimit 按客户端 IP 的令牌桶限流
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiters := newIPLimiter(rps, burst, rateLimitMaxClients, rateLimitIdleTTL)
	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			response.Error(c, http.StatusTooManyRequests, response.CodeTooMany, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
