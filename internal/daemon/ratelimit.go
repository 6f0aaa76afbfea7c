package daemon

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = 10 * time.Minute
)

// RateLimiter throttles SSE message posts per client IP with one token
// bucket per address.
type RateLimiter struct {
	clients       sync.Map // client IP -> *clientLimiter
	rate          rate.Limit
	burst         int
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	stopOnce      sync.Once
}

type clientLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// NewRateLimiter allows burst posts per IP, refilled at perSecond.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		rate:        rate.Limit(perSecond),
		burst:       burst,
		stopCleanup: make(chan struct{}),
	}

	rl.cleanupTicker = time.NewTicker(limiterCleanupInterval)
	go rl.cleanup()

	logrus.WithFields(logrus.Fields{
		"rate":  perSecond,
		"burst": burst,
	}).Debug("Rate limiter initialized")

	return rl
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !rl.Allow(ip) {
			LogWithCorrelation(c).WithFields(logrus.Fields{
				"ip":   ip,
				"path": c.Request.URL.Path,
			}).Warn("Rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}

// Allow consumes a token for ip, reporting whether one was available.
func (rl *RateLimiter) Allow(ip string) bool {
	now := time.Now()

	value, _ := rl.clients.LoadOrStore(ip, &clientLimiter{
		limiter:  rate.NewLimiter(rl.rate, rl.burst),
		lastSeen: now,
	})

	client := value.(*clientLimiter)
	client.mu.Lock()
	client.lastSeen = now
	client.mu.Unlock()

	return client.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) cleanup() {
	for {
		select {
		case <-rl.cleanupTicker.C:
			rl.evictIdle(time.Now().Add(-limiterIdleTTL))
		case <-rl.stopCleanup:
			rl.cleanupTicker.Stop()
			return
		}
	}
}

// evictIdle drops limiters for addresses not seen since cutoff.
func (rl *RateLimiter) evictIdle(cutoff time.Time) int {
	count := 0
	rl.clients.Range(func(key, value any) bool {
		client := value.(*clientLimiter)
		client.mu.Lock()
		idle := client.lastSeen.Before(cutoff)
		client.mu.Unlock()

		if idle {
			rl.clients.Delete(key)
			count++
		}
		return true
	})

	if count > 0 {
		logrus.WithField("count", count).Debug("Evicted idle rate limiters")
	}
	return count
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

// Size returns the number of tracked client addresses.
func (rl *RateLimiter) Size() int {
	count := 0
	rl.clients.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}
