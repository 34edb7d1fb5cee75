package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const msgTooManyRequests = "Terlalu banyak pesan. Tunggu sebentar lalu coba lagi, ya."

// limiterIdle is how long an unused per-caller bucket is kept.
const limiterIdle = 10 * time.Minute

// RateLimit gives each caller (verified UID, else client IP) a token bucket of
// perSecond with the given burst. perSecond <= 0 disables limiting.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	if perSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}

	var mu sync.Mutex
	buckets := cache.New(limiterIdle, limiterIdle)
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if v, ok := buckets.Get(key); ok {
			l := v.(*rate.Limiter)
			buckets.SetDefault(key, l)
			return l
		}
		l := rate.NewLimiter(rate.Limit(perSecond), burst)
		buckets.SetDefault(key, l)
		return l
	}

	return func(c *gin.Context) {
		key := CallerUID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		if !limiterFor(key).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": msgTooManyRequests})
			return
		}
		c.Next()
	}
}
