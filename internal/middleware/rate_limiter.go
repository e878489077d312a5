package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ==================== KeyedRateLimiter 按键限流器 ====================

// 空闲清理的最短间隔
const minIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter 按键（用户身份）维护独立令牌桶
// 空闲超过 idleTTL 的桶会被回收，此时桶早已补满，回收不改变限流结果
type KeyedRateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

// NewKeyedRateLimiter perMinute 为每分钟补充的令牌数，burst 为桶容量
func NewKeyedRateLimiter(perMinute, burst int) *KeyedRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(float64(perMinute) / 60)

	idleTTL := minIdleTTL
	if limit > 0 {
		if refill := time.Duration(float64(burst) / float64(limit) * float64(time.Second)); refill > idleTTL {
			idleTTL = refill
		}
	}

	return &KeyedRateLimiter{
		entries:   make(map[string]*limiterEntry),
		limit:     limit,
		burst:     burst,
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
	}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 需要等待的时间
}

// Check 尝试消耗一个令牌
func (r *KeyedRateLimiter) Check(key string) CheckResult {
	now := time.Now()

	r.mu.Lock()
	if now.Sub(r.lastSweep) >= r.idleTTL {
		r.sweep(now)
	}
	entry, ok := r.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.entries[key] = entry
	}
	entry.lastSeen = now
	r.mu.Unlock()

	reservation := entry.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return CheckResult{Allowed: false, RetryAfter: time.Minute}
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return CheckResult{Allowed: false, RetryAfter: delay}
	}
	return CheckResult{Allowed: true}
}

// sweep 回收空闲的桶，调用方持有锁
func (r *KeyedRateLimiter) sweep(now time.Time) {
	for key, entry := range r.entries {
		if now.Sub(entry.lastSeen) >= r.idleTTL {
			delete(r.entries, key)
		}
	}
	r.lastSweep = now
}

// Len 当前维护的桶数量
func (r *KeyedRateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// ==================== Gin 中间件 ====================

// RateLimit 按用户身份限流，需放在 JWTAuth 之后
// 不区分店铺，换路径不会得到新的令牌桶
func RateLimit(limiter *KeyedRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetUserID(c)
		if key == "" {
			key = "ip:" + c.ClientIP()
		}

		result := limiter.Check(key)
		if !result.Allowed {
			seconds := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message":     "Too many requests",
				"retry_after": seconds,
			})
			return
		}

		c.Next()
	}
}
