package api

import (
	"math"

	"sharebox/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests beyond perSecond (with an equal burst) with 429.
// All clients share one limiter. A non-positive rate disables limiting.
func RateLimit(perSecond float64) gin.HandlerFunc {
	if perSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	burst := int(math.Ceil(perSecond))
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			utils.GinTooManyRequests(c, "Too many requests, please slow down")
			return
		}
		c.Next()
	}
}
