package middlewares

import "github.com/gin-gonic/gin"

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("Referrer-Policy", "no-referrer")
	ctx.Next()
}

// NoStore marks per-user payloads (carts, orders, e-tickets) as uncacheable
// by clients and intermediaries.
func NoStore(ctx *gin.Context) {
	ctx.Header("Cache-Control", "no-store")
	ctx.Next()
}
