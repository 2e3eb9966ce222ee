package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/oakmall/oakmall/internal/pkg/errcode"
	"github.com/oakmall/oakmall/internal/pkg/jwt"
	"github.com/oakmall/oakmall/internal/pkg/response"
)

const ContextUserIDKey = "user_id"

const (
	claimsCacheSize = 4096
	claimsCacheTTL  = time.Minute
)

// JWTAuth validates the Bearer token and puts the caller's user id into the
// gin context. Parsed claims are kept in a small TTL'd LRU so hot callers do
// not pay signature verification on every request; expiry is still checked on
// cache hits.
func JWTAuth(secret []byte) gin.HandlerFunc {
	cache := expirable.NewLRU[string, *jwt.Claims](claimsCacheSize, nil, claimsCacheTTL)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, errcode.ErrUnauthorized, "missing authorization")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, errcode.ErrUnauthorized, "invalid authorization")
			c.Abort()
			return
		}
		token := parts[1]
		claims, ok := cache.Get(token)
		if !ok {
			parsed, err := jwt.ParseToken(token, secret)
			if err != nil {
				response.Error(c, errcode.ErrUnauthorized, "invalid token")
				c.Abort()
				return
			}
			cache.Add(token, parsed)
			claims = parsed
		}
		if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
			response.Error(c, errcode.ErrUnauthorized, "token expired")
			c.Abort()
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
