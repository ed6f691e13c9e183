package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/clientregistry/backend/internal/domain/shared"
	"github.com/clientregistry/backend/internal/infrastructure/logger"
	"github.com/clientregistry/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the header a caller sets to make a write safe to retry
const IdempotencyKeyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLength bounds the accepted header value
const MaxIdempotencyKeyLength = 255

// Idempotency rejects a request whose Idempotency-Key was already seen on
// the same route within ttl. Requests without the header pass through.
// A key whose request did not end in 2xx is released so the caller can
// retry it. When the store is unreachable the request proceeds.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		requestID := c.GetString(RequestIDKey)
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, "Idempotency-Key muito longa", requestID))
			return
		}

		scoped := c.Request.Method + " " + c.Request.URL.Path + " " + key
		fresh, err := store.MarkProcessed(c.Request.Context(), scoped, ttl)
		if err != nil {
			logger.GetGinLogger(c).Warn("Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeDuplicateRequest, dto.MsgDuplicateRequest, requestID))
			return
		}

		c.Next()

		if status := c.Writer.Status(); status < 200 || status >= 300 {
			// the caller may have gone away; the key must still be freed
			ctx := context.WithoutCancel(c.Request.Context())
			if err := store.Release(ctx, scoped); err != nil {
				logger.GetGinLogger(c).Warn("Failed to release idempotency key",
					zap.Int("status", status),
					zap.Error(err),
				)
			}
		}
	}
}
