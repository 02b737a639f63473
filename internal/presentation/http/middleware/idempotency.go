package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/sangkips/licorera-api/internal/domain/repository"
	"github.com/sangkips/licorera-api/internal/presentation/http/dto/response"
	"github.com/sangkips/licorera-api/internal/presentation/http/handler"
	"github.com/sangkips/licorera-api/pkg/logger"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the key store
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Log  *logger.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency makes sale submissions safe to retry. The first request with a
// given Idempotency-Key reserves the key; a successful response is stored and
// replayed to later requests with the same key, while a failed one releases
// the key. A request arriving while the first is still running gets 409, and
// reusing a key on a different endpoint gets 422. Requests without the header
// pass through.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		userID := handler.GetUserID(c)
		if key == "" || userID == uuid.Nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		endpoint := c.Request.Method + " " + c.FullPath()

		existing, err := config.Repo.GetByKey(ctx, key, userID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if existing != nil {
			if !existing.IsExpired() {
				if existing.Endpoint != endpoint {
					response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
					c.Abort()
					return
				}
				replay(c, existing)
				return
			}
			if _, err := config.Repo.DeleteExpired(ctx); err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
		}

		ikey := &entity.IdempotencyKey{
			Key:       key,
			UserID:    userID,
			Endpoint:  endpoint,
			ExpiresAt: time.Now().UTC().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(ctx, ikey); err != nil {
			// lost the race against a concurrent request with the same key
			response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is already being processed")
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			ikey.ResponseCode = status
			ikey.ResponseBody = blw.body.String()
			if err := config.Repo.Complete(ctx, ikey); err != nil && config.Log != nil {
				config.Log.Error(ctx, "store idempotent response", err)
			}
			return
		}
		if err := config.Repo.Release(ctx, ikey.ID); err != nil && config.Log != nil {
			config.Log.Error(ctx, "release idempotency key", err)
		}
	}
}

func replay(c *gin.Context, existing *entity.IdempotencyKey) {
	if existing.IsPending() {
		response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is already being processed")
		c.Abort()
		return
	}
	c.Header(IdempotencyReplayedHeader, "true")
	c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
	c.Abort()
}
