package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meridianfood/backend/internal/interfaces/http/dto"
)

// BodyLimit rejects request bodies above maxBytes. Bulk order imports are
// the largest expected payload, so the limit comes from config rather than
// being hardcoded here.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size"))
			return
		}

		// chunked requests carry no Content-Length, cap those while streaming
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
