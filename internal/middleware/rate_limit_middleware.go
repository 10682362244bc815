package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vamischenko/vacansii-back/internal/interfaces"
)

// middleware для проверки допуска запроса через rate limiter
// ключом клиента служит его IP, scope выделяет группу эндпоинтов
func RateLimitMiddleware(limiter interfaces.RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), scope, c.ClientIP())
		if err != nil {
			// лимитер сам применяет политику fail-open/fail-closed,
			// сюда ошибка долетает только в исключительных случаях
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "internal server error",
			})
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "too many requests",
			})
			return
		}

		c.Next()
	}
}
