package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Latency задерживает ответ на d, имитируя сетевой бэкенд прототипа.
// Отмена запроса прерывает ожидание.
func Latency(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
		c.Next()
	}
}
