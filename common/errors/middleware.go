package errors

import (
	"github.com/Vinayyy19/Furnista/common/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorMiddleware renders the last error pushed with c.Error. Internal errors
// are logged with their cause and rendered with a generic message only.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := From(c.Errors.Last().Err)
		if appErr.Kind == KindInternal {
			logger.Error(c, "request failed", appErr.Err,
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
			)
			appErr = ErrInternalServer
		}

		c.AbortWithStatusJSON(appErr.Code, appErr)
	}
}
