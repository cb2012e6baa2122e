package middleware

import (
	"fmt"

	"shop_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into the standard 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		utils.LogError(fmt.Errorf("panic: %v", recovered), "Recovered from handler panic on "+c.Request.URL.Path)
		utils.RespondInternal(c)
	})
}
