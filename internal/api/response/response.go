package response

import (
	"github.com/gin-gonic/gin"
)

// Error is the body the service sends when it refuses a request.
type Error struct {
	Error string `json:"error"`
}

// JSON writes body with the given status.
func JSON(c *gin.Context, code int, body any) {
	c.JSON(code, body)
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, Error{Error: message})
}

// AbortWithError writes {"error": message} and stops the handler chain.
func AbortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Error{Error: message})
}
